// Package config loads quickfind's recognized configuration
// from a JSONC (JSON-with-comments) file using github.com/tailscale/hujson,
// so a human can hand-edit the config with inline comments. Defaults are
// filled in code via zero-value defaulting — the file only needs to
// override what differs from default.
package config

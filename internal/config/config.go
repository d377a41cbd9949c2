package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/nkvale/quickfind/pkg/types"
)

// Config is the set of options recognized by the core, plus
// the sampling-policy fields.
type Config struct {
	IndexDir string `json:"index_dir"`
	StateDBPath string `json:"state_db_path"`
	PrefsPath string `json:"prefs_path"`

	ScheduleWindowEnabled       bool  `json:"schedule_window_enabled"`
	AutoIncrementalMinIntervalS int   `json:"auto_incremental_min_interval_s"`
	InitialPhaseEnumerationCap  int   `json:"initial_phase_enumeration_cap"`
	InitialCommitIntervalS      int   `json:"initial_commit_interval_s"`
	BackgroundCommitIntervalS   int   `json:"background_commit_interval_s"`

	CoverageFraction   *float64 `json:"coverage_fraction,omitempty"`
	HeadFraction       *float64 `json:"head_fraction,omitempty"`
	TailFraction       *float64 `json:"tail_fraction,omitempty"`
	SmallFileThreshold *uint64  `json:"small_file_threshold,omitempty"`
	MaxBytes           *uint64  `json:"max_bytes,omitempty"`
	MinHeadBytes       *uint64  `json:"min_head_bytes,omitempty"`
	MinTailBytes       *uint64  `json:"min_tail_bytes,omitempty"`
	SniffBytes         *int     `json:"sniff_bytes,omitempty"`
}

// Default returns a Config with every field set to its documented default.
func Default() Config {
	return Config{
		IndexDir:                    "",
		StateDBPath:                 "",
		PrefsPath:                   "",
		ScheduleWindowEnabled:       false,
		AutoIncrementalMinIntervalS: 60,
		InitialPhaseEnumerationCap:  20000,
		InitialCommitIntervalS:      2,
		BackgroundCommitIntervalS:   1800,
	}
}

// Load reads a JSONC config file at path, merging overrides onto Default().
// A missing file is not an error: Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	ast, err := hujson.Parse(raw)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	ast.Standardize()

	if err := json.Unmarshal(ast.Pack(), &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// SamplingPolicy builds the effective sampling policy, starting from
// DefaultSamplingPolicy and applying any overrides present in the config.
func (c Config) SamplingPolicy() types.SamplingPolicy {
	p := types.DefaultSamplingPolicy()
	if c.CoverageFraction != nil {
		p.CoverageFraction = *c.CoverageFraction
	}
	if c.HeadFraction != nil {
		p.HeadFraction = *c.HeadFraction
	}
	if c.TailFraction != nil {
		p.TailFraction = *c.TailFraction
	}
	if c.SmallFileThreshold != nil {
		p.SmallFileThreshold = *c.SmallFileThreshold
	}
	if c.MaxBytes != nil {
		p.MaxBytes = *c.MaxBytes
	}
	if c.MinHeadBytes != nil {
		p.MinHeadBytes = *c.MinHeadBytes
	}
	if c.MinTailBytes != nil {
		p.MinTailBytes = *c.MinTailBytes
	}
	if c.SniffBytes != nil {
		p.SniffBytes = *c.SniffBytes
	}
	return p
}

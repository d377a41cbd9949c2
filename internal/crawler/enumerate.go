package crawler

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/nkvale/quickfind/pkg/types"
)

// entry is one enumerated filesystem item with the metadata the pipeline
// needs to extract per regular file.
type entry struct {
	Path             string
	Name             string
	Ext              string
	Size             uint64
	MTime            int64
	Inode            uint64
	Dev              uint64
	CloudPlaceholder bool
	Bucket           types.Bucket
}

// sortRoots orders roots: a root whose last path component is
// "Documents" sorts first; remaining ties break lexicographically.
func sortRoots(roots []string) []string {
	out := append([]string(nil), roots...)
	sort.SliceStable(out, func(i, j int) bool {
		iDoc := filepath.Base(out[i]) == "Documents"
		jDoc := filepath.Base(out[j]) == "Documents"
		if iDoc != jDoc {
			return iDoc
		}
		return out[i] < out[j]
	})
	return out
}

// isCloudPlaceholder detects a filesystem entry whose bytes are not locally
// materialized. No portable stdlib signal exists for this across cloud
// sync providers, so the default detector never reports true; a platform-
// specific detector can be substituted via enumOptions.cloudDetector.
func isCloudPlaceholder(path string, info os.FileInfo) bool {
	return false
}

// enumOptions configures a single root enumeration.
type enumOptions struct {
	cap           int  // 0 means unbounded (background phase)
	now           time.Time
	cloudDetector func(path string, info os.FileInfo) bool
}

// enumerateRoot performs a depth-first walk of root, skipping hidden entries
// and not following symlinks. Stops after opts.cap entries when opts.cap > 0
// (initial-phase cap). Returns entries in enumeration order; a
// failure opening root itself is a PermanentIO error aborting only that root.
// ctx is checked at each enumeration step so a cancelled crawl doesn't have
// to wait for a large tree to finish enumerating before it can stop.
func enumerateRoot(ctx context.Context, root string, opts enumOptions) ([]entry, error) {
	detector := opts.cloudDetector
	if detector == nil {
		detector = isCloudPlaceholder
	}
	now := opts.now
	if now.IsZero() {
		now = time.Now()
	}

	rootInfo, err := os.Lstat(root)
	if err != nil {
		return nil, err
	}
	if !rootInfo.IsDir() {
		return nil, nil
	}

	var out []entry
	visited := 0
	var walk func(dir string) error
	walk = func(dir string) error {
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name() < dirEntries[j].Name() })

		for _, de := range dirEntries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if opts.cap > 0 && visited >= opts.cap {
				return nil
			}
			name := de.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			full := filepath.Join(dir, name)

			info, err := de.Info()
			if err != nil {
				continue // transient stat error: skip this entry
			}
			if info.Mode()&os.ModeSymlink != 0 {
				continue // never follow symlinks
			}
			visited++

			if de.IsDir() {
				if err := walk(full); err != nil {
					continue
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}

			e := entry{
				Path:             full,
				Name:             name,
				Ext:              extOf(name),
				Size:             uint64(info.Size()),
				MTime:            info.ModTime().Unix(),
				CloudPlaceholder: detector(full, info),
			}
			if sys, ok := info.Sys().(*syscall.Stat_t); ok {
				e.Inode = uint64(sys.Ino)
				e.Dev = uint64(sys.Dev)
			}
			e.Bucket = types.BucketFor(now, e.MTime)
			out = append(out, e)
		}
		return nil
	}

	if err := walk(root); err != nil {
		return out, err
	}
	return out, nil
}

// extOf lower-cases a filename's extension without the leading dot, or
// returns "" when there is none.
func extOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

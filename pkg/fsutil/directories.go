// Package fsutil provides the filesystem primitives behind the file and page
// cache backends: candidate expansion, glob-style listing, writability and purge.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// EnsureDir creates a directory and all necessary parent directories with default permissions if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// ExpandCandidates turns configured candidate entries into concrete paths.
// Plain entries are kept verbatim; entries containing glob meta characters are
// expanded with doublestar semantics. Order is preserved and duplicates dropped.
func ExpandCandidates(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))

	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, c := range candidates {
		if !strings.ContainsAny(c, "*?[{") {
			add(c)
			continue
		}
		matches, err := doublestar.FilepathGlob(c)
		if err != nil {
			// A malformed pattern simply contributes nothing.
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListEntries returns the immediate children of dir the way a shell `dir/*`
// glob would: names starting with a dot are skipped.
func ListEntries(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	visible := entries[:0]
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		visible = append(visible, e)
	}
	return visible, nil
}

// ClearOptions controls ClearDirectory.
type ClearOptions struct {
	// Recursive removes subdirectories together with their contents.
	// When false, subdirectories are left untouched and not counted.
	Recursive bool
	// MaxAge, when positive, restricts removal to entries older than MaxAge.
	MaxAge time.Duration
	// Now overrides the clock used for MaxAge comparisons.
	Now func() time.Time
}

// ClearDirectory removes the contents of dir while preserving dir itself.
// It returns the number of top-level entries removed. The first error stops
// the pass; entries removed before it are still counted. A dir that no longer
// exists, for instance because it sat inside a directory purged earlier, is
// already empty and yields 0.
func ClearDirectory(dir string, opts ClearOptions) (int, error) {
	entries, err := ListEntries(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	deleted := 0
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if opts.MaxAge > 0 {
			info, err := entry.Info()
			if err != nil {
				return deleted, err
			}
			if now().Sub(info.ModTime()) < opts.MaxAge {
				continue
			}
		}

		if entry.IsDir() {
			if !opts.Recursive {
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				return deleted, err
			}
			deleted++
			continue
		}

		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

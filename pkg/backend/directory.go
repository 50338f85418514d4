package backend

import (
	"context"
	"fmt"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/errors"
	"github.com/glorpus-work/cachectl/pkg/fsutil"
)

// dirProbe scans candidate directories for file-based caches. Each populated
// directory becomes its own target so they are purged independently.
type dirProbe struct {
	name      string
	label     string
	unit      string
	none      string
	dirs      []string
	writable  bool
	clearOpts fsutil.ClearOptions
}

func fileCacheProbe(dirs []string, clearOpts fsutil.ClearOptions) dirProbe {
	return dirProbe{
		name:      NameFileCache,
		label:     "File caches",
		unit:      "files",
		none:      "No file caches found in common locations",
		dirs:      dirs,
		writable:  true,
		clearOpts: clearOpts,
	}
}

// pageCacheProbe only needs the directory to exist; purge may still fail on
// a read-only page cache.
func pageCacheProbe(dirs []string, clearOpts fsutil.ClearOptions) dirProbe {
	return dirProbe{
		name:      NamePageCache,
		label:     "Page caches",
		unit:      "items",
		dirs:      dirs,
		clearOpts: clearOpts,
	}
}

func (p dirProbe) descriptor() Descriptor {
	return Descriptor{
		Name:     p.name,
		Label:    p.label,
		Category: CategoryFS,
		Linked:   true,
		Detect:   p.detect,
		Purge:    p.purge,
	}
}

func (p dirProbe) detect(_ context.Context) Detection {
	var (
		found    []string
		problems []string
		targets  []Target
	)
	for _, dir := range fsutil.ExpandCandidates(p.dirs) {
		if !fsutil.IsDir(dir) {
			continue
		}
		if p.writable && !fsutil.Writable(dir) {
			logger.Debug("skipping read-only cache directory", logger.Fields{"dir": dir})
			continue
		}
		entries, err := fsutil.ListEntries(dir)
		if err != nil {
			problems = append(problems, line(Inactive, "Cannot scan %s: %v", dir, errors.Mark(err, errors.ErrFilesystem)))
			continue
		}
		if len(entries) == 0 {
			continue
		}
		found = append(found, detail("%s (%d %s)", dir, len(entries), p.unit))
		targets = append(targets, Target{Key: p.name + ":" + dir, Backend: p.name, Path: dir})
	}

	res := DetectionResult{Backend: p.name}
	switch {
	case len(found) > 0:
		res.Outcome = Active
		res.Lines = append([]string{line(Active, "%s found:", p.label)}, found...)
	case p.none != "":
		res.Lines = []string{line(Unavailable, "%s", p.none)}
	}
	res.Lines = append(res.Lines, problems...)
	return Detection{Result: res, Targets: targets}
}

func (p dirProbe) purge(_ context.Context, t Target) PurgeResult {
	res := PurgeResult{Backend: p.name, Target: t.Key}
	count, err := fsutil.ClearDirectory(t.Path, p.clearOpts)
	res.Count = count
	if err != nil {
		res.Message = fmt.Sprintf("Error clearing %s: %v", t.Path, err)
		res.Err = errors.Mark(err, errors.ErrFilesystem)
		return res
	}
	res.Success = true
	res.Message = fmt.Sprintf("Cleared %d items from %s", count, t.Path)
	return res
}

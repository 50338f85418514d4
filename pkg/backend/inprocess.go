package backend

import (
	"context"

	"github.com/glorpus-work/cachectl/pkg/errors"
)

// Backend names.
const (
	NameOpcode    = "opcache"
	NameObject    = "apcu"
	NameMemcached = "memcached"
	NameRedis     = "redis"
	NameFileCache = "file"
	NamePageCache = "page"
	NameEdge      = "litespeed"
	NameCDN       = "cloudflare"
)

func opcodeDescriptor(c OpcodeCache) Descriptor {
	d := Descriptor{
		Name:     NameOpcode,
		Label:    "OPcache",
		Category: CategoryInProcess,
		Linked:   c != nil,
	}
	if c == nil {
		return d
	}

	d.Detect = func(ctx context.Context) Detection {
		res := DetectionResult{Backend: NameOpcode}
		status, err := c.Status(ctx)
		switch {
		case err != nil || status == nil:
			res.Outcome = Inactive
			res.Lines = []string{line(Inactive, "OPcache: Available but not active")}
			return Detection{Result: res}
		case !status.Enabled:
			res.Outcome = Inactive
			res.Lines = []string{line(Inactive, "OPcache: Available and disabled")}
			return Detection{Result: res}
		}

		res.Outcome = Active
		res.Lines = []string{
			line(Active, "OPcache: Available and enabled"),
			detail("Memory usage: %s MB", megabytes(status.UsedMemory)),
			detail("Hit rate: %s%%", round2(status.HitRate)),
		}
		return Detection{Result: res, Targets: []Target{{Key: NameOpcode, Backend: NameOpcode}}}
	}

	d.Purge = func(ctx context.Context, t Target) PurgeResult {
		res := PurgeResult{Backend: NameOpcode, Target: t.Key}
		if err := c.Reset(ctx); err != nil {
			res.Message = "Failed to clear OPcache: " + err.Error()
			res.Err = errors.Mark(err, errors.ErrPurgeAction)
			return res
		}
		res.Success = true
		res.Message = "OPcache cleared successfully"
		return res
	}
	return d
}

func objectDescriptor(c ObjectCache) Descriptor {
	d := Descriptor{
		Name:     NameObject,
		Label:    "APCu",
		Category: CategoryInProcess,
		Linked:   c != nil,
	}
	if c == nil {
		return d
	}

	d.Detect = func(ctx context.Context) Detection {
		res := DetectionResult{Backend: NameObject}
		info, err := c.Info(ctx)
		if err != nil {
			res.Outcome = Inactive
			res.Lines = []string{line(Inactive, "APCu: Available but error getting info: %v", err)}
			return Detection{Result: res}
		}
		if info == nil {
			info = &ObjectCacheInfo{}
		}

		res.Outcome = Active
		res.Lines = []string{
			line(Active, "APCu: Available and active"),
			detail("Memory usage: %s MB", megabytes(info.MemSize)),
			detail("Number of entries: %d", info.Entries),
		}
		return Detection{Result: res, Targets: []Target{{Key: NameObject, Backend: NameObject}}}
	}

	d.Purge = func(ctx context.Context, t Target) PurgeResult {
		res := PurgeResult{Backend: NameObject, Target: t.Key}
		if err := c.Clear(ctx); err != nil {
			res.Message = "Failed to clear APCu: " + err.Error()
			res.Err = errors.Mark(err, errors.ErrPurgeAction)
			return res
		}
		res.Success = true
		res.Message = "APCu cleared successfully"
		return res
	}
	return d
}

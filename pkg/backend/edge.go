package backend

import (
	"context"

	"github.com/glorpus-work/cachectl/pkg/errors"
)

const liteSpeedMarker = "litespeed"

func edgeDescriptor(purger EdgePurger, meta RequestMeta) Descriptor {
	d := Descriptor{
		Name:     NameEdge,
		Label:    "LiteSpeed Cache",
		Category: CategoryEdge,
		Linked:   true,
	}

	d.Detect = func(_ context.Context) Detection {
		res := DetectionResult{Backend: NameEdge, Outcome: Active}
		switch {
		case purger != nil:
			res.Lines = []string{line(Active, "LiteSpeed Cache: Available")}
		case containsFold(meta.ServerSoftware, liteSpeedMarker):
			res.Lines = []string{line(Active, "LiteSpeed Server detected (cache may be available)")}
		default:
			res.Outcome = Unavailable
			res.Lines = []string{line(Unavailable, "LiteSpeed Cache: Not detected")}
			return Detection{Result: res}
		}
		return Detection{Result: res, Targets: []Target{{Key: NameEdge, Backend: NameEdge}}}
	}

	d.Purge = func(ctx context.Context, t Target) PurgeResult {
		res := PurgeResult{Backend: NameEdge, Target: t.Key}
		if purger == nil {
			res.Message = "LiteSpeed cache: No programmatic purge available"
			return res
		}
		if err := purger.PurgeAll(ctx); err != nil {
			res.Message = "Failed to purge LiteSpeed cache: " + err.Error()
			res.Err = errors.Mark(err, errors.ErrPurgeAction)
			return res
		}
		res.Success = true
		res.Message = "LiteSpeed cache purged successfully"
		return res
	}
	return d
}

// cdnDescriptor is detect-only: CDN caches have no purge action here and the
// probe never yields a target.
func cdnDescriptor(meta RequestMeta) Descriptor {
	return Descriptor{
		Name:     NameCDN,
		Label:    "Cloudflare",
		Category: CategoryEdge,
		Linked:   true,
		Detect: func(_ context.Context) Detection {
			res := DetectionResult{Backend: NameCDN}
			if !meta.CLI && (meta.CFRay || meta.CFConnectingIP) {
				res.Outcome = Active
				res.Lines = []string{line(Active, "Cloudflare: Detected (cache may be active)")}
			} else {
				res.Lines = []string{line(Unavailable, "Cloudflare: Not detected")}
			}
			return Detection{Result: res}
		},
	}
}

// Package cache drives the backend registry: it runs every detection probe
// once, remembers which targets are available and purges only those.
package cache

import (
	"context"
	"fmt"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/backend"
	"github.com/glorpus-work/cachectl/pkg/errors"
)

// Inspector holds the outcome of one detection pass.
type Inspector struct {
	registry    *backend.Registry
	results     []backend.DetectionResult
	available   []backend.Target
	snapshotter Snapshotter
	actions     ActionRecorder
}

// NewInspector runs every probe in registry order before returning.
func NewInspector(ctx context.Context, registry *backend.Registry, opts ...Option) *Inspector {
	i := &Inspector{registry: registry}
	for _, opt := range opts {
		opt(i)
	}
	i.detect(ctx)
	return i
}

func (i *Inspector) detect(ctx context.Context) {
	for _, d := range i.registry.Descriptors() {
		if !d.Linked || d.Detect == nil {
			logger.Debug("skipping backend", logger.Fields{"backend": d.Name, "reason": errors.ErrCapabilityAbsent.Error()})
			i.results = append(i.results, backend.DetectionResult{
				Backend: d.Name,
				Outcome: backend.Unavailable,
				Lines:   []string{fmt.Sprintf("%s %s: Not available", backend.MarkerFail, d.Label)},
			})
			continue
		}

		logger.Debug("probing backend", logger.Fields{"backend": d.Name})
		det := runDetect(ctx, d)
		i.results = append(i.results, det.Result)

		if det.Result.Outcome != backend.Active || d.DetectOnly() {
			continue
		}
		i.available = append(i.available, det.Targets...)
	}
}

func runDetect(ctx context.Context, d backend.Descriptor) (det backend.Detection) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("probe panicked", logger.Fields{"backend": d.Name, "panic": fmt.Sprint(r)})
			det = backend.Detection{Result: backend.DetectionResult{
				Backend: d.Name,
				Outcome: backend.Inactive,
				Lines:   []string{fmt.Sprintf("%s %s: Probe error: %v", backend.MarkerWarn, d.Label, r)},
			}}
		}
	}()
	det = d.Detect(ctx)
	if det.Result.Backend == "" {
		det.Result.Backend = d.Name
	}
	return det
}

// Results returns the detection lines in registry order.
func (i *Inspector) Results() []string {
	var lines []string
	for _, r := range i.results {
		lines = append(lines, r.Lines...)
	}
	return lines
}

// DetectionResults returns one result per registered backend.
func (i *Inspector) DetectionResults() []backend.DetectionResult {
	out := make([]backend.DetectionResult, len(i.results))
	copy(out, i.results)
	return out
}

// Available returns the purgeable targets in detection order.
func (i *Inspector) Available() []backend.Target {
	out := make([]backend.Target, len(i.available))
	copy(out, i.available)
	return out
}

// HasAvailable reports whether any target can be purged.
func (i *Inspector) HasAvailable() bool {
	return len(i.available) > 0
}

// PurgeAll purges every available target in detection order. It never
// re-runs detection and may be called more than once.
func (i *Inspector) PurgeAll(ctx context.Context) *PurgeReport {
	report := &PurgeReport{}
	for _, t := range i.available {
		d, ok := i.registry.Lookup(t.Backend)
		if !ok || d.DetectOnly() {
			continue
		}

		if t.Path != "" && i.snapshotter != nil {
			archive, err := i.snapshotter.Snapshot(ctx, t.Path)
			if err != nil {
				res := backend.PurgeResult{
					Backend: t.Backend,
					Target:  t.Key,
					Message: fmt.Sprintf("Snapshot of %s failed, directory left untouched: %v", t.Path, err),
					Err:     errors.Mark(err, errors.ErrSnapshot),
				}
				i.finish(report, res)
				continue
			}
			logger.Info("snapshot written", logger.Fields{"dir": t.Path, "archive": archive})
		}

		i.finish(report, runPurge(ctx, d, t))
	}
	return report
}

func (i *Inspector) finish(report *PurgeReport, res backend.PurgeResult) {
	report.results = append(report.results, res)
	if res.Failed() {
		logger.Warn("purge failed", logger.Fields{"backend": res.Backend, "target": res.Target, "error": res.Err.Error()})
	} else {
		logger.Debug("purged", logger.Fields{"backend": res.Backend, "target": res.Target, "count": res.Count})
	}
	if i.actions != nil {
		i.actions.Record(res.Backend, res.Target, res.Success, res.Count, res.Message)
	}
}

func runPurge(ctx context.Context, d backend.Descriptor, t backend.Target) (res backend.PurgeResult) {
	defer func() {
		if r := recover(); r != nil {
			res = backend.PurgeResult{
				Backend: d.Name,
				Target:  t.Key,
				Message: fmt.Sprintf("%s purge error: %v", d.Label, r),
				Err:     errors.Wrapf(ErrProbePanic, "%v", r),
			}
		}
	}()
	res = d.Purge(ctx, t)
	if res.Backend == "" {
		res.Backend = d.Name
	}
	if res.Target == "" {
		res.Target = t.Key
	}
	return res
}

// PurgeReport collects the results of one purge pass in purge order.
type PurgeReport struct {
	results []backend.PurgeResult
}

// Results returns one result per purged target.
func (r *PurgeReport) Results() []backend.PurgeResult {
	out := make([]backend.PurgeResult, len(r.results))
	copy(out, r.results)
	return out
}

// Lines renders the report lines.
func (r *PurgeReport) Lines() []string {
	lines := make([]string, 0, len(r.results))
	for _, res := range r.results {
		lines = append(lines, res.Line())
	}
	return lines
}

// Succeeded counts successful purges.
func (r *PurgeReport) Succeeded() int {
	n := 0
	for _, res := range r.results {
		if res.Success {
			n++
		}
	}
	return n
}

// Failed counts purges that returned an error.
func (r *PurgeReport) Failed() int {
	n := 0
	for _, res := range r.results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// Cleared sums the items removed from directory targets.
func (r *PurgeReport) Cleared() int {
	n := 0
	for _, res := range r.results {
		n += res.Count
	}
	return n
}

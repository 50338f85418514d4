// Package backend holds the registry of cache backends cachectl knows how to
// detect and purge.
//
// Every backend is described by a Descriptor carrying a detection probe and,
// unless the backend is detect-only, a purge action. Probes never return
// errors: failures are folded into a tri-state Outcome and human-readable
// result lines so that one misbehaving backend cannot stop the pass.
//
//go:generate mockgen -destination=./mocks/capabilities.go . OpcodeCache,ObjectCache,EdgePurger
package backend

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Outcome is the tri-state result of a detection probe.
type Outcome int

// Detection outcomes.
const (
	// Unavailable means the capability is absent or nothing was found.
	Unavailable Outcome = iota
	// Inactive means the capability exists but is disabled or erroring.
	Inactive
	// Active means the backend is present and usable.
	Active
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unavailable"
	}
}

// MarshalText renders the outcome by name in JSON and YAML reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Marker returns the status glyph that prefixes result lines.
func (o Outcome) Marker() string {
	switch o {
	case Active:
		return MarkerOK
	case Inactive:
		return MarkerWarn
	default:
		return MarkerFail
	}
}

// Result line markers.
const (
	MarkerOK   = "✅"
	MarkerWarn = "⚠️ "
	MarkerFail = "❌"
)

// Category groups backends by where their cache lives.
type Category string

// Backend categories.
const (
	CategoryInProcess Category = "in-process"
	CategoryNetwork   Category = "network-service"
	CategoryFS        Category = "filesystem"
	CategoryEdge      Category = "edge-cdn"
)

// DetectFunc probes a backend. It must not panic or block past ctx.
type DetectFunc func(ctx context.Context) Detection

// PurgeFunc empties one available target of a backend.
type PurgeFunc func(ctx context.Context, target Target) PurgeResult

// Descriptor names a backend and binds its probe and purge action.
type Descriptor struct {
	Name     string
	Label    string
	Category Category
	// Linked reports whether the capability is present in this build or
	// process. Unlinked backends are reported unavailable without probing.
	Linked bool
	Detect DetectFunc
	// Purge is nil for detect-only backends.
	Purge PurgeFunc
}

// DetectOnly reports whether the backend has no purge action.
func (d Descriptor) DetectOnly() bool { return d.Purge == nil }

// DetectionResult is the outcome of one probe together with its display lines.
type DetectionResult struct {
	Backend string   `json:"backend" yaml:"backend"`
	Outcome Outcome  `json:"outcome" yaml:"outcome"`
	Lines   []string `json:"lines" yaml:"lines"`
}

// Target is a backend instance that detection found usable and that a
// later purge pass may act on.
type Target struct {
	Key     string `json:"key" yaml:"key"`
	Backend string `json:"backend" yaml:"backend"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Detection bundles a probe's result and the targets it discovered.
type Detection struct {
	Result  DetectionResult
	Targets []Target
}

// PurgeResult records the outcome of purging one target.
type PurgeResult struct {
	Backend string `json:"backend" yaml:"backend"`
	Target  string `json:"target" yaml:"target"`
	Success bool   `json:"success" yaml:"success"`
	Count   int    `json:"count" yaml:"count"`
	Message string `json:"message" yaml:"message"`
	Err     error  `json:"-" yaml:"-"`
}

// Failed reports whether the purge produced an error.
func (r PurgeResult) Failed() bool { return r.Err != nil }

// Advisory reports a result that neither succeeded nor failed.
func (r PurgeResult) Advisory() bool { return !r.Success && r.Err == nil }

// Line renders the result as a marker-prefixed report line.
func (r PurgeResult) Line() string {
	switch {
	case r.Success:
		return MarkerOK + " " + r.Message
	case r.Err == nil:
		return MarkerWarn + " " + r.Message
	default:
		return MarkerFail + " " + r.Message
	}
}

// RequestMeta is what probes may know about the invocation context.
type RequestMeta struct {
	CLI            bool
	RemoteAddr     string
	ServerSoftware string
	CFRay          bool
	CFConnectingIP bool
}

// FromCLI returns request metadata for a command-line invocation.
func FromCLI(serverSoftware string) RequestMeta {
	return RequestMeta{CLI: true, ServerSoftware: serverSoftware}
}

func line(o Outcome, format string, args ...interface{}) string {
	return o.Marker() + " " + fmt.Sprintf(format, args...)
}

func detail(format string, args ...interface{}) string {
	return "   - " + fmt.Sprintf(format, args...)
}

// megabytes converts bytes to MB rounded to two decimals, trailing zeros trimmed.
func megabytes(b uint64) string {
	return round2(float64(b) / 1024 / 1024)
}

func round2(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

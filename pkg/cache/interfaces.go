//go:generate mockgen -destination=./mocks/cache.go . Snapshotter,ActionRecorder
package cache

import "context"

// Snapshotter archives a directory before the inspector purges it. It returns
// the path of the archive it wrote.
type Snapshotter interface {
	Snapshot(ctx context.Context, dir string) (string, error)
}

// ActionRecorder receives one call per purge action.
type ActionRecorder interface {
	Record(backend, target string, success bool, count int, detail string)
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithSnapshotter archives every directory target before purging it.
func WithSnapshotter(s Snapshotter) Option {
	return func(i *Inspector) { i.snapshotter = s }
}

// WithActionLog records every purge action.
func WithActionLog(r ActionRecorder) Option {
	return func(i *Inspector) { i.actions = r }
}

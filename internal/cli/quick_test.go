package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glorpus-work/cachectl/pkg/backend"
	"github.com/glorpus-work/cachectl/pkg/cache"
)

func fixed(outcome backend.Outcome, targets ...backend.Target) backend.DetectFunc {
	return func(context.Context) backend.Detection {
		return backend.Detection{
			Result:  backend.DetectionResult{Outcome: outcome},
			Targets: targets,
		}
	}
}

func noopPurge(_ context.Context, t backend.Target) backend.PurgeResult {
	return backend.PurgeResult{Backend: t.Backend, Target: t.Key, Success: true}
}

func TestWriteQuickLines(t *testing.T) {
	registry := backend.New(
		backend.Descriptor{Name: backend.NameOpcode, Label: "OPcache", Category: backend.CategoryInProcess},
		backend.Descriptor{
			Name: backend.NameRedis, Label: "Redis", Category: backend.CategoryNetwork, Linked: true,
			Detect: fixed(backend.Active, backend.Target{Key: "redis", Backend: backend.NameRedis}),
			Purge:  noopPurge,
		},
		backend.Descriptor{
			Name: backend.NameMemcached, Label: "Memcached", Category: backend.CategoryNetwork, Linked: true,
			Detect: fixed(backend.Inactive),
			Purge:  noopPurge,
		},
		backend.Descriptor{
			Name: backend.NameFileCache, Label: "File caches", Category: backend.CategoryFS, Linked: true,
			Detect: fixed(backend.Active,
				backend.Target{Key: "/srv/cache", Backend: backend.NameFileCache, Path: "/srv/cache"},
				backend.Target{Key: "/srv/tmp", Backend: backend.NameFileCache, Path: "/srv/tmp"},
			),
			Purge: noopPurge,
		},
		backend.Descriptor{
			Name: backend.NamePageCache, Label: "Page caches", Category: backend.CategoryFS, Linked: true,
			Detect: fixed(backend.Unavailable),
			Purge:  noopPurge,
		},
	)

	var buf bytes.Buffer
	writeQuickLines(&buf, registry, cache.NewInspector(context.Background(), registry))

	assert.Equal(t, "❌ OPcache: Not available\n"+
		"✅ Redis: Active\n"+
		"⚠️  Memcached: Inactive\n"+
		"✅ File caches: /srv/cache\n"+
		"✅ File caches: /srv/tmp\n", buf.String())
}

func TestWriteQuickLines_NoFileCaches(t *testing.T) {
	registry := backend.New(backend.Descriptor{
		Name: backend.NameFileCache, Label: "File caches", Category: backend.CategoryFS, Linked: true,
		Detect: fixed(backend.Unavailable),
		Purge:  noopPurge,
	})

	var buf bytes.Buffer
	writeQuickLines(&buf, registry, cache.NewInspector(context.Background(), registry))

	assert.Equal(t, "❌ File caches: None found\n", buf.String())
}

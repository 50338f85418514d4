package backend

import (
	"github.com/glorpus-work/cachectl/pkg/config"
	"github.com/glorpus-work/cachectl/pkg/fsutil"
)

// Registry is the ordered set of known backends. Detection and purge both
// follow registration order.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]int
}

// New builds a registry from descriptors in the given order. A later
// descriptor with a duplicate name replaces the earlier one in place.
func New(descriptors ...Descriptor) *Registry {
	r := &Registry{byName: make(map[string]int, len(descriptors))}
	for _, d := range descriptors {
		r.Register(d)
	}
	return r
}

// NewRegistry builds the standard registry: opcode cache, object cache,
// memcached, redis, file caches, page caches, LiteSpeed, Cloudflare.
func NewRegistry(cfg *config.Config, caps Capabilities, meta RequestMeta) *Registry {
	settings := cfg.CacheSettings
	clearOpts := fsutil.ClearOptions{
		Recursive: settings.RecursiveClear,
		MaxAge:    settings.MaxFileAge,
	}

	return New(
		opcodeDescriptor(caps.Opcode),
		objectDescriptor(caps.Object),
		memcachedProbe{
			addr:    cfg.MemcachedAddr(),
			timeout: settings.ConnectTimeout,
			enabled: settings.CheckMemcached,
		}.descriptor(),
		redisProbe{
			addr:       cfg.RedisAddr(),
			password:   settings.RedisPassword,
			db:         settings.RedisDB,
			timeout:    settings.ConnectTimeout,
			enabled:    settings.CheckRedis,
			asyncFlush: settings.RedisAsyncFlush,
		}.descriptor(),
		fileCacheProbe(cfg.CacheDirectories, clearOpts).descriptor(),
		pageCacheProbe(cfg.PageCacheDirectories, clearOpts).descriptor(),
		edgeDescriptor(caps.Edge, meta),
		cdnDescriptor(meta),
	)
}

// Register appends d, or replaces a descriptor with the same name.
func (r *Registry) Register(d Descriptor) {
	if i, ok := r.byName[d.Name]; ok {
		r.descriptors[i] = d
		return
	}
	r.byName[d.Name] = len(r.descriptors)
	r.descriptors = append(r.descriptors, d)
}

// Descriptors returns the registered backends in order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// Len returns the number of registered backends.
func (r *Registry) Len() int { return len(r.descriptors) }

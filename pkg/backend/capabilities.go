package backend

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// OpcodeStatus is a snapshot of an in-process opcode cache.
type OpcodeStatus struct {
	Enabled    bool
	UsedMemory uint64
	HitRate    float64
}

// OpcodeCache is an in-process compiled-code cache.
type OpcodeCache interface {
	Status(ctx context.Context) (*OpcodeStatus, error)
	Reset(ctx context.Context) error
}

// ObjectCacheInfo is a snapshot of an in-process object cache.
type ObjectCacheInfo struct {
	Entries int
	MemSize uint64
}

// ObjectCache is an in-process user-data cache.
type ObjectCache interface {
	Info(ctx context.Context) (*ObjectCacheInfo, error)
	Clear(ctx context.Context) error
}

// EdgePurger triggers a purge of a web-server-integrated page cache.
type EdgePurger interface {
	PurgeAll(ctx context.Context) error
}

// Capabilities are the optional in-process hooks an embedding program links
// in. A nil field means the capability is absent.
type Capabilities struct {
	Opcode OpcodeCache
	Object ObjectCache
	Edge   EdgePurger
}

// LRUObjectCache exposes a golang-lru cache as an ObjectCache.
type LRUObjectCache[K comparable, V any] struct {
	cache *lru.Cache[K, V]
	// SizeOf estimates the memory held by one value. Optional.
	SizeOf func(V) uint64
}

// NewLRUObjectCache wraps cache.
func NewLRUObjectCache[K comparable, V any](cache *lru.Cache[K, V], sizeOf func(V) uint64) *LRUObjectCache[K, V] {
	return &LRUObjectCache[K, V]{cache: cache, SizeOf: sizeOf}
}

// Info reports the entry count and estimated memory size.
func (c *LRUObjectCache[K, V]) Info(_ context.Context) (*ObjectCacheInfo, error) {
	info := &ObjectCacheInfo{Entries: c.cache.Len()}
	if c.SizeOf != nil {
		for _, v := range c.cache.Values() {
			info.MemSize += c.SizeOf(v)
		}
	}
	return info, nil
}

// Clear purges every entry.
func (c *LRUObjectCache[K, V]) Clear(_ context.Context) error {
	c.cache.Purge()
	return nil
}

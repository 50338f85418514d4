package web

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/glorpus-work/cachectl/pkg/backend"
)

// historyEntry summarises one purge pass run through the page.
type historyEntry struct {
	At      string
	Remote  string
	Cleared int
	Failed  int
}

// History keeps the most recent purge summaries in memory. It is the serve
// process's own object cache: detection reports it like any in-process cache
// and a purge pass clears it.
type History struct {
	cache *lru.Cache[uint64, historyEntry]
	seq   atomic.Uint64
}

// NewHistory returns a History holding at most size entries.
func NewHistory(size int) (*History, error) {
	c, err := lru.New[uint64, historyEntry](size)
	if err != nil {
		return nil, err
	}
	return &History{cache: c}, nil
}

func (h *History) add(e historyEntry) {
	h.cache.Add(h.seq.Add(1), e)
}

// entries returns the summaries oldest first.
func (h *History) entries() []historyEntry {
	return h.cache.Values()
}

// ObjectCache exposes the history to the object cache backend.
func (h *History) ObjectCache() backend.ObjectCache {
	return backend.NewLRUObjectCache(h.cache, func(e historyEntry) uint64 {
		return uint64(len(e.At) + len(e.Remote) + 16)
	})
}

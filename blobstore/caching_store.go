package blobstore

import (
	"context"
	"strings"
	"sync"

	"github.com/hupe1980/bitview/internal/cache"
)

// CachingStore wraps a Store and caches whole blobs on read.
// Writes and deletes go through to the inner store and invalidate the entry.
type CachingStore struct {
	inner Store
	cache *cache.LRU

	// gen counts writes. A fill whose read started before a write is
	// discarded, so a completed Put is never shadowed by older bytes.
	mu  sync.Mutex
	gen uint64
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner Store, cache *cache.LRU) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache,
	}
}

// Put writes through and drops any cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	defer s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Get serves from the cache, filling it from the inner store on a miss.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return clone(data), nil
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cache.Set(name, clone(data))
	}
	s.mu.Unlock()
	return data, nil
}

// Delete removes the blob and its cached copy.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	defer s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	s.gen++
	s.cache.Remove(name)
	s.mu.Unlock()
}

// List always consults the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Invalidate drops every cached blob under prefix.
func (s *CachingStore) Invalidate(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache.Invalidate(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

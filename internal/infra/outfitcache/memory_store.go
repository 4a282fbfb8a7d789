package outfitcache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/outfit-studio/internal/domain/outfit"
)

type cachedOutfit struct {
	payload   outfit.Outfit
	expiresAt time.Time
}

// MemoryStore is an in-memory outfit.Store for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	outfits map[string]cachedOutfit
	vibes   map[string]int64
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		outfits: make(map[string]cachedOutfit),
		vibes:   make(map[string]int64),
		now:     time.Now,
	}
}

// GetOutfit implements outfit.Store. Expired entries are evicted on read.
func (s *MemoryStore) GetOutfit(_ context.Context, id string) (outfit.Outfit, bool, error) {
	s.mu.RLock()
	record, ok := s.outfits[id]
	s.mu.RUnlock()
	if !ok {
		return outfit.Outfit{}, false, nil
	}
	if !record.expiresAt.IsZero() && record.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.outfits, id)
		s.mu.Unlock()
		return outfit.Outfit{}, false, nil
	}
	return record.payload, true, nil
}

// SaveOutfit caches the outfit with optional TTL.
func (s *MemoryStore) SaveOutfit(_ context.Context, o outfit.Outfit, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.outfits[o.ID] = cachedOutfit{payload: o, expiresAt: exp}
	return nil
}

// IncrementVibe bumps the vibe counter.
func (s *MemoryStore) IncrementVibe(_ context.Context, vibe string) error {
	if vibe == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vibes[vibe]++
	return nil
}

// TopVibes returns the most generated vibes.
func (s *MemoryStore) TopVibes(_ context.Context, limit int) ([]outfit.VibeCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.vibes)
	}
	items := make([]outfit.VibeCount, 0, len(s.vibes))
	for vibe, count := range s.vibes {
		items = append(items, outfit.VibeCount{Vibe: vibe, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Vibe < items[j].Vibe
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ outfit.Store = (*MemoryStore)(nil)

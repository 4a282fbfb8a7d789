package outfitrepo

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/yanqian/outfit-studio/internal/domain/outfit"
)

type memorySaved struct {
	saved   outfit.SavedOutfit
	palette []float32
}

// MemoryRepository is an in-memory SavedRepository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]memorySaved
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]memorySaved)}
}

// Insert implements outfit.SavedRepository.
func (r *MemoryRepository) Insert(_ context.Context, saved outfit.SavedOutfit, palette []float32) (outfit.SavedOutfit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[saved.ID] = memorySaved{saved: saved, palette: append([]float32(nil), palette...)}
	return saved, nil
}

// Get implements outfit.SavedRepository.
func (r *MemoryRepository) Get(_ context.Context, id string) (outfit.SavedOutfit, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return outfit.SavedOutfit{}, false, nil
	}
	return rec.saved, true, nil
}

// List returns saved outfits newest first.
func (r *MemoryRepository) List(_ context.Context, filter outfit.SavedFilter) ([]outfit.SavedOutfit, error) {
	r.mu.RLock()
	out := make([]outfit.SavedOutfit, 0, len(r.records))
	for _, rec := range r.records {
		if filter.FavoritesOnly && !rec.saved.IsFavorite {
			continue
		}
		out = append(out, rec.saved)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Update replaces the saved outfit, keeping its palette.
func (r *MemoryRepository) Update(_ context.Context, saved outfit.SavedOutfit) (outfit.SavedOutfit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[saved.ID]
	if !ok {
		return outfit.SavedOutfit{}, outfit.ErrNotFound
	}
	rec.saved = saved
	r.records[saved.ID] = rec
	return saved, nil
}

// Delete implements outfit.SavedRepository.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return outfit.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

// FindNearest ranks stored palettes by euclidean distance, like pgvector's <-> operator.
func (r *MemoryRepository) FindNearest(_ context.Context, palette []float32, excludeID string, limit int) ([]outfit.SimilarMatch, error) {
	r.mu.RLock()
	matches := make([]outfit.SimilarMatch, 0, len(r.records))
	for id, rec := range r.records {
		if id == excludeID || len(rec.palette) != len(palette) {
			continue
		}
		matches = append(matches, outfit.SimilarMatch{Saved: rec.saved, Distance: euclideanDistance(palette, rec.palette)})
	}
	r.mu.RUnlock()
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance == matches[j].Distance {
			return matches[i].Saved.ID < matches[j].Saved.ID
		}
		return matches[i].Distance < matches[j].Distance
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

var _ outfit.SavedRepository = (*MemoryRepository)(nil)

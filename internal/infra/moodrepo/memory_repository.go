package moodrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/outfit-studio/internal/domain/mood"
)

// MemoryRepository is an in-memory mood.Repository used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	moods map[string]mood.Mood
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{moods: make(map[string]mood.Mood)}
}

// Insert implements mood.Repository.
func (r *MemoryRepository) Insert(_ context.Context, m mood.Mood) (mood.Mood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moods[m.ID] = cloneMood(m)
	return cloneMood(m), nil
}

// Get implements mood.Repository.
func (r *MemoryRepository) Get(_ context.Context, id string) (mood.Mood, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.moods[id]
	if !ok {
		return mood.Mood{}, false, nil
	}
	return cloneMood(m), true, nil
}

// List returns moods newest first.
func (r *MemoryRepository) List(_ context.Context) ([]mood.Mood, error) {
	r.mu.RLock()
	out := make([]mood.Mood, 0, len(r.moods))
	for _, m := range r.moods {
		out = append(out, cloneMood(m))
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored mood.
func (r *MemoryRepository) Update(_ context.Context, m mood.Mood) (mood.Mood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.moods[m.ID]; !ok {
		return mood.Mood{}, mood.ErrNotFound
	}
	r.moods[m.ID] = cloneMood(m)
	return cloneMood(m), nil
}

// Delete implements mood.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.moods[id]; !ok {
		return mood.ErrNotFound
	}
	delete(r.moods, id)
	return nil
}

func cloneMood(m mood.Mood) mood.Mood {
	m.Colors = append([]string(nil), m.Colors...)
	m.Tags = append([]string(nil), m.Tags...)
	return m
}

var _ mood.Repository = (*MemoryRepository)(nil)

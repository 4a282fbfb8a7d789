package itemrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
	"github.com/yanqian/outfit-studio/pkg/util"
)

// MemoryRepository keeps wardrobe items in process memory for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]wardrobe.Item
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]wardrobe.Item)}
}

// Insert implements wardrobe.Repository.
func (r *MemoryRepository) Insert(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

// Get implements wardrobe.Repository.
func (r *MemoryRepository) Get(_ context.Context, id string) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return wardrobe.Item{}, false, nil
	}
	return cloneItem(item), true, nil
}

// List filters, sorts and pages the stored items.
func (r *MemoryRepository) List(_ context.Context, filter wardrobe.Filter) (wardrobe.ListResult, error) {
	r.mu.RLock()
	matched := make([]wardrobe.Item, 0, len(r.items))
	for _, item := range r.items {
		if matches(item, filter) {
			matched = append(matched, cloneItem(item))
		}
	}
	r.mu.RUnlock()

	sortItems(matched, filter.SortBy, filter.Ascending())
	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return wardrobe.ListResult{Items: matched[start:end], TotalCount: total}, nil
}

// All returns every item, oldest first.
func (r *MemoryRepository) All(_ context.Context) ([]wardrobe.Item, error) {
	r.mu.RLock()
	out := make([]wardrobe.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneItem(item))
	}
	r.mu.RUnlock()
	sortItems(out, wardrobe.SortByCreatedAt, true)
	return out, nil
}

// SetImageURL implements wardrobe.Repository.
func (r *MemoryRepository) SetImageURL(_ context.Context, id, url string) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	item.ImageURL = url
	item.UpdatedAt = util.NowUTC()
	r.items[id] = item
	return cloneItem(item), nil
}

// Delete implements wardrobe.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return wardrobe.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func matches(item wardrobe.Item, filter wardrobe.Filter) bool {
	if filter.Category != "" && item.Category != filter.Category {
		return false
	}
	if len(filter.Tags) > 0 && !overlaps(item.Tags, filter.Tags) {
		return false
	}
	if len(filter.Colors) > 0 && !overlaps(item.Colors, filter.Colors) {
		return false
	}
	return true
}

func overlaps(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func sortItems(items []wardrobe.Item, by wardrobe.SortField, asc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var less, equal bool
		switch by {
		case wardrobe.SortByName:
			less, equal = a.Name < b.Name, a.Name == b.Name
		case wardrobe.SortByCategory:
			less, equal = a.Category < b.Category, a.Category == b.Category
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			return a.ID < b.ID
		}
		if asc {
			return less
		}
		return !less
	})
}

func cloneItem(item wardrobe.Item) wardrobe.Item {
	item.Colors = append([]string(nil), item.Colors...)
	item.Tags = append([]string(nil), item.Tags...)
	return item
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)

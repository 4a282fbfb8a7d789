package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-studio/internal/domain/color"
	apperrors "github.com/yanqian/outfit-studio/pkg/errors"
	"github.com/yanqian/outfit-studio/pkg/util"
)

const recentWindowDays = 7

// Service manages wardrobe items.
type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (Item, error)
	Get(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, filter Filter) (ListResult, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, req UploadImageRequest) (Item, error)
	OpenImage(ctx context.Context, key string) (io.ReadCloser, string, error)
	Stats(ctx context.Context) (Stats, error)
	Snapshot(ctx context.Context) ([]Item, error)
}

// UploadImageRequest carries a picture for an item.
type UploadImageRequest struct {
	Filename string
	MimeType string
	Content  []byte
}

type service struct {
	cfg     Config
	repo    Repository
	storage ImageStorage
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

// NewService wires the wardrobe domain.
func NewService(cfg Config, repo Repository, storage ImageStorage, logger *slog.Logger) Service {
	if cfg.MaxColorsPerItem <= 0 {
		cfg.MaxColorsPerItem = 3
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 50
	}
	return &service{
		cfg:     cfg,
		repo:    repo,
		storage: storage,
		logger:  logger.With("component", "wardrobe.service"),
		newID:   uuid.NewString,
		now:     util.NowUTC,
	}
}

func (s *service) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "name cannot be empty", nil)
	}
	cat := strings.ToLower(strings.TrimSpace(req.Category))
	if !IsKnownCategory(cat) {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown category %q", req.Category), nil)
	}
	if len(req.Colors) == 0 || len(req.Colors) > s.cfg.MaxColorsPerItem {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("an item needs between 1 and %d colors", s.cfg.MaxColorsPerItem), nil)
	}
	colors := make([]string, 0, len(req.Colors))
	for _, c := range req.Colors {
		hex, ok := color.Normalize(c)
		if !ok {
			return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("invalid color %q", c), nil)
		}
		colors = append(colors, hex)
	}

	now := s.now()
	item, err := s.repo.Insert(ctx, Item{
		ID:          s.newID(),
		Name:        name,
		Category:    cat,
		Description: strings.TrimSpace(req.Description),
		Colors:      colors,
		Tags:        normalizeTags(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save item", err)
	}
	s.logger.Info("item created", "id", item.ID, "category", item.Category)
	return item, nil
}

func (s *service) Get(ctx context.Context, id string) (Item, error) {
	item, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load item", err)
	}
	if !ok {
		return Item{}, apperrors.Wrap(apperrors.CodeNotFound, "item not found", nil)
	}
	return item, nil
}

func (s *service) List(ctx context.Context, filter Filter) (ListResult, error) {
	switch filter.SortBy {
	case "":
		filter.SortBy = SortByCreatedAt
	case SortByCreatedAt, SortByName, SortByCategory:
	default:
		return ListResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported sort field %q", filter.SortBy), nil)
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
	filter.Tags = normalizeTags(filter.Tags)
	colors := make([]string, 0, len(filter.Colors))
	for _, c := range filter.Colors {
		if hex, ok := color.Normalize(c); ok {
			colors = append(colors, hex)
		}
	}
	filter.Colors = colors

	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, apperrors.Wrap(apperrors.CodeStorage, "failed to list items", err)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, "item not found", err)
		}
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete item", err)
	}
	if key := s.imageKey(item.ImageURL); key != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("item image cleanup failed", "id", id, "key", key, "error", err)
		}
	}
	return nil
}

func (s *service) UploadImage(ctx context.Context, id string, req UploadImageRequest) (Item, error) {
	if s.storage == nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "image storage is not configured", nil)
	}
	if len(req.Content) == 0 {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image cannot be empty", nil)
	}
	if s.cfg.MaxImageBytes > 0 && int64(len(req.Content)) > s.cfg.MaxImageBytes {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image exceeds maximum allowed size", nil)
	}
	mime := req.MimeType
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(req.Content)
	}
	if !strings.HasPrefix(mime, "image/") {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "file must be an image", nil)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return Item{}, err
	}

	key := fmt.Sprintf("items/%s/%s%s", id, s.newID(), strings.ToLower(path.Ext(req.Filename)))
	obj, err := s.storage.Put(ctx, key, req.Content, mime)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store image", err)
	}
	item, err := s.repo.SetImageURL(ctx, id, s.imageURL(obj.Key))
	if errors.Is(err, ErrNotFound) {
		return Item{}, apperrors.Wrap(apperrors.CodeNotFound, "item not found", err)
	}
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to update item image", err)
	}
	s.logger.Info("item image stored", "id", id, "key", obj.Key, "bytes", obj.Size)
	return item, nil
}

// OpenImage streams a stored picture by object key.
func (s *service) OpenImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if s.storage == nil {
		return nil, "", apperrors.Wrap(apperrors.CodeStorage, "image storage is not configured", nil)
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if !strings.HasPrefix(key, "items/") {
		return nil, "", apperrors.Wrap(apperrors.CodeNotFound, "image not found", nil)
	}
	rc, mime, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeNotFound, "image not found", err)
	}
	return rc, mime, nil
}

// Stats mirrors the dashboard summary: totals, the last week's additions,
// per-category and per-tag counts and the values available for filtering.
func (s *service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.Snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}

	cutoff := util.DaysAgo(recentWindowDays)
	catCounts := map[string]int{}
	tagCounts := map[string]int{}
	colorSet := map[string]struct{}{}
	stats := Stats{TotalItems: len(items)}
	for _, it := range items {
		catCounts[it.Category]++
		for _, t := range it.Tags {
			tagCounts[t]++
		}
		for _, c := range it.Colors {
			colorSet[c] = struct{}{}
		}
		if !it.CreatedAt.Before(cutoff) {
			stats.RecentItems++
		}
		if stats.LastAddedAt == nil || it.CreatedAt.After(*stats.LastAddedAt) {
			created := it.CreatedAt
			stats.LastAddedAt = &created
		}
	}

	stats.TotalCategories = len(catCounts)
	stats.Categories = make([]CategoryCount, 0, len(catCounts))
	for c, n := range catCounts {
		stats.Categories = append(stats.Categories, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	stats.Tags = make([]TagCount, 0, len(tagCounts))
	for t, n := range tagCounts {
		stats.Tags = append(stats.Tags, TagCount{Tag: t, Count: n})
	}
	sort.Slice(stats.Tags, func(i, j int) bool {
		a, b := stats.Tags[i], stats.Tags[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})
	stats.FilterOptions = FilterOptions{
		Categories: sortedKeys(catCounts),
		Tags:       sortedKeys(tagCounts),
		Colors:     sortedKeys(colorSet),
	}
	return stats, nil
}

func (s *service) Snapshot(ctx context.Context) ([]Item, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load wardrobe", err)
	}
	return items, nil
}

func (s *service) imageURL(key string) string {
	base := strings.TrimRight(s.cfg.ImageBaseURL, "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}

// imageKey recovers the object key from a URL built by imageURL.
func (s *service) imageKey(url string) string {
	if url == "" {
		return ""
	}
	base := strings.TrimRight(s.cfg.ImageBaseURL, "/")
	return strings.TrimPrefix(strings.TrimPrefix(url, base), "/")
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

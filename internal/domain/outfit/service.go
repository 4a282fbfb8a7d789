package outfit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-studio/internal/domain/category"
	"github.com/yanqian/outfit-studio/internal/domain/color"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
	apperrors "github.com/yanqian/outfit-studio/pkg/errors"
	"github.com/yanqian/outfit-studio/pkg/metrics"
	"github.com/yanqian/outfit-studio/pkg/util"
)

// Service exposes outfit generation and the saved outfit lifecycle.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	GenerateForMood(ctx context.Context, req MoodRequest) (MoodResponse, error)
	Generated(ctx context.Context, id string) (Outfit, error)
	Trending(ctx context.Context) ([]VibeCount, error)
	Validate(ctx context.Context, req ValidateRequest) (ValidateResponse, error)
	Save(ctx context.Context, req SaveRequest) (SavedOutfit, error)
	ListSaved(ctx context.Context, filter SavedFilter) ([]SavedOutfit, error)
	UpdateSaved(ctx context.Context, id string, req UpdateRequest) (SavedOutfit, error)
	MarkWorn(ctx context.Context, id string) (SavedOutfit, error)
	ToggleFavorite(ctx context.Context, id string) (SavedOutfit, error)
	DeleteSaved(ctx context.Context, id string) error
	SimilarSaved(ctx context.Context, id string) ([]SimilarMatch, error)
}

// ValidateRequest checks an arbitrary item set.
type ValidateRequest struct {
	Items []wardrobe.Item `json:"items" binding:"required"`
}

// ValidateResponse reports the rule check plus the sub-scores.
type ValidateResponse struct {
	category.Result
	Completeness         float64 `json:"completeness"`
	LogicalCompatibility float64 `json:"logicalCompatibility"`
	ColorHarmony         float64 `json:"colorHarmony"`
}

type service struct {
	cfg       ServiceConfig
	generator *Generator
	items     ItemSource
	moods     MoodSource
	saved     SavedRepository
	store     Store
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
	newRand   func() Rand
}

// NewService wires the outfit domain.
func NewService(cfg ServiceConfig, items ItemSource, moods MoodSource, saved SavedRepository, store Store, logger *slog.Logger) Service {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 3
	}
	if cfg.MoodBatchSize <= 0 {
		cfg.MoodBatchSize = 5
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = 5
	}
	if cfg.SimilarLimit <= 0 {
		cfg.SimilarLimit = 5
	}
	s := &service{
		cfg:       cfg,
		generator: NewGenerator(cfg.Generator),
		items:     items,
		moods:     moods,
		saved:     saved,
		store:     store,
		logger:    logger.With("component", "outfit.service"),
		newID:     uuid.NewString,
		now:       util.NowUTC,
	}
	s.newRand = s.defaultRand
	return s
}

// defaultRand returns an independent PCG stream per call.
func (s *service) defaultRand() Rand {
	if s.cfg.Seed != 0 {
		return rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	items, err := s.pool(ctx, req.Items)
	if err != nil {
		metrics.ObserveGeneration("batch", nil, time.Now(), err)
		return GenerateResponse{}, err
	}
	count := req.Count
	if count <= 0 {
		count = s.cfg.DefaultCount
	}
	occasion := strings.ToLower(strings.TrimSpace(req.Occasion))

	started := time.Now()
	outfits := s.generator.Generate(items, count, occasion, s.newRand())
	metrics.ObserveGeneration("batch", scoresOf(outfits), started, nil)

	s.remember(ctx, outfits)
	s.logger.Info("outfits generated",
		"pool", len(items),
		"requested", count,
		"returned", len(outfits),
		"occasion", occasion,
	)
	return GenerateResponse{Outfits: outfits}, nil
}

func (s *service) GenerateForMood(ctx context.Context, req MoodRequest) (MoodResponse, error) {
	moodName := req.Mood
	palette := req.MoodColors
	if req.MoodID != "" {
		if s.moods == nil {
			return MoodResponse{}, apperrors.Wrap(apperrors.CodeNotFound, "mood store unavailable", nil)
		}
		m, err := s.moods.Get(ctx, req.MoodID)
		if err != nil {
			return MoodResponse{}, err
		}
		if moodName == "" {
			moodName = string(m.Vibe)
		}
		if len(palette) == 0 {
			palette = m.Colors
		}
	}
	if strings.TrimSpace(moodName) == "" && len(palette) == 0 {
		return MoodResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "mood or moodColors is required", nil)
	}
	for _, c := range palette {
		if !color.IsHex(c) {
			return MoodResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid mood color "+c, nil)
		}
	}

	items, err := s.pool(ctx, req.Items)
	if err != nil {
		metrics.ObserveGeneration("mood", nil, time.Now(), err)
		return MoodResponse{}, err
	}
	count := req.Count
	if count <= 0 {
		count = s.cfg.MoodBatchSize
	}

	started := time.Now()
	best, ok := s.generator.GenerateForMood(items, moodName, palette, count, s.newRand())
	if !ok {
		metrics.ObserveGeneration("mood", nil, started, nil)
		s.logger.Info("no outfit matched mood", "mood", moodName, "pool", len(items))
		return MoodResponse{}, nil
	}
	metrics.ObserveGeneration("mood", []float64{best.Score}, started, nil)
	s.remember(ctx, []Outfit{best})
	s.logger.Info("mood outfit generated", "mood", moodName, "score", best.Score, "moodScore", *best.MoodScore)
	return MoodResponse{Outfit: &best}, nil
}

func (s *service) Generated(ctx context.Context, id string) (Outfit, error) {
	o, ok, err := s.store.GetOutfit(ctx, id)
	if err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodeCache, "generation cache lookup failed", err)
	}
	if !ok {
		return Outfit{}, apperrors.Wrap(apperrors.CodeNotFound, "generated outfit not found or expired", nil)
	}
	return o, nil
}

func (s *service) Trending(ctx context.Context) ([]VibeCount, error) {
	vibes, err := s.store.TopVibes(ctx, s.cfg.TrendingLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCache, "trending lookup failed", err)
	}
	return vibes, nil
}

func (s *service) Validate(_ context.Context, req ValidateRequest) (ValidateResponse, error) {
	if len(req.Items) == 0 {
		return ValidateResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "items cannot be empty", nil)
	}
	return ValidateResponse{
		Result:               category.Validate(req.Items),
		Completeness:         category.Completeness(req.Items),
		LogicalCompatibility: category.LogicalCompatibility(req.Items),
		ColorHarmony:         round1(color.Harmony(colorsOf(req.Items))),
	}, nil
}

func (s *service) Save(ctx context.Context, req SaveRequest) (SavedOutfit, error) {
	var o Outfit
	switch {
	case req.OutfitID != "":
		var err error
		o, err = s.Generated(ctx, req.OutfitID)
		if err != nil {
			return SavedOutfit{}, err
		}
	case req.Outfit != nil && len(req.Outfit.Items) > 0:
		o = *req.Outfit
	default:
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeInvalidInput, "outfitId or outfit is required", nil)
	}
	if o.Vibe == "" {
		o.Vibe = vibeOf(o.Items)
	}
	if len(o.DominantColors) == 0 {
		o.DominantColors = dominantColors(o.Items, s.generator.cfg.SimilarColorDistance, 3)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("%s outfit", o.Vibe)
	}
	now := s.now()
	saved, err := s.saved.Insert(ctx, SavedOutfit{
		ID:        s.newID(),
		Name:      name,
		Notes:     strings.TrimSpace(req.Notes),
		Outfit:    o,
		CreatedAt: now,
		UpdatedAt: now,
	}, PaletteVector(o.DominantColors))
	if err != nil {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save outfit", err)
	}
	metrics.SavedOutfitEvents.WithLabelValues("saved").Inc()
	s.logger.Info("outfit saved", "id", saved.ID, "outfitId", o.ID, "items", len(o.Items))
	return saved, nil
}

func (s *service) ListSaved(ctx context.Context, filter SavedFilter) ([]SavedOutfit, error) {
	list, err := s.saved.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list saved outfits", err)
	}
	return list, nil
}

func (s *service) UpdateSaved(ctx context.Context, id string, req UpdateRequest) (SavedOutfit, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeInvalidInput, "rating must be between 1 and 5", nil)
	}
	return s.mutate(ctx, id, "updated", func(so *SavedOutfit) {
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			so.Name = strings.TrimSpace(*req.Name)
		}
		if req.Notes != nil {
			so.Notes = strings.TrimSpace(*req.Notes)
		}
		if req.Rating != nil {
			so.Rating = *req.Rating
		}
		if req.IsFavorite != nil {
			so.IsFavorite = *req.IsFavorite
		}
	})
}

func (s *service) MarkWorn(ctx context.Context, id string) (SavedOutfit, error) {
	return s.mutate(ctx, id, "worn", func(so *SavedOutfit) {
		now := s.now()
		so.WornCount++
		so.LastWornAt = &now
	})
}

func (s *service) ToggleFavorite(ctx context.Context, id string) (SavedOutfit, error) {
	return s.mutate(ctx, id, "favorite", func(so *SavedOutfit) {
		so.IsFavorite = !so.IsFavorite
	})
}

func (s *service) DeleteSaved(ctx context.Context, id string) error {
	err := s.saved.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "saved outfit not found", err)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete saved outfit", err)
	}
	metrics.SavedOutfitEvents.WithLabelValues("deleted").Inc()
	return nil
}

func (s *service) SimilarSaved(ctx context.Context, id string) ([]SimilarMatch, error) {
	so, err := s.getSaved(ctx, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.saved.FindNearest(ctx, PaletteVector(so.Outfit.DominantColors), so.ID, s.cfg.SimilarLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "similarity lookup failed", err)
	}
	return matches, nil
}

func (s *service) getSaved(ctx context.Context, id string) (SavedOutfit, error) {
	so, ok, err := s.saved.Get(ctx, id)
	if err != nil {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load saved outfit", err)
	}
	if !ok {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeNotFound, "saved outfit not found", nil)
	}
	return so, nil
}

func (s *service) mutate(ctx context.Context, id, event string, apply func(*SavedOutfit)) (SavedOutfit, error) {
	so, err := s.getSaved(ctx, id)
	if err != nil {
		return SavedOutfit{}, err
	}
	apply(&so)
	so.UpdatedAt = s.now()
	updated, err := s.saved.Update(ctx, so)
	if errors.Is(err, ErrNotFound) {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeNotFound, "saved outfit not found", err)
	}
	if err != nil {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeStorage, "failed to update saved outfit", err)
	}
	metrics.SavedOutfitEvents.WithLabelValues(event).Inc()
	return updated, nil
}

// pool returns the request items, or the wardrobe snapshot when none were sent.
func (s *service) pool(ctx context.Context, items []wardrobe.Item) ([]wardrobe.Item, error) {
	if len(items) > 0 {
		return items, nil
	}
	if s.items == nil {
		return nil, nil
	}
	snapshot, err := s.items.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load wardrobe", err)
	}
	return snapshot, nil
}

// remember caches generated outfits and bumps their vibes. Failures only
// cost the cache, so they are logged and dropped.
func (s *service) remember(ctx context.Context, outfits []Outfit) {
	for _, o := range outfits {
		if err := s.store.SaveOutfit(ctx, o, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("generation cache write failed", "id", o.ID, "error", err)
		}
		if err := s.store.IncrementVibe(ctx, o.Vibe); err != nil {
			s.logger.Warn("vibe increment failed", "vibe", o.Vibe, "error", err)
		}
	}
}

func scoresOf(outfits []Outfit) []float64 {
	out := make([]float64, len(outfits))
	for i, o := range outfits {
		out[i] = o.Score
	}
	return out
}

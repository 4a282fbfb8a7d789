package mood

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-studio/internal/domain/color"
	apperrors "github.com/yanqian/outfit-studio/pkg/errors"
	"github.com/yanqian/outfit-studio/pkg/util"
)

const (
	maxMoodColors = 8
	recentWindow  = 7
	topColors     = 5
)

// Service manages mood boards.
type Service interface {
	Create(ctx context.Context, req Request) (Mood, error)
	Get(ctx context.Context, id string) (Mood, error)
	List(ctx context.Context) ([]Mood, error)
	Update(ctx context.Context, id string, req Request) (Mood, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// NewService wires the mood domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "mood.service"),
		newID:  uuid.NewString,
		now:    util.NowUTC,
	}
}

func (s *service) Create(ctx context.Context, req Request) (Mood, error) {
	m, err := s.fromRequest(req)
	if err != nil {
		return Mood{}, err
	}
	now := s.now()
	m.ID = s.newID()
	m.CreatedAt, m.UpdatedAt = now, now
	saved, err := s.repo.Insert(ctx, m)
	if err != nil {
		return Mood{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save mood", err)
	}
	s.logger.Info("mood created", "id", saved.ID, "vibe", saved.Vibe)
	return saved, nil
}

func (s *service) Get(ctx context.Context, id string) (Mood, error) {
	m, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Mood{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load mood", err)
	}
	if !ok {
		return Mood{}, apperrors.Wrap(apperrors.CodeNotFound, "mood not found", nil)
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]Mood, error) {
	moods, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list moods", err)
	}
	return moods, nil
}

func (s *service) Update(ctx context.Context, id string, req Request) (Mood, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Mood{}, err
	}
	next, err := s.fromRequest(req)
	if err != nil {
		return Mood{}, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	saved, err := s.repo.Update(ctx, next)
	if errors.Is(err, ErrNotFound) {
		return Mood{}, apperrors.Wrap(apperrors.CodeNotFound, "mood not found", err)
	}
	if err != nil {
		return Mood{}, apperrors.Wrap(apperrors.CodeStorage, "failed to update mood", err)
	}
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "mood not found", err)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete mood", err)
	}
	return nil
}

// Stats reports totals, the most common vibe (casual when empty), the five
// most used colors and the moods created in the last week.
func (s *service) Stats(ctx context.Context) (Stats, error) {
	moods, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	vibeCount := map[Vibe]int{}
	colorCount := map[string]int{}
	var colorOrder []string
	cutoff := util.DaysAgo(recentWindow)
	recent := 0
	for _, m := range moods {
		vibeCount[m.Vibe]++
		for _, c := range m.Colors {
			if colorCount[c] == 0 {
				colorOrder = append(colorOrder, c)
			}
			colorCount[c]++
		}
		if !m.CreatedAt.Before(cutoff) {
			recent++
		}
	}

	favorite, best := VibeCasual, 0
	for _, v := range Vibes {
		if vibeCount[v] > best {
			favorite, best = v, vibeCount[v]
		}
	}

	sort.SliceStable(colorOrder, func(i, j int) bool { return colorCount[colorOrder[i]] > colorCount[colorOrder[j]] })
	if len(colorOrder) > topColors {
		colorOrder = colorOrder[:topColors]
	}
	if colorOrder == nil {
		colorOrder = []string{}
	}

	return Stats{
		TotalMoods:     len(moods),
		FavoriteVibe:   favorite,
		MostUsedColors: colorOrder,
		RecentMoods:    recent,
	}, nil
}

func (s *service) fromRequest(req Request) (Mood, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Mood{}, apperrors.Wrap(apperrors.CodeInvalidInput, "title cannot be empty", nil)
	}
	vibe := Vibe(strings.ToLower(strings.TrimSpace(string(req.Vibe))))
	if vibe == "" {
		vibe = VibeCasual
	}
	if !vibe.Valid() {
		return Mood{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown vibe "+string(req.Vibe), nil)
	}
	if len(req.Colors) > maxMoodColors {
		return Mood{}, apperrors.Wrap(apperrors.CodeInvalidInput, "too many colors", nil)
	}
	colors := make([]string, 0, len(req.Colors))
	for _, c := range req.Colors {
		hex, ok := color.Normalize(c)
		if !ok {
			return Mood{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid color "+c, nil)
		}
		colors = append(colors, hex)
	}
	return Mood{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Colors:      colors,
		Tags:        normalizeTags(req.Tags),
		Vibe:        vibe,
		Emoji:       req.Emoji,
	}, nil
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

package outfit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-studio/internal/domain/mood"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
	apperrors "github.com/yanqian/outfit-studio/pkg/errors"
)

type fakeItems struct {
	items []wardrobe.Item
	err   error
}

func (f fakeItems) Snapshot(context.Context) ([]wardrobe.Item, error) {
	return f.items, f.err
}

type fakeMoods map[string]mood.Mood

func (f fakeMoods) Get(_ context.Context, id string) (mood.Mood, error) {
	m, ok := f[id]
	if !ok {
		return mood.Mood{}, apperrors.Wrap(apperrors.CodeNotFound, "mood not found", nil)
	}
	return m, nil
}

type fakeStore struct {
	outfits map[string]Outfit
	vibes   map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{outfits: map[string]Outfit{}, vibes: map[string]int64{}}
}

func (f *fakeStore) GetOutfit(_ context.Context, id string) (Outfit, bool, error) {
	o, ok := f.outfits[id]
	return o, ok, nil
}

func (f *fakeStore) SaveOutfit(_ context.Context, o Outfit, _ time.Duration) error {
	f.outfits[o.ID] = o
	return nil
}

func (f *fakeStore) IncrementVibe(_ context.Context, vibe string) error {
	f.vibes[vibe]++
	return nil
}

func (f *fakeStore) TopVibes(_ context.Context, limit int) ([]VibeCount, error) {
	out := make([]VibeCount, 0, len(f.vibes))
	for v, n := range f.vibes {
		out = append(out, VibeCount{Vibe: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeSaved struct {
	rows     map[string]SavedOutfit
	palettes map[string][]float32
}

func newFakeSaved() *fakeSaved {
	return &fakeSaved{rows: map[string]SavedOutfit{}, palettes: map[string][]float32{}}
}

func (f *fakeSaved) Insert(_ context.Context, so SavedOutfit, palette []float32) (SavedOutfit, error) {
	f.rows[so.ID] = so
	f.palettes[so.ID] = palette
	return so, nil
}

func (f *fakeSaved) Get(_ context.Context, id string) (SavedOutfit, bool, error) {
	so, ok := f.rows[id]
	return so, ok, nil
}

func (f *fakeSaved) List(_ context.Context, filter SavedFilter) ([]SavedOutfit, error) {
	var out []SavedOutfit
	for _, so := range f.rows {
		if filter.FavoritesOnly && !so.IsFavorite {
			continue
		}
		out = append(out, so)
	}
	return out, nil
}

func (f *fakeSaved) Update(_ context.Context, so SavedOutfit) (SavedOutfit, error) {
	if _, ok := f.rows[so.ID]; !ok {
		return SavedOutfit{}, ErrNotFound
	}
	f.rows[so.ID] = so
	return so, nil
}

func (f *fakeSaved) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeSaved) FindNearest(_ context.Context, palette []float32, excludeID string, limit int) ([]SimilarMatch, error) {
	var out []SimilarMatch
	for id, p := range f.palettes {
		if id == excludeID {
			continue
		}
		var sum float64
		for i := range p {
			d := float64(p[i] - palette[i])
			sum += d * d
		}
		out = append(out, SimilarMatch{Saved: f.rows[id], Distance: math.Sqrt(sum)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(items ItemSource, moods MoodSource) (*service, *fakeSaved, *fakeStore) {
	saved := newFakeSaved()
	store := newFakeStore()
	svc := NewService(ServiceConfig{Generator: DefaultConfig(), Seed: 11}, items, moods, saved, store, testLogger()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, saved, store
}

func TestServiceGenerateUsesSnapshotAndCaches(t *testing.T) {
	svc, _, store := newTestService(fakeItems{items: scenarioItems()}, nil)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, GenerateRequest{Count: 2, Occasion: " Casual "})
	require.NoError(t, err)
	require.Len(t, resp.Outfits, 1)
	require.Equal(t, "casual", resp.Outfits[0].Occasion)

	cached, err := svc.Generated(ctx, resp.Outfits[0].ID)
	require.NoError(t, err)
	require.Equal(t, resp.Outfits[0].ItemIDs(), cached.ItemIDs())
	require.Equal(t, int64(1), store.vibes["casual"])

	trending, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Equal(t, []VibeCount{{Vibe: "casual", Count: 1}}, trending)

	_, err = svc.Generated(ctx, "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestServiceGenerateSurfacesStoreFailure(t *testing.T) {
	svc, _, _ := newTestService(fakeItems{err: errors.New("db down")}, nil)
	_, err := svc.Generate(context.Background(), GenerateRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func TestServiceGenerateSmallPoolIsEmpty(t *testing.T) {
	svc, _, _ := newTestService(fakeItems{}, nil)
	resp, err := svc.Generate(context.Background(), GenerateRequest{Items: scenarioItems()[:1]})
	require.NoError(t, err)
	require.Empty(t, resp.Outfits)
}

func TestServiceGenerateForMood(t *testing.T) {
	moods := fakeMoods{"m1": {ID: "m1", Title: "Board meeting", Vibe: mood.VibeFormal, Colors: []string{"#000000"}}}
	svc, _, _ := newTestService(fakeItems{items: scenarioItems()}, moods)
	ctx := context.Background()

	resp, err := svc.GenerateForMood(ctx, MoodRequest{MoodID: "m1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Outfit)
	require.NotNil(t, resp.Outfit.MoodScore)
	require.Empty(t, resp.Outfit.Occasion)

	_, err = svc.GenerateForMood(ctx, MoodRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.GenerateForMood(ctx, MoodRequest{Mood: "edgy", MoodColors: []string{"zz"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.GenerateForMood(ctx, MoodRequest{MoodID: "nope"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	empty, err := svc.GenerateForMood(ctx, MoodRequest{Mood: "cozy", Items: scenarioItems()[:2]})
	require.NoError(t, err)
	require.Nil(t, empty.Outfit)
}

func TestServiceSavedLifecycle(t *testing.T) {
	svc, saved, _ := newTestService(fakeItems{items: scenarioItems()}, nil)
	ctx := context.Background()

	gen, err := svc.Generate(ctx, GenerateRequest{Count: 1})
	require.NoError(t, err)
	require.Len(t, gen.Outfits, 1)

	so, err := svc.Save(ctx, SaveRequest{OutfitID: gen.Outfits[0].ID, Notes: " weekend "})
	require.NoError(t, err)
	require.Equal(t, "casual outfit", so.Name)
	require.Equal(t, "weekend", so.Notes)
	require.Equal(t, fixedNow, so.CreatedAt)
	require.Len(t, saved.palettes[so.ID], PaletteDimensions)

	rating := 6
	_, err = svc.UpdateSaved(ctx, so.ID, UpdateRequest{Rating: &rating})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	rating = 4
	name := "Friday"
	updated, err := svc.UpdateSaved(ctx, so.ID, UpdateRequest{Rating: &rating, Name: &name})
	require.NoError(t, err)
	require.Equal(t, 4, updated.Rating)
	require.Equal(t, "Friday", updated.Name)

	worn, err := svc.MarkWorn(ctx, so.ID)
	require.NoError(t, err)
	worn, err = svc.MarkWorn(ctx, so.ID)
	require.NoError(t, err)
	require.Equal(t, 2, worn.WornCount)
	require.NotNil(t, worn.LastWornAt)
	require.Equal(t, fixedNow, *worn.LastWornAt)

	fav, err := svc.ToggleFavorite(ctx, so.ID)
	require.NoError(t, err)
	require.True(t, fav.IsFavorite)
	favs, err := svc.ListSaved(ctx, SavedFilter{FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, favs, 1)
	fav, err = svc.ToggleFavorite(ctx, so.ID)
	require.NoError(t, err)
	require.False(t, fav.IsFavorite)

	require.NoError(t, svc.DeleteSaved(ctx, so.ID))
	_, err = svc.MarkWorn(ctx, so.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.True(t, apperrors.IsCode(svc.DeleteSaved(ctx, so.ID), apperrors.CodeNotFound))
}

func TestServiceSaveValidation(t *testing.T) {
	svc, _, _ := newTestService(fakeItems{}, nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, SaveRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Save(ctx, SaveRequest{OutfitID: "expired"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	so, err := svc.Save(ctx, SaveRequest{Name: "Mine", Outfit: &Outfit{
		ID:    "explicit",
		Items: []wardrobe.Item{testItem("1", "tshirts", []string{"#FF0000"}, "party")},
	}})
	require.NoError(t, err)
	require.Equal(t, "Mine", so.Name)
	require.Equal(t, "party", so.Outfit.Vibe)
	require.Equal(t, []string{"#FF0000"}, so.Outfit.DominantColors)
}

func TestServiceSimilarSaved(t *testing.T) {
	svc, _, _ := newTestService(fakeItems{}, nil)
	ctx := context.Background()
	save := func(hex string) SavedOutfit {
		so, err := svc.Save(ctx, SaveRequest{Outfit: &Outfit{
			Items: []wardrobe.Item{testItem(hex, "tshirts", []string{hex})},
		}})
		require.NoError(t, err)
		return so
	}
	black := save("#000000")
	save("#FFFFFF")
	near := save("#101010")

	matches, err := svc.SimilarSaved(ctx, black.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, near.ID, matches[0].Saved.ID)

	_, err = svc.SimilarSaved(ctx, "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestServiceValidate(t *testing.T) {
	svc, _, _ := newTestService(fakeItems{}, nil)
	resp, err := svc.Validate(context.Background(), ValidateRequest{Items: scenarioItems()})
	require.NoError(t, err)
	require.True(t, resp.IsValid)
	require.True(t, resp.HasMinimumComposition)
	require.Equal(t, 85.0, resp.Completeness)
	require.Equal(t, 100.0, resp.LogicalCompatibility)
	require.Equal(t, 75.0, resp.ColorHarmony)

	_, err = svc.Validate(context.Background(), ValidateRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

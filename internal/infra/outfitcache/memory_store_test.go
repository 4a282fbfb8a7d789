package outfitcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-studio/internal/domain/outfit"
)

func TestMemoryStoreOutfitTTL(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SaveOutfit(ctx, outfit.Outfit{ID: "o1", Vibe: "casual"}, time.Minute))
	require.NoError(t, store.SaveOutfit(ctx, outfit.Outfit{ID: "o2"}, 0))

	got, ok, err := store.GetOutfit(ctx, "o1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "casual", got.Vibe)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.GetOutfit(ctx, "o1")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, _ = store.GetOutfit(ctx, "o2")
	require.True(t, ok)
}

func TestMemoryStoreTopVibes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, v := range []string{"casual", "edgy", "casual", "", "formal", "edgy", "casual"} {
		require.NoError(t, store.IncrementVibe(ctx, v))
	}

	top, err := store.TopVibes(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []outfit.VibeCount{{Vibe: "casual", Count: 3}, {Vibe: "edgy", Count: 2}}, top)

	all, err := store.TopVibes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

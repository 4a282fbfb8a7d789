package outfit

import (
	"context"
	"errors"
	"time"

	"github.com/yanqian/outfit-studio/internal/domain/mood"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// ErrNotFound is returned by repositories for unknown saved outfits.
var ErrNotFound = errors.New("saved outfit not found")

// SavedRepository persists saved outfits. Palette is the PaletteVector of the
// outfit's dominant colors and backs the similarity search.
type SavedRepository interface {
	Insert(ctx context.Context, saved SavedOutfit, palette []float32) (SavedOutfit, error)
	Get(ctx context.Context, id string) (SavedOutfit, bool, error)
	List(ctx context.Context, filter SavedFilter) ([]SavedOutfit, error)
	Update(ctx context.Context, saved SavedOutfit) (SavedOutfit, error)
	Delete(ctx context.Context, id string) error
	FindNearest(ctx context.Context, palette []float32, excludeID string, limit int) ([]SimilarMatch, error)
}

// Store keeps recently generated outfits and vibe popularity.
type Store interface {
	GetOutfit(ctx context.Context, id string) (Outfit, bool, error)
	SaveOutfit(ctx context.Context, o Outfit, ttl time.Duration) error
	IncrementVibe(ctx context.Context, vibe string) error
	TopVibes(ctx context.Context, limit int) ([]VibeCount, error)
}

// ItemSource supplies the wardrobe snapshot used when a request omits items.
type ItemSource interface {
	Snapshot(ctx context.Context) ([]wardrobe.Item, error)
}

// MoodSource resolves stored moods.
type MoodSource interface {
	Get(ctx context.Context, id string) (mood.Mood, error)
}

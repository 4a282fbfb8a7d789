package outfit

import (
	"time"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// Outfit is a scored set of items meant to be worn together.
type Outfit struct {
	ID                   string          `json:"id"`
	Items                []wardrobe.Item `json:"items"`
	Vibe                 string          `json:"vibe"`
	DominantColors       []string        `json:"dominantColors"`
	Tags                 []string        `json:"tags"`
	Score                float64         `json:"score"`
	ColorHarmony         float64         `json:"colorHarmony"`
	Completeness         float64         `json:"completeness"`
	StyleCoherence       float64         `json:"styleCoherence"`
	LogicalCompatibility float64         `json:"logicalCompatibility"`
	Occasion             string          `json:"occasion,omitempty"`
	MoodScore            *float64        `json:"moodScore,omitempty"`
	Label                string          `json:"label"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ItemIDs returns the ids of the outfit's items in order.
func (o Outfit) ItemIDs() []string {
	ids := make([]string, len(o.Items))
	for i, it := range o.Items {
		ids[i] = it.ID
	}
	return ids
}

// Rand is the randomness the generator consumes. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// GenerateRequest asks for a batch of outfits. Items default to the whole
// wardrobe when omitted.
type GenerateRequest struct {
	Items    []wardrobe.Item `json:"items"`
	Count    int             `json:"count"`
	Occasion string          `json:"occasion"`
}

// GenerateResponse carries a ranked batch.
type GenerateResponse struct {
	Outfits []Outfit `json:"outfits"`
}

// MoodRequest asks for the outfit that best fits a mood. MoodID pulls the
// vibe and palette from the mood store.
type MoodRequest struct {
	Items      []wardrobe.Item `json:"items"`
	Mood       string          `json:"mood"`
	MoodID     string          `json:"moodId"`
	MoodColors []string        `json:"moodColors"`
	Count      int             `json:"count"`
}

// MoodResponse carries the best mood match, or nil when nothing qualified.
type MoodResponse struct {
	Outfit *Outfit `json:"outfit"`
}

// VibeCount is a trending vibe tally.
type VibeCount struct {
	Vibe  string `json:"vibe"`
	Count int64  `json:"count"`
}

// SavedOutfit is an outfit the user kept.
type SavedOutfit struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Notes      string     `json:"notes"`
	Outfit     Outfit     `json:"outfit"`
	Rating     int        `json:"rating"`
	IsFavorite bool       `json:"isFavorite"`
	WornCount  int        `json:"wornCount"`
	LastWornAt *time.Time `json:"lastWornAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// SaveRequest saves either a cached generation (OutfitID) or an explicit outfit.
type SaveRequest struct {
	OutfitID string  `json:"outfitId"`
	Outfit   *Outfit `json:"outfit"`
	Name     string  `json:"name"`
	Notes    string  `json:"notes"`
}

// UpdateRequest patches a saved outfit. Nil fields are left unchanged.
type UpdateRequest struct {
	Name       *string `json:"name"`
	Notes      *string `json:"notes"`
	Rating     *int    `json:"rating"`
	IsFavorite *bool   `json:"isFavorite"`
}

// SavedFilter narrows saved outfit listings.
type SavedFilter struct {
	FavoritesOnly bool `form:"favorites"`
	Limit         int  `form:"limit"`
}

// SimilarMatch is a saved outfit with its palette distance.
type SimilarMatch struct {
	Saved    SavedOutfit `json:"saved"`
	Distance float64     `json:"distance"`
}

// Occasions are the occasions the generator understands. Any other value is
// accepted and treated as unspecified.
var Occasions = []string{"casual", "formal", "business", "party", "summer", "winter", "spring", "fall"}

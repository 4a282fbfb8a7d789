package mood

import (
	"context"
	"errors"
	"time"
)

// Vibe is the overall feel a mood board aims for.
type Vibe string

const (
	VibeCasual       Vibe = "casual"
	VibeFormal       Vibe = "formal"
	VibeCozy         Vibe = "cozy"
	VibeEdgy         Vibe = "edgy"
	VibeRomantic     Vibe = "romantic"
	VibeProfessional Vibe = "professional"
	VibeSporty       Vibe = "sporty"
	VibeBohemian     Vibe = "bohemian"
)

// Vibes lists every accepted vibe.
var Vibes = []Vibe{VibeCasual, VibeFormal, VibeCozy, VibeEdgy, VibeRomantic, VibeProfessional, VibeSporty, VibeBohemian}

// Valid reports whether v is a known vibe.
func (v Vibe) Valid() bool {
	for _, known := range Vibes {
		if v == known {
			return true
		}
	}
	return false
}

// Mood is a named palette plus style tags.
type Mood struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Colors      []string  `json:"colors"`
	Tags        []string  `json:"tags"`
	Vibe        Vibe      `json:"vibe"`
	Emoji       string    `json:"emoji"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Request is the create/update payload.
type Request struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	Tags        []string `json:"tags"`
	Vibe        Vibe     `json:"vibe"`
	Emoji       string   `json:"emoji"`
}

// Stats summarizes stored moods.
type Stats struct {
	TotalMoods     int      `json:"totalMoods"`
	FavoriteVibe   Vibe     `json:"favoriteVibe"`
	MostUsedColors []string `json:"mostUsedColors"`
	RecentMoods    int      `json:"recentMoods"`
}

// ErrNotFound is returned by repositories for unknown ids.
var ErrNotFound = errors.New("mood not found")

// Repository persists moods. List returns newest first.
type Repository interface {
	Insert(ctx context.Context, m Mood) (Mood, error)
	Get(ctx context.Context, id string) (Mood, bool, error)
	List(ctx context.Context) ([]Mood, error)
	Update(ctx context.Context, m Mood) (Mood, error)
	Delete(ctx context.Context, id string) error
}

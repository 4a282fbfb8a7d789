package outfit

import (
	"sort"
	"strings"

	"github.com/yanqian/outfit-studio/internal/domain/color"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// moodKeywords widens a mood into the words items are usually tagged with.
var moodKeywords = map[string][]string{
	"casual":       {"casual", "comfort", "everyday", "relaxed"},
	"formal":       {"formal", "business", "professional", "suit"},
	"cozy":         {"cozy", "warm", "soft", "comfort", "knit"},
	"edgy":         {"edgy", "rock", "leather", "bold", "statement"},
	"romantic":     {"romantic", "feminine", "floral", "lace", "soft"},
	"professional": {"professional", "business", "office", "formal"},
	"sporty":       {"sporty", "athletic", "active", "gym", "workout"},
	"bohemian":     {"bohemian", "boho", "flowy", "earthy", "artistic"},
}

// GenerateForMood returns the outfit that best fits mood and its palette.
func (g *Generator) GenerateForMood(items []wardrobe.Item, mood string, moodColors []string, count int, rnd Rand) (Outfit, bool) {
	ranked := g.rankForMood(items, mood, moodColors, count, rnd)
	if len(ranked) == 0 {
		return Outfit{}, false
	}
	return ranked[0], true
}

func (g *Generator) rankForMood(items []wardrobe.Item, mood string, moodColors []string, count int, rnd Rand) []Outfit {
	mood = strings.ToLower(strings.TrimSpace(mood))
	pool := filterByMood(items, mood)
	if len(pool) < g.cfg.MinItems {
		pool = items
	}

	// The mood biases the pool and the ranking only; construction runs
	// without occasion rules.
	return g.applyMood(g.Generate(pool, count, "", rnd), moodColors)
}

// applyMood blends each outfit's score with its palette fit and re-ranks.
// Without a palette the mood score equals the base score.
func (g *Generator) applyMood(batch []Outfit, moodColors []string) []Outfit {
	for i := range batch {
		ms := batch[i].Score
		if avg, ok := color.MeanCompatibility(colorsOf(batch[i].Items), moodColors); ok {
			ms = round1(g.cfg.MoodBaseWeight*batch[i].Score + g.cfg.MoodColorWeight*avg)
		}
		batch[i].MoodScore = &ms
	}
	sort.SliceStable(batch, func(i, j int) bool { return *batch[i].MoodScore > *batch[j].MoodScore })
	return batch
}

// filterByMood keeps items whose tags or description mention the mood.
func filterByMood(items []wardrobe.Item, mood string) []wardrobe.Item {
	if mood == "" {
		return items
	}
	keywords := append([]string{mood}, moodKeywords[mood]...)
	var out []wardrobe.Item
	for _, it := range items {
		if mentions(it, keywords) {
			out = append(out, it)
		}
	}
	return out
}

func mentions(it wardrobe.Item, keywords []string) bool {
	desc := strings.ToLower(it.Description)
	for _, k := range keywords {
		if strings.Contains(desc, k) {
			return true
		}
		for _, t := range it.Tags {
			if strings.Contains(strings.ToLower(t), k) {
				return true
			}
		}
	}
	return false
}

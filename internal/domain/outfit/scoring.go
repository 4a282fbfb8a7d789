package outfit

import (
	"math"
	"strings"

	"github.com/yanqian/outfit-studio/internal/domain/category"
	"github.com/yanqian/outfit-studio/internal/domain/color"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

type scores struct {
	harmony      float64
	completeness float64
	style        float64
	logic        float64
	overall      float64
}

// styleFamilies groups tags that read as the same style. A tag may only
// belong to one family.
var styleFamilies = []struct {
	name string
	tags []string
}{
	{"casual", []string{"casual", "comfortable", "comfort", "relaxed", "everyday", "cozy"}},
	{"formal", []string{"formal", "business", "elegant", "professional", "office", "minimalist"}},
	{"edgy", []string{"edgy", "rock", "punk", "leather", "bold", "statement"}},
	{"romantic", []string{"romantic", "feminine", "floral", "lace", "soft"}},
	{"sporty", []string{"sporty", "athletic", "active", "gym", "workout"}},
	{"bohemian", []string{"bohemian", "boho", "flowy", "earthy", "artistic"}},
	{"vintage", []string{"vintage", "retro", "classic"}},
}

var tagFamily = func() map[string]string {
	m := map[string]string{}
	for _, f := range styleFamilies {
		for _, t := range f.tags {
			m[t] = f.name
		}
	}
	return m
}()

func (g *Generator) score(items []wardrobe.Item) scores {
	s := scores{
		harmony:      color.Harmony(colorsOf(items)),
		completeness: category.Completeness(items),
		style:        styleCoherence(items),
		logic:        category.LogicalCompatibility(items),
	}
	w := g.cfg.Weights
	s.overall = round1(clamp(
		s.harmony*w.Color+s.completeness*w.Completeness+s.style*w.Style+s.logic*w.Logic,
	))
	return s
}

// styleCoherence rewards outfits whose items share a style family. Outfits
// without any family tag score a neutral 50.
func styleCoherence(items []wardrobe.Item) float64 {
	if len(items) == 0 {
		return 50
	}
	perFamily := map[string]int{}
	for _, it := range items {
		seen := map[string]bool{}
		for _, t := range it.Tags {
			f, ok := tagFamily[strings.ToLower(t)]
			if ok && !seen[f] {
				seen[f] = true
				perFamily[f]++
			}
		}
	}
	if len(perFamily) == 0 {
		return 50
	}
	dominant := 0
	for _, n := range perFamily {
		if n > dominant {
			dominant = n
		}
	}
	density := float64(dominant) / float64(len(items))
	return clamp(50 + 50*density - 10*float64(len(perFamily)-1))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ScoreLabel buckets an overall score for display.
func ScoreLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent Match"
	case score >= 60:
		return "Good Match"
	case score >= 40:
		return "Okay Match"
	default:
		return "Experimental"
	}
}

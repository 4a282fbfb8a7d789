package outfit

import (
	"sort"
	"strings"

	"github.com/yanqian/outfit-studio/internal/domain/color"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// vibeVocabulary is ordered; earlier entries win ties.
var vibeVocabulary = []string{
	"casual", "formal", "business", "party", "elegant", "trendy", "comfortable",
	"cozy", "sporty", "bohemian", "minimalist", "vintage", "edgy", "romantic",
}

const defaultVibe = "casual"

func vibeOf(items []wardrobe.Item) string {
	counts := map[string]int{}
	for _, it := range items {
		for _, t := range it.Tags {
			counts[strings.ToLower(t)]++
		}
	}
	best, bestN := defaultVibe, 0
	for _, v := range vibeVocabulary {
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best
}

// topTags returns up to limit lower-cased tags by frequency, first seen first.
func topTags(items []wardrobe.Item, limit int) []string {
	counts := map[string]int{}
	var order []string
	for _, it := range items {
		for _, t := range it.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}

// dominantColors groups colors that sit within maxDistance of a group's
// first member and returns the averages of the largest groups.
func dominantColors(items []wardrobe.Item, maxDistance float64, limit int) []string {
	var groups [][]color.RGB
	for _, hex := range colorsOf(items) {
		rgb, err := color.ParseHex(hex)
		if err != nil {
			continue
		}
		placed := false
		for i, grp := range groups {
			if grp[0].Distance(rgb) < maxDistance {
				groups[i] = append(grp, rgb)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []color.RGB{rgb})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i]) > len(groups[j]) })
	if len(groups) > limit {
		groups = groups[:limit]
	}
	out := make([]string, len(groups))
	for i, grp := range groups {
		out[i] = color.Average(grp).Hex()
	}
	return out
}

// PaletteVector encodes up to three dominant colors as a fixed-length
// vector of normalized RGB channels, zero padded.
func PaletteVector(colors []string) []float32 {
	vec := make([]float32, PaletteDimensions)
	n := 0
	for _, hex := range colors {
		if n == 3 {
			break
		}
		rgb, err := color.ParseHex(hex)
		if err != nil {
			continue
		}
		vec[n*3] = float32(rgb.R) / 255
		vec[n*3+1] = float32(rgb.G) / 255
		vec[n*3+2] = float32(rgb.B) / 255
		n++
	}
	return vec
}

// PaletteDimensions is the length of PaletteVector.
const PaletteDimensions = 9

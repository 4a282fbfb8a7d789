package color

import (
	"sort"
	"strings"
)

// classicPairs are matched literally: upper-cased hex, unordered.
var classicPairs = [][2]string{
	{"#000000", "#FFFFFF"}, // black & white
	{"#000080", "#FFFFFF"}, // navy & white
	{"#000000", "#FFD700"}, // black & gold
	{"#8B4513", "#FFFFFF"}, // brown & white
	{"#008000", "#8B4513"}, // green & brown
	{"#000080", "#DAA520"}, // navy & goldenrod
}

// suggestionPalette is ordered neutrals, classics, then earth tones.
var suggestionPalette = []string{
	"#000000", "#FFFFFF", "#808080", "#F5F5F5", "#8B4513",
	"#000080", "#DAA520", "#008000", "#800000", "#2F4F4F",
	"#DEB887", "#CD853F", "#A0522D", "#556B2F", "#6B8E23",
}

// Compatibility scores how well two colors pair, 0..100. The score is
// symmetric in its arguments.
func Compatibility(c1, c2 string) int {
	return compatibility(Analyze(c1), Analyze(c2))
}

func compatibility(p1, p2 Profile) int {
	score := 0

	if p1.Category == Neutral || p2.Category == Neutral {
		score += 40
	}
	if p1.Temperature == p2.Temperature {
		score += 25
	}

	hueDiff := HueDistance(p1.HSL.H, p2.HSL.H)
	if hueDiff > 150 && hueDiff < 210 {
		score += 30
	}
	if hueDiff < 60 {
		score += 20
	}
	if hueDiff < 30 && (absInt(p1.HSL.S-p2.HSL.S) > 20 || absInt(p1.HSL.L-p2.HSL.L) > 20) {
		score += 25
	}

	switch {
	case pairIs(p1.Intensity, p2.Intensity, Vibrant, Muted):
		score += 15
	case p1.Intensity == p2.Intensity:
		score += 10
	}

	if pairIs(p1.Category, p2.Category, Earth, Jewel) {
		score += 20
	}
	if p1.Category == Pastel && p2.Category == Pastel {
		score += 15
	}
	if p1.Category == Bright && p2.Category == Bright && hueDiff > 60 && hueDiff < 150 {
		score -= 30
	}
	if isClassicPair(p1.Hex, p2.Hex) {
		score += 35
	}

	return clampInt(score, 0, 100)
}

// HueDistance is the shortest angular distance between two hues.
func HueDistance(h1, h2 int) int {
	d := absInt(h1 - h2)
	if 360-d < d {
		return 360 - d
	}
	return d
}

// Harmony aggregates pairwise compatibility across every color of an outfit.
func Harmony(colors []string) float64 {
	if len(colors) < 2 {
		return 100
	}
	profiles := make([]Profile, len(colors))
	neutrals := 0
	for i, c := range colors {
		profiles[i] = Analyze(c)
		if profiles[i].Category == Neutral {
			neutrals++
		}
	}

	total, pairs := 0, 0
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			total += compatibility(profiles[i], profiles[j])
			pairs++
		}
	}
	avg := float64(total) / float64(pairs)

	switch neutrals {
	case 1:
		avg += 10
	case 2:
		avg += 5
	}
	return clampFloat(avg, 0, 100)
}

// MeanCompatibility is the average score of every (a, b) pair drawn from
// the two sets. It returns ok=false when either set is empty.
func MeanCompatibility(as, bs []string) (float64, bool) {
	if len(as) == 0 || len(bs) == 0 {
		return 0, false
	}
	total := 0
	for _, a := range as {
		pa := Analyze(a)
		for _, b := range bs {
			total += compatibility(pa, Analyze(b))
		}
	}
	return float64(total) / float64(len(as)*len(bs)), true
}

// BestMatches returns up to three pool colors that pair best with target,
// highest first. Ties keep pool order.
func BestMatches(target string, pool []string) []string {
	type scored struct {
		color string
		score int
	}
	tp := Analyze(target)
	candidates := make([]scored, 0, len(pool))
	for _, c := range pool {
		if c == target {
			continue
		}
		candidates = append(candidates, scored{color: c, score: compatibility(tp, Analyze(c))})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.color
	}
	return out
}

// Suggest proposes up to five palette colors that complement existing.
func Suggest(existing []string) []string {
	if len(existing) == 0 {
		return append([]string(nil), suggestionPalette[:5]...)
	}
	present := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		present[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	type scored struct {
		color string
		score float64
	}
	candidates := make([]scored, 0, len(suggestionPalette))
	for _, c := range suggestionPalette {
		if _, ok := present[c]; ok {
			continue
		}
		avg, _ := MeanCompatibility([]string{c}, existing)
		candidates = append(candidates, scored{color: c, score: avg})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.color
	}
	return out
}

func isClassicPair(a, b string) bool {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	for _, p := range classicPairs {
		if (a == p[0] && b == p[1]) || (a == p[1] && b == p[0]) {
			return true
		}
	}
	return false
}

func pairIs[T comparable](a, b, x, y T) bool {
	return (a == x && b == y) || (a == y && b == x)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

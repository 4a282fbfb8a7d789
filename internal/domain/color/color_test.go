package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var palette = []string{
	"#000000", "#FFFFFF", "#808080", "#0000FF", "#FF0000", "#00FF00",
	"#FFC0CB", "#E0FFFF", "#8B4513", "#A68059", "#80FF80", "#FF8080",
	"#000080", "#DAA520", "#FFD700", "#2F4F4F", "#800000", "#556B2F",
	"#abc", "not-a-color", "",
}

func TestAnalyzeClassification(t *testing.T) {
	cases := []struct {
		hex         string
		hsl         HSL
		temperature Temperature
		intensity   Intensity
		category    Category
	}{
		{"#000000", HSL{0, 0, 0}, NeutralTemp, Muted, Neutral},
		{"#FFFFFF", HSL{0, 0, 100}, NeutralTemp, Muted, Neutral},
		{"#0000FF", HSL{240, 100, 50}, Cool, Vibrant, Jewel},
		{"#FF0000", HSL{0, 100, 50}, Warm, Vibrant, Jewel},
		{"#FFC0CB", HSL{350, 100, 88}, Warm, Muted, Pastel},
		{"#E0FFFF", HSL{180, 100, 94}, Cool, Muted, Pastel},
		{"#A68059", HSL{30, 30, 50}, Warm, NeutralIntense, Earth},
		{"#80FF80", HSL{120, 100, 75}, Cool, Vibrant, Bright},
		{"#8B4513", HSL{25, 76, 31}, Warm, Vibrant, Neutral},
	}

	for _, tc := range cases {
		p := Analyze(tc.hex)
		require.True(t, p.Valid, tc.hex)
		require.Equal(t, tc.hsl, p.HSL, tc.hex)
		require.Equal(t, tc.temperature, p.Temperature, tc.hex)
		require.Equal(t, tc.intensity, p.Intensity, tc.hex)
		require.Equal(t, tc.category, p.Category, tc.hex)
	}
}

func TestAnalyzeMalformedFallsBackToGray(t *testing.T) {
	for _, hex := range []string{"", "#12", "blue", "#GGGGGG"} {
		p := Analyze(hex)
		require.False(t, p.Valid, hex)
		require.Equal(t, HSL{0, 0, 50}, p.HSL)
		require.Equal(t, NeutralTemp, p.Temperature)
		require.Equal(t, Muted, p.Intensity)
		require.Equal(t, Neutral, p.Category)
	}
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("#abc")
	require.True(t, ok)
	require.Equal(t, "#AABBCC", got)

	got, ok = Normalize(" 0a0B0c ")
	require.True(t, ok)
	require.Equal(t, "#0A0B0C", got)

	_, ok = Normalize("#12345")
	require.False(t, ok)
}

func TestCompatibilityIsSymmetricAndBounded(t *testing.T) {
	for _, a := range palette {
		for _, b := range palette {
			ab := Compatibility(a, b)
			require.Equal(t, ab, Compatibility(b, a), "%s vs %s", a, b)
			require.GreaterOrEqual(t, ab, 0)
			require.LessOrEqual(t, ab, 100)
		}
	}
}

func TestCompatibilityRules(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want int
	}{
		{"black and white classic clamps", "#000000", "#ffffff", 100},
		{"neutral with vibrant", "#000000", "#0000FF", 55},
		{"white with vibrant", "#0000FF", "#FFFFFF", 55},
		{"two jewels far apart", "#0000FF", "#FF0000", 10},
		{"clashing brights", "#80FF80", "#FF8080", 0},
		{"complementary pastels", "#FFC0CB", "#E0FFFF", 55},
		{"malformed reads as gray", "nope", "#000000", 100},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Compatibility(tc.a, tc.b), tc.name)
	}
}

func TestClassicPairsAreLiteral(t *testing.T) {
	require.True(t, isClassicPair("#000080", "#daa520"))
	require.True(t, isClassicPair("#FFFFFF", "#8b4513"))
	require.False(t, isClassicPair("#000000", "#000000"))
	require.False(t, isClassicPair("#000", "#FFF"))
}

func TestHarmony(t *testing.T) {
	require.Equal(t, 100.0, Harmony(nil))
	require.Equal(t, 100.0, Harmony([]string{"#FF0000"}))
	require.Equal(t, 75.0, Harmony([]string{"#000000", "#0000FF", "#FFFFFF"}))
	require.Equal(t, 10.0, Harmony([]string{"#0000FF", "#FF0000"}))
	require.Equal(t, 65.0, Harmony([]string{"#0000FF", "#FF0000", "#000000"}))

	for i := 0; i+3 <= len(palette); i++ {
		h := Harmony(palette[i : i+3])
		require.GreaterOrEqual(t, h, 0.0)
		require.LessOrEqual(t, h, 100.0)
	}
}

func TestMeanCompatibility(t *testing.T) {
	_, ok := MeanCompatibility(nil, []string{"#000000"})
	require.False(t, ok)

	avg, ok := MeanCompatibility([]string{"#000000"}, []string{"#FFFFFF", "#0000FF"})
	require.True(t, ok)
	require.Equal(t, 77.5, avg)
}

func TestBestMatches(t *testing.T) {
	got := BestMatches("#000000", []string{"#000000", "#0000FF", "#FFFFFF", "#FF0000", "#80FF80"})
	require.Equal(t, []string{"#FFFFFF", "#FF0000", "#0000FF"}, got)
	require.Empty(t, BestMatches("#000000", nil))
}

func TestSuggest(t *testing.T) {
	require.Equal(t, suggestionPalette[:5], Suggest(nil))

	existing := []string{"#000000", "#0000FF"}
	got := Suggest(existing)
	require.Len(t, got, 5)
	require.NotContains(t, got, "#000000")

	prev := 101.0
	for _, c := range got {
		require.Contains(t, suggestionPalette, c)
		score, _ := MeanCompatibility([]string{c}, existing)
		require.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestRGBHelpers(t *testing.T) {
	black, err := ParseHex("#000000")
	require.NoError(t, err)
	white, err := ParseHex("FFF")
	require.NoError(t, err)

	require.InDelta(t, 441.67, black.Distance(white), 0.01)
	require.Equal(t, "#808080", Average([]RGB{black, white}).Hex())
	require.Equal(t, 180, HueDistance(0, 180))
	require.Equal(t, 20, HueDistance(350, 10))
}

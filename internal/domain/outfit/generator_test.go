package outfit

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-studio/internal/domain/category"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(int) int { return 0 }

func (r fixedRand) Shuffle(int, func(i, j int)) {}

func seeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func testItem(id, cat string, colors []string, tags ...string) wardrobe.Item {
	return wardrobe.Item{ID: id, Name: id, Category: cat, Colors: colors, Tags: tags}
}

func newTestGenerator() *Generator {
	g := NewGenerator(DefaultConfig())
	n := 0
	g.newID = func() string {
		n++
		return fmt.Sprintf("outfit-%d", n)
	}
	return g
}

func scenarioItems() []wardrobe.Item {
	return []wardrobe.Item{
		{ID: "top", Category: "tshirts", Colors: []string{"#000000"}},
		{ID: "bottom", Category: "pants", Colors: []string{"#0000FF"}},
		{ID: "shoes", Category: "sneakers", Colors: []string{"#FFFFFF"}},
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinOutfitScore = 0
	cfg.GenerationThreshold = 0
	cfg.DressChance = 0
	got := NewGenerator(cfg).Config()
	require.Zero(t, got.MinOutfitScore)
	require.Zero(t, got.GenerationThreshold)
	require.Zero(t, got.DressChance)

	got = NewGenerator(Config{MinOutfitScore: -1, GenerationThreshold: -1}).Config()
	d := DefaultConfig()
	require.Equal(t, d.MinOutfitScore, got.MinOutfitScore)
	require.Equal(t, d.GenerationThreshold, got.GenerationThreshold)
	require.Equal(t, d.AttemptMultiplier, got.AttemptMultiplier)
	require.Equal(t, d.Weights, got.Weights)
}

func TestGenerateRequiresMinimumPool(t *testing.T) {
	g := newTestGenerator()
	require.Empty(t, g.Generate(nil, 3, "", seeded(1)))
	require.Empty(t, g.Generate(scenarioItems()[:2], 3, "", seeded(1)))
}

func TestGenerateBlackBlueWhiteScenario(t *testing.T) {
	g := newTestGenerator()
	outfits := g.Generate(scenarioItems(), 1, "", seeded(7))
	require.Len(t, outfits, 1)

	o := outfits[0]
	require.Equal(t, []string{"top", "bottom", "shoes"}, o.ItemIDs())
	require.True(t, category.Validate(o.Items).IsValid)
	require.Equal(t, 75.0, o.ColorHarmony)
	require.Equal(t, 85.0, o.Completeness)
	require.Equal(t, 50.0, o.StyleCoherence)
	require.Equal(t, 100.0, o.LogicalCompatibility)
	require.Equal(t, 76.0, o.Score)
	require.GreaterOrEqual(t, o.Score, g.Config().MinOutfitScore)
	require.Equal(t, "Good Match", o.Label)
	require.Equal(t, "casual", o.Vibe)
	require.Equal(t, []string{"#000000", "#0000FF", "#FFFFFF"}, o.DominantColors)
	require.Empty(t, o.Tags)
	require.Equal(t, "outfit-1", o.ID)
}

func TestGenerateNeverMixesDressAndTShirt(t *testing.T) {
	g := newTestGenerator()
	items := []wardrobe.Item{
		testItem("dress", "dresses", []string{"#000000"}),
		testItem("tee", "tshirts", []string{"#FFFFFF"}),
		testItem("heels", "shoes", []string{"#FFFFFF"}),
	}
	found := 0
	for seed := uint64(1); seed <= 30; seed++ {
		for _, o := range g.Generate(items, 2, "", seeded(seed)) {
			found++
			ids := o.ItemIDs()
			require.False(t, contains(ids, "dress") && contains(ids, "tee"), "seed %d: %v", seed, ids)
			require.Contains(t, ids, "dress")
		}
	}
	require.NotZero(t, found)
}

func wardrobeFixture() []wardrobe.Item {
	return []wardrobe.Item{
		testItem("tee-black", "tshirts", []string{"#000000"}, "casual"),
		testItem("tee-white", "tshirts", []string{"#FFFFFF"}, "casual"),
		testItem("sweater-grey", "sweaters", []string{"#808080"}, "winter"),
		testItem("pants-navy", "pants", []string{"#000080"}, "casual"),
		testItem("pants-black", "pants", []string{"#000000"}, "formal"),
		testItem("shorts-khaki", "shorts", []string{"#C3B091"}, "summer"),
		testItem("dress-black", "dresses", []string{"#000000"}, "elegant"),
		testItem("sneakers-white", "shoes", []string{"#FFFFFF"}, "casual"),
		testItem("boots-brown", "Chelsea boots", []string{"#8B4513"}),
		testItem("hoodie-grey", "hoodies", []string{"#808080"}, "casual"),
		testItem("coat-camel", "Wool Coat", []string{"#C19A6B"}, "winter"),
		testItem("necklace-gold", "necklaces", []string{"#FFD700"}),
		testItem("ring-silver", "rings", []string{"#C0C0C0"}),
		testItem("bracelet-gold", "bracelets", []string{"#FFD700"}),
	}
}

func TestGenerateBatchInvariants(t *testing.T) {
	g := newTestGenerator()
	items := wardrobeFixture()
	total := 0
	for seed := uint64(1); seed <= 40; seed++ {
		outfits := g.Generate(items, 4, "", seeded(seed))
		require.LessOrEqual(t, len(outfits), 4)
		total += len(outfits)

		for i, o := range outfits {
			require.True(t, category.HasMinimumComposition(o.Items), "seed %d: %v", seed, o.ItemIDs())
			require.True(t, category.Validate(o.Items).IsValid, "seed %d: %v", seed, o.ItemIDs())

			ids := o.ItemIDs()
			require.False(t, contains(ids, "pants-navy") && contains(ids, "shorts-khaki"))
			require.False(t, contains(ids, "pants-black") && contains(ids, "shorts-khaki"))

			acc := 0
			for _, it := range o.Items {
				if s, ok := category.Categorize(it); ok && s.Slot == category.SlotAccessory {
					acc++
				}
			}
			require.GreaterOrEqual(t, acc, 1)
			require.LessOrEqual(t, acc, 3)

			require.GreaterOrEqual(t, o.Score, g.Config().GenerationThreshold)
			require.LessOrEqual(t, o.Score, 100.0)
			if i > 0 {
				require.GreaterOrEqual(t, outfits[i-1].Score, o.Score)
			}
			for _, other := range outfits[:i] {
				require.Empty(t, sharedCore(o, other), "seed %d", seed)
			}
		}
	}
	require.NotZero(t, total)
}

func TestGenerateTracksItemsByPositionNotID(t *testing.T) {
	g := newTestGenerator()
	anonymous := wardrobeFixture()
	for i := range anonymous {
		anonymous[i].ID = ""
	}
	multi := 0
	for seed := uint64(1); seed <= 40; seed++ {
		withIDs := g.Generate(wardrobeFixture(), 4, "", seeded(seed))
		withoutIDs := g.Generate(anonymous, 4, "", seeded(seed))
		require.Len(t, withoutIDs, len(withIDs), "seed %d", seed)
		for i := range withIDs {
			require.Equal(t, itemNames(withIDs[i]), itemNames(withoutIDs[i]), "seed %d", seed)
		}
		if len(withoutIDs) > 1 {
			multi++
		}
	}
	require.NotZero(t, multi)
}

func TestCompatibleWithKeepsDuplicateIDsApart(t *testing.T) {
	selected := categorizePool([]wardrobe.Item{
		{Name: "tee", Category: "tshirts"},
		{Name: "bracelet", Category: "bracelets"},
		{Name: "bracelet 2", Category: "bracelets"},
	})
	candidates := categorizePool([]wardrobe.Item{
		{Name: "chain", Category: "bracelets"},
		{Name: "ring", Category: "rings"},
	})
	got := compatibleWith(selected, candidates)
	require.Len(t, got, 1)
	require.Equal(t, "ring", got[0].item.Name)
}

func TestGenerateIsReproducibleForASeed(t *testing.T) {
	a := newTestGenerator().Generate(wardrobeFixture(), 3, "casual", seeded(42))
	b := newTestGenerator().Generate(wardrobeFixture(), 3, "casual", seeded(42))
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].ItemIDs(), b[i].ItemIDs())
		require.Equal(t, a[i].Score, b[i].Score)
	}
}

func TestFormalOccasionForcesDress(t *testing.T) {
	g := newTestGenerator()
	items := []wardrobe.Item{
		testItem("dress", "dresses", []string{"#000000"}),
		testItem("tee", "tshirts", []string{"#000000"}),
		testItem("pants", "pants", []string{"#000000"}),
		testItem("heels", "shoes", []string{"#FFFFFF"}),
	}
	outfits := g.Generate(items, 1, "formal", seeded(3))
	require.Len(t, outfits, 1)
	require.Equal(t, []string{"dress", "heels"}, outfits[0].ItemIDs())
	require.Equal(t, "formal", outfits[0].Occasion)
}

func TestStandaloneTopRule(t *testing.T) {
	g := newTestGenerator()
	plain := []entry{{item: testItem("tee", "tshirts", nil)}}
	summer := []entry{{item: testItem("tee", "tshirts", nil, "Summer")}}

	require.True(t, g.standalone("", plain, fixedRand{f: 0}))
	require.True(t, g.standalone("party", plain, fixedRand{f: 0.5}))
	require.False(t, g.standalone("casual", plain, fixedRand{f: 0.9}))
	require.False(t, g.standalone("formal", plain, fixedRand{f: 0}))
	require.False(t, g.standalone("winter", plain, fixedRand{f: 0}))
	require.False(t, g.standalone("spring", plain, fixedRand{f: 0}))
	require.True(t, g.standalone("fall", summer, fixedRand{f: 0.9}))
}

func TestConstructSkipsLayerForStandaloneTShirt(t *testing.T) {
	g := newTestGenerator()
	pool := categorizePool([]wardrobe.Item{
		testItem("tee", "tshirts", []string{"#000000"}),
		testItem("pants", "pants", []string{"#000000"}),
		testItem("hoodie", "hoodies", []string{"#808080"}),
		testItem("shoes", "shoes", []string{"#FFFFFF"}),
	})
	got := g.construct(pool, "summer", fixedRand{f: 0})
	require.Equal(t, []string{"tee", "pants", "shoes"}, itemsIDs(got))

	got = g.construct(pool, "winter", fixedRand{f: 0})
	require.Equal(t, []string{"tee", "pants", "shoes", "hoodie"}, itemsIDs(got))
}

func TestShoesPreferCompatibleColors(t *testing.T) {
	g := newTestGenerator()
	pool := categorizePool([]wardrobe.Item{
		testItem("tee", "tshirts", []string{"#000000"}),
		testItem("pants", "pants", []string{"#000000"}),
		testItem("clash", "shoes", []string{"#0000FF"}),
		testItem("match", "shoes", []string{"#FFFFFF"}),
	})
	got := g.construct(pool, "casual", fixedRand{f: 0})
	require.Equal(t, []string{"tee", "pants", "match"}, itemsIDs(got))
}

func TestAccessoriesRankedByColorAndTags(t *testing.T) {
	g := newTestGenerator()
	selected := categorizePool([]wardrobe.Item{
		testItem("tee", "tshirts", []string{"#000000"}, "party"),
		testItem("pants", "pants", []string{"#000000"}, "party"),
	})
	pool := categorizePool([]wardrobe.Item{
		testItem("plain", "rings", []string{"#0000FF"}),
		testItem("tagged", "rings", []string{"#0000FF"}, "party"),
		testItem("purse", "Leather purse", []string{"#000000"}),
		testItem("bag", "Tote bag", []string{"#000000"}),
	})
	got := g.pickAccessories(selected, pool, 3)
	require.Equal(t, []string{"tagged", "purse", "plain"}, itemsIDs(got))
}

func TestTooSimilar(t *testing.T) {
	fp := func(core []int, nonCore ...int) footprint {
		f := footprint{core: map[int]struct{}{}, nonCore: map[int]struct{}{}}
		for _, idx := range core {
			f.core[idx] = struct{}{}
		}
		for _, idx := range nonCore {
			f.nonCore[idx] = struct{}{}
		}
		return f
	}
	require.True(t, tooSimilar(fp([]int{0, 1}), fp([]int{1, 2}), 0.5))
	require.True(t, tooSimilar(fp([]int{0}, 10, 11, 12), fp([]int{1}, 10, 11, 13), 0.5))
	require.False(t, tooSimilar(fp([]int{0}, 10, 11), fp([]int{1}, 10, 13), 0.5))
	require.False(t, tooSimilar(fp([]int{0}), fp([]int{1}, 10), 0.5))
}

func TestLabels(t *testing.T) {
	items := []wardrobe.Item{
		testItem("1", "tshirts", []string{"#000000", "#101010"}, "Formal", "cotton"),
		testItem("2", "pants", []string{"#FFFFFF"}, "casual", "cotton"),
		testItem("3", "shoes", []string{"bogus"}, "party", "party", "leather", "summer", "basic"),
	}
	require.Equal(t, "party", vibeOf(items))
	require.Equal(t, "casual", vibeOf(items[:2]))
	require.Equal(t, "casual", vibeOf(nil))

	require.Equal(t, []string{"cotton", "party", "formal", "casual", "leather"}, topTags(items, 5))
	require.Equal(t, []string{"#080808", "#FFFFFF"}, dominantColors(items, 50, 3))
}

func TestScoreLabel(t *testing.T) {
	require.Equal(t, "Excellent Match", ScoreLabel(80))
	require.Equal(t, "Good Match", ScoreLabel(79.9))
	require.Equal(t, "Okay Match", ScoreLabel(40))
	require.Equal(t, "Experimental", ScoreLabel(39.9))
}

func TestStyleCoherence(t *testing.T) {
	require.Equal(t, 50.0, styleCoherence(nil))
	require.Equal(t, 50.0, styleCoherence([]wardrobe.Item{testItem("1", "x", nil, "cotton")}))
	require.Equal(t, 100.0, styleCoherence([]wardrobe.Item{
		testItem("1", "x", nil, "casual"), testItem("2", "y", nil, "relaxed", "cozy"),
	}))
	require.Equal(t, 65.0, styleCoherence([]wardrobe.Item{
		testItem("1", "x", nil, "casual"), testItem("2", "y", nil, "formal"),
	}))
}

func TestPaletteVector(t *testing.T) {
	vec := PaletteVector([]string{"#FF0000", "nope", "#0000FF"})
	require.Len(t, vec, PaletteDimensions)
	require.Equal(t, []float32{1, 0, 0, 0, 0, 1, 0, 0, 0}, vec)
}

func TestApplyMoodPrefersPaletteMatches(t *testing.T) {
	g := newTestGenerator()
	batch := []Outfit{
		{ID: "magenta", Score: 70, Items: []wardrobe.Item{testItem("1", "tshirts", []string{"#FF00FF"})}},
		{ID: "black", Score: 70, Items: []wardrobe.Item{testItem("2", "tshirts", []string{"#000000"})}},
	}
	ranked := g.applyMood(batch, []string{"#000000"})
	require.Equal(t, "black", ranked[0].ID)
	require.Equal(t, 77.5, *ranked[0].MoodScore)
	require.Equal(t, 65.5, *ranked[1].MoodScore)

	unchanged := g.applyMood([]Outfit{{ID: "x", Score: 61}}, nil)
	require.Equal(t, 61.0, *unchanged[0].MoodScore)
}

func TestGenerateForMood(t *testing.T) {
	g := newTestGenerator()
	best, ok := g.GenerateForMood(scenarioItems(), "Formal", []string{"#000000"}, 3, seeded(5))
	require.True(t, ok)
	require.NotNil(t, best.MoodScore)
	require.Empty(t, best.Occasion)
	require.Len(t, best.Items, 3)

	_, ok = g.GenerateForMood(scenarioItems()[:2], "formal", nil, 3, seeded(5))
	require.False(t, ok)
}

func TestMoodDoesNotApplyOccasionRules(t *testing.T) {
	g := newTestGenerator()
	items := append(scenarioItems(), testItem("dress", "dresses", []string{"#000000"}))

	best, ok := g.GenerateForMood(items, "formal", []string{"#000000"}, 1, fixedRand{f: 0.99})
	require.True(t, ok)
	require.Equal(t, []string{"top", "bottom", "shoes"}, best.ItemIDs())
}

func TestFilterByMood(t *testing.T) {
	items := []wardrobe.Item{
		testItem("1", "tshirts", nil, "Business"),
		{ID: "2", Category: "pants", Description: "A formal trouser"},
		testItem("3", "shoes", nil, "gym"),
	}
	got := filterByMood(items, "formal")
	require.Len(t, got, 2)
	require.Equal(t, items, filterByMood(items, ""))
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func itemsIDs(entries []entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.item.ID
	}
	return ids
}

func itemNames(o Outfit) []string {
	names := make([]string, len(o.Items))
	for i, it := range o.Items {
		names[i] = it.Name
	}
	return names
}

func sharedCore(a, b Outfit) []string {
	core := map[string]bool{}
	for _, it := range a.Items {
		if s, ok := category.Categorize(it); ok && s.Slot.IsCore() {
			core[it.ID] = true
		}
	}
	var shared []string
	for _, it := range b.Items {
		if core[it.ID] {
			shared = append(shared, it.ID)
		}
	}
	return shared
}

package category

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

func item(id, name, cat string, tags ...string) wardrobe.Item {
	return wardrobe.Item{ID: id, Name: name, Category: cat, Tags: tags, Colors: []string{"#000000"}}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		item wardrobe.Item
		want string
		slot Slot
	}{
		{"exact app category", item("1", "Plain", "tshirts"), "t-shirt", SlotBase},
		{"exact is case insensitive", item("2", "Maxi", "Dresses"), "dress", SlotDress},
		{"hyphenated keyword in name", item("3", "Black T-Shirt", "tops"), "t-shirt", SlotBase},
		{"specific before generic", item("4", "Blue Denim Jacket", "outerwear"), "denim-jacket", SlotLayer},
		{"multi word outerwear", item("5", "Leather Jacket", "outer"), "leather-jacket", SlotOuter},
		{"plural keyword", item("6", "Running Sneakers", "footwear"), "sneakers", SlotShoes},
		{"tag match", item("7", "Thing", "misc", "blazer"), "blazer", SlotLayer},
		{"alias", item("8", "Grey Trousers", "bottoms"), "pants", SlotBottom},
		{"substring fallback", item("9", "X", "mensshorts"), "shorts", SlotBottom},
	}
	for _, tc := range cases {
		got, ok := Categorize(tc.item)
		require.True(t, ok, tc.name)
		require.Equal(t, tc.want, got.Name, tc.name)
		require.Equal(t, tc.slot, got.Slot, tc.name)
	}
}

func TestCategorizeMatchesWholeWordsOnly(t *testing.T) {
	got, ok := Categorize(item("1", "Sweatshirt", "tops"))
	require.True(t, ok)
	require.Equal(t, "sweatshirt", got.Name)

	_, ok = Categorize(item("2", "Mystery", "widget", "whatever"))
	require.False(t, ok)
}

func TestConflictIsSymmetric(t *testing.T) {
	for _, a := range Names() {
		for _, b := range Names() {
			sa, _ := Lookup(a)
			sb, _ := Lookup(b)
			require.Equal(t, Conflict(sa, sb), Conflict(sb, sa), "%s vs %s", a, b)
		}
	}
	hoodie, _ := Lookup("hoodie")
	cardigan, _ := Lookup("cardigan")
	require.True(t, Conflict(cardigan, hoodie))

	ring, _ := Lookup("ring")
	necklace, _ := Lookup("necklace")
	require.False(t, Conflict(ring, necklace))
	require.False(t, Conflict(ring, ring))
}

func TestSpecAccessorsCopy(t *testing.T) {
	dress, ok := Lookup("dress")
	require.True(t, ok)
	conflicts := dress.Conflicts()
	require.Contains(t, conflicts, "pants")
	require.Contains(t, conflicts, "t-shirt")
	conflicts[0] = "mutated"
	require.NotContains(t, dress.Conflicts(), "mutated")

	socks, _ := Lookup("socks")
	require.Equal(t, []string{"shoes"}, socks.Requires())
}

func TestValidatePantsAndShortsConflict(t *testing.T) {
	res := Validate([]wardrobe.Item{
		item("1", "White Tee", "tshirts"),
		item("2", "Chinos", "pants"),
		item("3", "Denim Shorts", "shorts"),
		item("4", "Sneakers", "shoes"),
	})
	require.False(t, res.IsValid)
	require.True(t, res.HasMinimumComposition)
	require.Equal(t, []string{"Chinos conflicts with Denim Shorts"}, res.Conflicts)
	require.Empty(t, res.Suggestions)
}

func TestValidateDressWithSeparates(t *testing.T) {
	res := Validate([]wardrobe.Item{
		item("1", "Slip Dress", "dresses"),
		item("2", "White Tee", "tshirts"),
	})
	require.False(t, res.IsValid)
	require.Contains(t, res.Conflicts, "Slip Dress conflicts with White Tee")
	require.Equal(t, []string{"Add shoes"}, res.Suggestions)
}

func TestValidateAccessoryLimit(t *testing.T) {
	items := []wardrobe.Item{
		item("t", "Tee", "tshirts"),
		item("p", "Pants", "pants"),
	}
	for i := 0; i < 6; i++ {
		items = append(items, item(string(rune('a'+i)), "Ring", "rings"))
	}
	res := Validate(items)
	require.False(t, res.IsValid)
	require.Equal(t, []string{"Too many ring items (max: 4)"}, res.Conflicts)
}

func TestValidateSuggestions(t *testing.T) {
	res := Validate([]wardrobe.Item{
		item("1", "Ankle Socks", "socks"),
		item("2", "Mystery", "widget"),
	})
	require.True(t, res.IsValid)
	require.False(t, res.HasMinimumComposition)
	require.Equal(t, []string{
		"Add a top (shirt, blouse, etc.)",
		"Add bottoms (pants, skirt, etc.) or a dress",
		"Add shoes",
		"Add shoes to go with socks",
	}, res.Suggestions)
}

func TestHasMinimumComposition(t *testing.T) {
	require.True(t, HasMinimumComposition([]wardrobe.Item{item("1", "Dress", "dresses")}))
	require.True(t, HasMinimumComposition([]wardrobe.Item{item("1", "Tee", "tshirts"), item("2", "Skirt", "skirts")}))
	require.False(t, HasMinimumComposition([]wardrobe.Item{item("1", "Tee", "tshirts"), item("2", "Shoes", "shoes")}))
	require.False(t, HasMinimumComposition(nil))
}

func TestCompleteness(t *testing.T) {
	require.Equal(t, 85.0, Completeness([]wardrobe.Item{
		item("1", "Tee", "tshirts"), item("2", "Pants", "pants"), item("3", "Sneakers", "shoes"),
	}))
	require.Equal(t, 90.0, Completeness([]wardrobe.Item{
		item("1", "Dress", "dresses"), item("2", "Heels", "shoes"), item("3", "Pendant", "necklaces"),
	}))
	require.Equal(t, 100.0, Completeness([]wardrobe.Item{
		item("1", "Dress", "dresses"), item("2", "Heels", "shoes"), item("3", "Pendant", "necklaces"),
		item("4", "Zip Hoodie", "hoodies"),
	}))
	require.Equal(t, 0.0, Completeness(nil))
}

func TestFilterCompatible(t *testing.T) {
	existing := []wardrobe.Item{item("1", "Tee", "tshirts"), item("2", "Pants", "pants")}
	candidates := []wardrobe.Item{
		item("3", "Shorts", "shorts"),
		item("4", "Hoodie", "hoodies"),
		item("5", "Knit", "sweaters"),
		item("6", "Mystery", "widget"),
	}
	got := FilterCompatible(existing, candidates)
	require.Len(t, got, 2)
	require.Equal(t, "4", got[0].ID)
	require.Equal(t, "6", got[1].ID)

	bracelets := []wardrobe.Item{item("b1", "Cuff", "bracelets"), item("b2", "Bangle", "bracelets")}
	require.Empty(t, FilterCompatible(bracelets, []wardrobe.Item{item("b3", "Chain", "bracelets")}))
}

func TestCompatibleMaskIgnoresIDs(t *testing.T) {
	existing := []wardrobe.Item{item("", "Cuff", "bracelets"), item("", "Bangle", "bracelets")}
	candidates := []wardrobe.Item{item("", "Chain", "bracelets"), item("", "Band", "rings"), item("", "Mystery", "widget")}
	require.Equal(t, []bool{false, true, true}, CompatibleMask(existing, candidates))
}

func TestLogicalCompatibility(t *testing.T) {
	require.Equal(t, 100.0, LogicalCompatibility([]wardrobe.Item{
		item("1", "Tee", "tshirts"), item("2", "Pants", "pants"), item("3", "Sneakers", "shoes"),
	}))
	require.Equal(t, 60.0, LogicalCompatibility([]wardrobe.Item{
		item("1", "Dress", "dresses"), item("2", "Tee", "tshirts"),
	}))
	require.Equal(t, 65.0, LogicalCompatibility([]wardrobe.Item{
		item("1", "Vest", "vests"), item("2", "Hoodie", "hoodies"),
	}))
	require.Equal(t, 80.0, LogicalCompatibility([]wardrobe.Item{
		item("1", "Sandals", "footwear"), item("2", "Wool Coat", "outerwear", "winter"),
	}))
}

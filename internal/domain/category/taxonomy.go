// Package category holds the static clothing taxonomy and the rules that
// decide whether a set of wardrobe items can be worn together.
package category

import "sort"

// Slot is the functional role a category plays in an outfit.
type Slot string

const (
	SlotBase      Slot = "base"
	SlotLayer     Slot = "layer"
	SlotOuter     Slot = "outer"
	SlotBottom    Slot = "bottom"
	SlotShoes     Slot = "shoes"
	SlotAccessory Slot = "accessory"
	SlotDress     Slot = "dress"
)

// IsCore reports whether items in the slot define an outfit's structure.
func (s Slot) IsCore() bool {
	return s == SlotBase || s == SlotBottom || s == SlotDress
}

// Spec describes one clothing category. Values are read-only; the sets are
// only reachable through accessor methods.
type Spec struct {
	Name         string
	Slot         Slot
	MaxPerOutfit int
	Priority     int
	conflicts    map[string]struct{}
	requires     map[string]struct{}
	aliases      []string
}

// ConflictsWith reports whether the spec lists name as a conflict.
func (s Spec) ConflictsWith(name string) bool {
	_, ok := s.conflicts[name]
	return ok
}

// Conflicts returns the conflicting category names, sorted.
func (s Spec) Conflicts() []string {
	return sortedKeys(s.conflicts)
}

// Requires returns the category or slot names this spec needs alongside it.
func (s Spec) Requires() []string {
	return sortedKeys(s.requires)
}

func spec(name string, slot Slot, maxPer, priority int, conflicts ...string) Spec {
	s := Spec{Name: name, Slot: slot, MaxPerOutfit: maxPer, Priority: priority}
	if len(conflicts) > 0 {
		s.conflicts = make(map[string]struct{}, len(conflicts))
		for _, c := range conflicts {
			s.conflicts[c] = struct{}{}
		}
	}
	return s
}

func (s Spec) withRequires(names ...string) Spec {
	s.requires = make(map[string]struct{}, len(names))
	for _, n := range names {
		s.requires[n] = struct{}{}
	}
	return s
}

func (s Spec) withAliases(aliases ...string) Spec {
	s.aliases = aliases
	return s
}

var (
	bottoms   = []string{"jeans", "pants", "skirt", "shorts", "leggings"}
	separates = append(append([]string{}, bottoms...),
		"t-shirt", "tank-top", "blouse", "shirt", "crop-top", "sweater", "sweatshirt")
)

// catalog is scanned in order during fuzzy matching, so multi-word and
// more specific names come before the generic ones they contain.
var catalog = []Spec{
	// tops
	spec("t-shirt", SlotBase, 1, 5),
	spec("tank-top", SlotBase, 1, 4),
	spec("crop-top", SlotBase, 1, 4),
	spec("sweatshirt", SlotBase, 1, 5, "sweater"),
	spec("blouse", SlotBase, 1, 6),
	spec("shirt", SlotBase, 1, 6),
	spec("sweater", SlotBase, 1, 6, "hoodie", "sweatshirt"),

	// layers
	spec("cardigan", SlotLayer, 1, 5),
	spec("hoodie", SlotLayer, 1, 5, "vest", "blazer", "cardigan", "sweater"),
	spec("vest", SlotLayer, 1, 4, "hoodie", "jacket", "blazer"),
	spec("blazer", SlotLayer, 1, 7, "hoodie", "vest"),
	spec("denim-jacket", SlotLayer, 1, 5, "vest", "blazer"),

	// outerwear
	spec("leather-jacket", SlotOuter, 1, 6, "coat", "vest"),
	spec("jacket", SlotOuter, 1, 6, "coat", "vest"),
	spec("coat", SlotOuter, 1, 7, "jacket"),

	// bottoms
	spec("jeans", SlotBottom, 1, 6, "pants", "skirt", "shorts", "leggings"),
	spec("pants", SlotBottom, 1, 6, "jeans", "skirt", "shorts", "leggings").withAliases("trousers"),
	spec("skirt", SlotBottom, 1, 5, "jeans", "pants", "shorts", "leggings"),
	spec("shorts", SlotBottom, 1, 4, "jeans", "pants", "skirt", "leggings"),
	spec("leggings", SlotBottom, 1, 4, "jeans", "pants", "skirt", "shorts"),

	// one-piece foundations
	spec("dress", SlotDress, 1, 8, separates...),
	spec("jumpsuit", SlotDress, 1, 7, separates...),

	// footwear
	spec("sneakers", SlotShoes, 1, 5),
	spec("boots", SlotShoes, 1, 6),
	spec("heels", SlotShoes, 1, 6),
	spec("sandals", SlotShoes, 1, 4),
	spec("flats", SlotShoes, 1, 5),
	spec("loafers", SlotShoes, 1, 6),
	spec("shoes", SlotShoes, 1, 5).withAliases("shoe"),

	// accessories
	spec("socks", SlotAccessory, 1, 2).withRequires(string(SlotShoes)),
	spec("necklace", SlotAccessory, 2, 3),
	spec("earrings", SlotAccessory, 1, 4),
	spec("bracelet", SlotAccessory, 2, 2),
	spec("ring", SlotAccessory, 4, 2),
	spec("watch", SlotAccessory, 1, 4),
	spec("belt", SlotAccessory, 1, 3),
	spec("scarf", SlotAccessory, 1, 3),
	spec("hat", SlotAccessory, 1, 2),
	spec("purse", SlotAccessory, 1, 5, "bag"),
	spec("bag", SlotAccessory, 1, 5),
}

// appCategories maps the categories items are filed under to catalog names.
var appCategories = map[string]string{
	"tshirts":   "t-shirt",
	"sweaters":  "sweater",
	"hoodies":   "hoodie",
	"vests":     "vest",
	"shorts":    "shorts",
	"pants":     "pants",
	"skirts":    "skirt",
	"dresses":   "dress",
	"shoes":     "shoes",
	"socks":     "socks",
	"bracelets": "bracelet",
	"rings":     "ring",
	"necklaces": "necklace",
}

// appCategoryOrder fixes the order of the substring fallback.
var appCategoryOrder = []string{
	"tshirts", "sweaters", "hoodies", "vests", "shorts", "pants", "skirts",
	"dresses", "shoes", "socks", "bracelets", "rings", "necklaces",
}

var byName = func() map[string]Spec {
	m := make(map[string]Spec, len(catalog))
	for _, s := range catalog {
		m[s.Name] = s
	}
	return m
}()

// Lookup returns the catalog entry called name.
func Lookup(name string) (Spec, bool) {
	s, ok := byName[name]
	return s, ok
}

// Names lists every catalog entry in scan order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, s := range catalog {
		out[i] = s.Name
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

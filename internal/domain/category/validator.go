package category

import (
	"fmt"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// Result is the outcome of validating an item set.
type Result struct {
	IsValid               bool     `json:"isValid"`
	HasMinimumComposition bool     `json:"hasMinimumComposition"`
	Conflicts             []string `json:"conflicts"`
	Suggestions           []string `json:"suggestions"`
}

// Conflict reports whether two categories cannot be worn together. Two
// non-accessory entries sharing a slot always conflict.
func Conflict(a, b Spec) bool {
	if a.ConflictsWith(b.Name) || b.ConflictsWith(a.Name) {
		return true
	}
	return a.Slot == b.Slot && a.Slot != SlotAccessory
}

// ItemsConflict is Conflict over two items. Uncategorized items never conflict.
func ItemsConflict(a, b wardrobe.Item) bool {
	sa, ok := Categorize(a)
	if !ok {
		return false
	}
	sb, ok := Categorize(b)
	if !ok {
		return false
	}
	return Conflict(sa, sb)
}

type categorized struct {
	item wardrobe.Item
	spec Spec
}

func categorizeAll(items []wardrobe.Item) []categorized {
	out := make([]categorized, 0, len(items))
	for _, it := range items {
		if s, ok := Categorize(it); ok {
			out = append(out, categorized{item: it, spec: s})
		}
	}
	return out
}

type composition struct {
	top, bottom, dress, shoes, layer bool
	accessories                      int
}

func compose(cs []categorized) composition {
	var c composition
	for _, ci := range cs {
		switch ci.spec.Slot {
		case SlotBase:
			c.top = true
		case SlotBottom:
			c.bottom = true
		case SlotDress:
			c.dress = true
		case SlotShoes:
			c.shoes = true
		case SlotLayer, SlotOuter:
			c.layer = true
		case SlotAccessory:
			c.accessories++
		}
	}
	return c
}

func (c composition) minimum() bool {
	return c.dress || (c.top && c.bottom)
}

// Validate checks an item set for conflicts, accessory limits and missing
// essentials. Unknown items are skipped.
func Validate(items []wardrobe.Item) Result {
	cs := categorizeAll(items)
	res := Result{Conflicts: []string{}, Suggestions: []string{}}

	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			if Conflict(cs[i].spec, cs[j].spec) {
				res.Conflicts = append(res.Conflicts,
					fmt.Sprintf("%s conflicts with %s", displayName(cs[i].item), displayName(cs[j].item)))
			}
		}
	}

	counts := map[string]int{}
	for _, ci := range cs {
		if ci.spec.Slot != SlotAccessory {
			continue
		}
		counts[ci.spec.Name]++
		if counts[ci.spec.Name] == ci.spec.MaxPerOutfit+1 {
			res.Conflicts = append(res.Conflicts,
				fmt.Sprintf("Too many %s items (max: %d)", ci.spec.Name, ci.spec.MaxPerOutfit))
		}
	}

	comp := compose(cs)
	if !comp.top && !comp.dress {
		res.Suggestions = append(res.Suggestions, "Add a top (shirt, blouse, etc.)")
	}
	if !comp.bottom && !comp.dress {
		res.Suggestions = append(res.Suggestions, "Add bottoms (pants, skirt, etc.) or a dress")
	}
	if !comp.shoes {
		res.Suggestions = append(res.Suggestions, "Add shoes")
	}
	for _, ci := range cs {
		for _, req := range ci.spec.Requires() {
			if !satisfied(cs, req) {
				res.Suggestions = append(res.Suggestions, fmt.Sprintf("Add %s to go with %s", req, ci.spec.Name))
			}
		}
	}

	res.IsValid = len(res.Conflicts) == 0
	res.HasMinimumComposition = comp.minimum()
	return res
}

func satisfied(cs []categorized, req string) bool {
	for _, ci := range cs {
		if ci.spec.Name == req || string(ci.spec.Slot) == req {
			return true
		}
	}
	return false
}

// HasMinimumComposition reports whether items contain a dress, or a top and
// a bottom.
func HasMinimumComposition(items []wardrobe.Item) bool {
	return compose(categorizeAll(items)).minimum()
}

// Completeness scores how fully items cover an outfit, 0..100.
func Completeness(items []wardrobe.Item) float64 {
	c := compose(categorizeAll(items))
	score := 0.0
	if c.top || c.dress {
		score += 30
	}
	if c.bottom || c.dress {
		score += 30
	}
	if c.shoes {
		score += 25
	}
	if c.layer {
		score += 10
	}
	if c.accessories >= 1 && c.accessories <= 3 {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

// FilterCompatible keeps the candidates that neither conflict with existing
// nor push their category past its per-outfit limit. Uncategorized
// candidates are kept.
func FilterCompatible(existing, candidates []wardrobe.Item) []wardrobe.Item {
	mask := CompatibleMask(existing, candidates)
	out := make([]wardrobe.Item, 0, len(candidates))
	for i, cand := range candidates {
		if mask[i] {
			out = append(out, cand)
		}
	}
	return out
}

// CompatibleMask reports, position by position, which candidates
// FilterCompatible would keep.
func CompatibleMask(existing, candidates []wardrobe.Item) []bool {
	present := categorizeAll(existing)
	mask := make([]bool, len(candidates))
	for i, cand := range candidates {
		s, ok := Categorize(cand)
		mask[i] = !ok || fits(present, s)
	}
	return mask
}

func fits(present []categorized, s Spec) bool {
	same := 0
	for _, p := range present {
		if Conflict(p.spec, s) {
			return false
		}
		if p.spec.Name == s.Name {
			same++
		}
	}
	return same < s.MaxPerOutfit
}

type pairPenalty struct {
	a, b    string
	penalty float64
}

var pairPenalties = []pairPenalty{
	{"vest", "hoodie", 35},
	{"hoodie", "blazer", 30},
	{"sweater", "hoodie", 25},
	{"coat", "shorts", 20},
	{"socks", "sandals", 15},
}

// LogicalCompatibility starts at 100 and subtracts fixed penalties for
// combinations that are legal per slot but rarely worn together.
func LogicalCompatibility(items []wardrobe.Item) float64 {
	cs := categorizeAll(items)
	names := make(map[string]bool, len(cs))
	var dress, separates bool
	for _, ci := range cs {
		names[ci.spec.Name] = true
		switch ci.spec.Slot {
		case SlotDress:
			dress = true
		case SlotBase, SlotBottom:
			separates = true
		}
	}

	score := 100.0
	if dress && separates {
		score -= 40
	}
	for _, p := range pairPenalties {
		if names[p.a] && names[p.b] {
			score -= p.penalty
		}
	}
	if names["sandals"] && anyTagged(cs, "winter") {
		score -= 20
	}
	if score < 0 {
		score = 0
	}
	return score
}

func anyTagged(cs []categorized, tag string) bool {
	for _, ci := range cs {
		if ci.item.HasTag(tag) {
			return true
		}
	}
	return false
}

func displayName(it wardrobe.Item) string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID
}

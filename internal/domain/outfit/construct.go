package outfit

import (
	"sort"
	"strings"

	"github.com/yanqian/outfit-studio/internal/domain/category"
	"github.com/yanqian/outfit-studio/internal/domain/color"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// entry is an item paired with its taxonomy slot. idx is the item's position
// in the generation snapshot and identifies it within a call, since request
// items may repeat or omit IDs. Uncategorized items have known=false and
// never take part in construction.
type entry struct {
	idx   int
	item  wardrobe.Item
	spec  category.Spec
	known bool
}

func (e entry) isCore() bool {
	return e.known && e.spec.Slot.IsCore()
}

func categorizePool(items []wardrobe.Item) []entry {
	out := make([]entry, len(items))
	for i, it := range items {
		s, ok := category.Categorize(it)
		out[i] = entry{idx: i, item: it, spec: s, known: ok}
	}
	return out
}

func itemsOf(entries []entry) []wardrobe.Item {
	out := make([]wardrobe.Item, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

func colorsOf(items []wardrobe.Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Colors...)
	}
	return out
}

// occasion rules
func dressForced(occasion string) bool {
	switch occasion {
	case "formal", "business", "party":
		return true
	}
	return false
}

// standalone decides whether a T-shirt may be worn without a layer.
func (g *Generator) standalone(occasion string, selected []entry, rnd Rand) bool {
	switch occasion {
	case "formal", "business", "winter":
		return false
	case "spring", "fall":
		for _, e := range selected {
			if e.item.HasTag("summer") {
				return true
			}
		}
		return false
	default:
		return rnd.Float64() < g.cfg.StandaloneTopChance
	}
}

// construct assembles one candidate from a shuffled pool, or returns nil
// when the pool cannot supply a foundation.
func (g *Generator) construct(pool []entry, occasion string, rnd Rand) []entry {
	bySlot := map[category.Slot][]entry{}
	for _, e := range pool {
		if e.known {
			bySlot[e.spec.Slot] = append(bySlot[e.spec.Slot], e)
		}
	}

	dresses := bySlot[category.SlotDress]
	tops := bySlot[category.SlotBase]
	bottoms := bySlot[category.SlotBottom]

	useDress := false
	if len(dresses) > 0 {
		useDress = dressForced(occasion) || rnd.Float64() < g.cfg.DressChance
		if len(tops) == 0 || len(bottoms) == 0 {
			useDress = true
		}
	}

	var selected []entry
	if useDress {
		selected = append(selected, dresses[0])
	} else {
		if len(tops) == 0 || len(bottoms) == 0 {
			return nil
		}
		top := tops[0]
		bottom, ok := firstCompatible([]entry{top}, bottoms)
		if !ok {
			return nil
		}
		selected = append(selected, top, bottom)
	}

	standalone := false
	if !useDress && selected[0].spec.Name == "t-shirt" {
		standalone = g.standalone(occasion, selected, rnd)
	}

	if shoe, ok := g.pickShoes(selected, bySlot[category.SlotShoes]); ok {
		selected = append(selected, shoe)
	}

	if !standalone && rnd.Float64() < g.cfg.OuterwearChance {
		layers := append(append([]entry{}, bySlot[category.SlotLayer]...), bySlot[category.SlotOuter]...)
		if layer, ok := bestByColor(selected, compatibleWith(selected, layers)); ok {
			selected = append(selected, layer)
		}
	}

	if acc := bySlot[category.SlotAccessory]; len(acc) > 0 {
		n := g.cfg.AccessoryMin + rnd.IntN(g.cfg.AccessoryMax-g.cfg.AccessoryMin+1)
		selected = append(selected, g.pickAccessories(selected, acc, n)...)
	}
	return selected
}

func (g *Generator) pickShoes(selected, shoes []entry) (entry, bool) {
	candidates := compatibleWith(selected, shoes)
	if len(candidates) == 0 {
		return entry{}, false
	}
	colors := colorsOf(itemsOf(selected))
	for _, s := range candidates {
		if itemColorScore(s.item.Colors, colors) >= g.cfg.ShoeColorThreshold {
			return s, true
		}
	}
	return candidates[0], true
}

func (g *Generator) pickAccessories(selected, pool []entry, n int) []entry {
	type scored struct {
		e     entry
		score float64
	}
	colors := colorsOf(itemsOf(selected))
	tags := tagSet(selected)

	candidates := compatibleWith(selected, pool)
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{
			e:     c,
			score: g.cfg.AccessoryColorWeight*itemColorScore(c.item.Colors, colors) + g.cfg.AccessoryTagWeight*tagOverlap(c.item.Tags, tags),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var picked []entry
	current := append([]entry{}, selected...)
	for _, r := range ranked {
		if len(picked) >= n {
			break
		}
		if len(compatibleWith(current, []entry{r.e})) == 0 {
			continue
		}
		picked = append(picked, r.e)
		current = append(current, r.e)
	}
	return picked
}

// compatibleWith keeps candidates that fit alongside selected.
func compatibleWith(selected, candidates []entry) []entry {
	if len(candidates) == 0 {
		return nil
	}
	mask := category.CompatibleMask(itemsOf(selected), itemsOf(candidates))
	out := make([]entry, 0, len(candidates))
	for i, c := range candidates {
		if mask[i] {
			out = append(out, c)
		}
	}
	return out
}

func firstCompatible(selected, candidates []entry) (entry, bool) {
	fit := compatibleWith(selected, candidates)
	if len(fit) == 0 {
		return entry{}, false
	}
	return fit[0], true
}

func bestByColor(selected, candidates []entry) (entry, bool) {
	if len(candidates) == 0 {
		return entry{}, false
	}
	colors := colorsOf(itemsOf(selected))
	best, bestScore := candidates[0], itemColorScore(candidates[0].item.Colors, colors)
	for _, c := range candidates[1:] {
		if s := itemColorScore(c.item.Colors, colors); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, true
}

// itemColorScore is the mean pairwise compatibility between two color sets.
// A side without colors pairs with anything.
func itemColorScore(a, b []string) float64 {
	avg, ok := color.MeanCompatibility(a, b)
	if !ok {
		return 100
	}
	return avg
}

func tagSet(entries []entry) map[string]struct{} {
	set := map[string]struct{}{}
	for _, e := range entries {
		for _, t := range e.item.Tags {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	return set
}

// tagOverlap is the share of tags, 0..100, already present in the outfit.
func tagOverlap(tags []string, present map[string]struct{}) float64 {
	if len(tags) == 0 {
		return 0
	}
	hits := 0
	for _, t := range tags {
		if _, ok := present[strings.ToLower(t)]; ok {
			hits++
		}
	}
	return 100 * float64(hits) / float64(len(tags))
}

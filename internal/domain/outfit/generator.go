package outfit

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-studio/internal/domain/category"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
	"github.com/yanqian/outfit-studio/pkg/util"
)

// Generator assembles, validates, scores and ranks outfits. It keeps no
// state between calls and is safe for concurrent use as long as each call
// gets its own Rand.
type Generator struct {
	cfg   Config
	newID func() string
	now   func() time.Time
}

// NewGenerator builds a generator, filling unset knobs with defaults.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg:   cfg.withDefaults(),
		newID: uuid.NewString,
		now:   util.NowUTC,
	}
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate returns up to count outfits ranked by score. Small pools and
// fruitless searches yield an empty or partial batch, never an error.
func (g *Generator) Generate(items []wardrobe.Item, count int, occasion string, rnd Rand) []Outfit {
	if count <= 0 {
		count = 1
	}
	if count > g.cfg.MaxCount {
		count = g.cfg.MaxCount
	}
	accepted := []Outfit{}
	if len(items) < g.cfg.MinItems {
		return accepted
	}

	entries := categorizePool(items)
	coreTotal := map[category.Slot]int{}
	for _, e := range entries {
		if e.isCore() {
			coreTotal[e.spec.Slot]++
		}
	}

	usedCore := map[int]bool{}
	usedPerSlot := map[category.Slot]int{}
	var prints []footprint

	attempts := count * g.cfg.AttemptMultiplier
	for attempt := 0; attempt < attempts && len(accepted) < count; attempt++ {
		pool := make([]entry, 0, len(entries))
		for _, e := range entries {
			if e.isCore() && usedCore[e.idx] && !g.reuseAllowed(usedPerSlot[e.spec.Slot], coreTotal[e.spec.Slot]) {
				continue
			}
			pool = append(pool, e)
		}
		rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		candidate := g.construct(pool, occasion, rnd)
		if len(candidate) == 0 {
			continue
		}
		outfitItems := itemsOf(candidate)
		check := category.Validate(outfitItems)
		if !check.IsValid || !check.HasMinimumComposition {
			continue
		}
		sc := g.score(outfitItems)
		if sc.overall < g.cfg.MinOutfitScore || sc.overall < g.cfg.GenerationThreshold {
			continue
		}
		fp := footprintOf(candidate)
		if g.similarToAny(fp, prints) {
			continue
		}

		prints = append(prints, fp)
		for _, e := range candidate {
			if e.isCore() && !usedCore[e.idx] {
				usedCore[e.idx] = true
				usedPerSlot[e.spec.Slot]++
			}
		}
		accepted = append(accepted, g.build(outfitItems, sc, occasion))
	}

	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].Score > accepted[j].Score })
	return accepted
}

// reuseAllowed lets consumed core items back into the pool once most of
// their slot has been used.
func (g *Generator) reuseAllowed(used, total int) bool {
	if total == 0 {
		return false
	}
	return float64(used)/float64(total) > g.cfg.CoreReuseRatio
}

func (g *Generator) similarToAny(fp footprint, prints []footprint) bool {
	for _, p := range prints {
		if tooSimilar(fp, p, g.cfg.NonCoreOverlapLimit) {
			return true
		}
	}
	return false
}

func (g *Generator) build(items []wardrobe.Item, sc scores, occasion string) Outfit {
	return Outfit{
		ID:                   g.newID(),
		Items:                items,
		Vibe:                 vibeOf(items),
		DominantColors:       dominantColors(items, g.cfg.SimilarColorDistance, 3),
		Tags:                 topTags(items, 5),
		Score:                sc.overall,
		ColorHarmony:         round1(sc.harmony),
		Completeness:         sc.completeness,
		StyleCoherence:       round1(sc.style),
		LogicalCompatibility: sc.logic,
		Occasion:             occasion,
		Label:                ScoreLabel(sc.overall),
		CreatedAt:            g.now(),
	}
}

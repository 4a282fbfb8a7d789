package outfit

import "time"

// Weights blend the sub-scores into the overall score.
type Weights struct {
	Color        float64
	Completeness float64
	Style        float64
	Logic        float64
}

// Config holds the generator knobs. Score thresholds and chances take zero
// literally (accept every score, never roll the branch); a negative
// threshold falls back to its default. Counts, ratios and weights treat
// zero as unset. Start from DefaultConfig to override single knobs.
type Config struct {
	AttemptMultiplier    int
	MinItems             int
	MaxCount             int
	MinOutfitScore       float64
	GenerationThreshold  float64
	DressChance          float64
	OuterwearChance      float64
	StandaloneTopChance  float64
	AccessoryMin         int
	AccessoryMax         int
	CoreReuseRatio       float64
	ShoeColorThreshold   float64
	Weights              Weights
	AccessoryColorWeight float64
	AccessoryTagWeight   float64
	MoodBaseWeight       float64
	MoodColorWeight      float64
	SimilarColorDistance float64
	NonCoreOverlapLimit  float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		AttemptMultiplier:    20,
		MinItems:             3,
		MaxCount:             10,
		MinOutfitScore:       40,
		GenerationThreshold:  50,
		DressChance:          0.3,
		OuterwearChance:      0.4,
		StandaloneTopChance:  0.6,
		AccessoryMin:         1,
		AccessoryMax:         3,
		CoreReuseRatio:       0.6,
		ShoeColorThreshold:   60,
		Weights:              Weights{Color: 0.25, Completeness: 0.35, Style: 0.25, Logic: 0.15},
		AccessoryColorWeight: 0.6,
		AccessoryTagWeight:   0.4,
		MoodBaseWeight:       0.7,
		MoodColorWeight:      0.3,
		SimilarColorDistance: 50,
		NonCoreOverlapLimit:  0.5,
	}
}

// withDefaults fills unset values from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AttemptMultiplier <= 0 {
		c.AttemptMultiplier = d.AttemptMultiplier
	}
	if c.MinItems <= 0 {
		c.MinItems = d.MinItems
	}
	if c.MaxCount <= 0 {
		c.MaxCount = d.MaxCount
	}
	if c.MinOutfitScore < 0 {
		c.MinOutfitScore = d.MinOutfitScore
	}
	if c.GenerationThreshold < 0 {
		c.GenerationThreshold = d.GenerationThreshold
	}
	if c.AccessoryMax <= 0 {
		c.AccessoryMin, c.AccessoryMax = d.AccessoryMin, d.AccessoryMax
	}
	if c.AccessoryMin > c.AccessoryMax {
		c.AccessoryMin = c.AccessoryMax
	}
	if c.CoreReuseRatio <= 0 {
		c.CoreReuseRatio = d.CoreReuseRatio
	}
	if c.ShoeColorThreshold <= 0 {
		c.ShoeColorThreshold = d.ShoeColorThreshold
	}
	if c.Weights == (Weights{}) {
		c.Weights = d.Weights
	}
	if c.AccessoryColorWeight+c.AccessoryTagWeight == 0 {
		c.AccessoryColorWeight, c.AccessoryTagWeight = d.AccessoryColorWeight, d.AccessoryTagWeight
	}
	if c.MoodBaseWeight+c.MoodColorWeight == 0 {
		c.MoodBaseWeight, c.MoodColorWeight = d.MoodBaseWeight, d.MoodColorWeight
	}
	if c.SimilarColorDistance <= 0 {
		c.SimilarColorDistance = d.SimilarColorDistance
	}
	if c.NonCoreOverlapLimit <= 0 {
		c.NonCoreOverlapLimit = d.NonCoreOverlapLimit
	}
	return c
}

// ServiceConfig holds the outfit service knobs. A non-zero Seed makes every
// generation call replay the same random sequence.
type ServiceConfig struct {
	Generator     Config
	DefaultCount  int
	MoodBatchSize int
	CacheTTL      time.Duration
	TrendingLimit int
	SimilarLimit  int
	Seed          uint64
}

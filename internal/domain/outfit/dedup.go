package outfit

// footprint records which snapshot positions an accepted outfit used.
type footprint struct {
	core    map[int]struct{}
	nonCore map[int]struct{}
}

func footprintOf(entries []entry) footprint {
	fp := footprint{core: map[int]struct{}{}, nonCore: map[int]struct{}{}}
	for _, e := range entries {
		if e.isCore() {
			fp.core[e.idx] = struct{}{}
		} else {
			fp.nonCore[e.idx] = struct{}{}
		}
	}
	return fp
}

// tooSimilar reports whether two outfits share a core item, or overlap on
// more than limit of their non-core items.
func tooSimilar(a, b footprint, limit float64) bool {
	for idx := range a.core {
		if _, ok := b.core[idx]; ok {
			return true
		}
	}
	smaller := len(a.nonCore)
	if len(b.nonCore) < smaller {
		smaller = len(b.nonCore)
	}
	if smaller == 0 {
		return false
	}
	shared := 0
	for idx := range a.nonCore {
		if _, ok := b.nonCore[idx]; ok {
			shared++
		}
	}
	return float64(shared)/float64(smaller) > limit
}

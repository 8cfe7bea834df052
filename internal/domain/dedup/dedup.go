package dedup

// DefaultThreshold is the weighted similarity at which two postings are considered the same.
const DefaultThreshold = 0.8

// IsDuplicate reports whether the weighted similarity of a and b reaches threshold.
func IsDuplicate(a, b Signature, threshold float64) bool {
	return Similarity(a, b) >= threshold
}

// FilterDuplicates keeps each item that is not a duplicate of an item already kept.
// Relative order is preserved and the first occurrence wins.
func FilterDuplicates[T Signed](items []T, threshold float64) []T {
	kept := make([]T, 0, len(items))
	keptSigs := make([]Signature, 0, len(items))
	for _, it := range items {
		sig := it.Signature()
		dup := false
		for _, k := range keptSigs {
			if IsDuplicate(sig, k, threshold) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		kept = append(kept, it)
		keptSigs = append(keptSigs, sig)
	}
	return kept
}

// GroupSimilar places every item in exactly one group. Each group is seeded by the
// first ungrouped item and absorbs later ungrouped items that match the seed.
func GroupSimilar[T Signed](items []T, threshold float64) [][]T {
	sigs := make([]Signature, len(items))
	for i, it := range items {
		sigs[i] = it.Signature()
	}

	grouped := make([]bool, len(items))
	groups := make([][]T, 0)
	for i := range items {
		if grouped[i] {
			continue
		}
		grouped[i] = true
		group := []T{items[i]}
		for j := i + 1; j < len(items); j++ {
			if grouped[j] {
				continue
			}
			if IsDuplicate(sigs[i], sigs[j], threshold) {
				grouped[j] = true
				group = append(group, items[j])
			}
		}
		groups = append(groups, group)
	}
	return groups
}

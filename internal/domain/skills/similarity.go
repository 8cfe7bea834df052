package skills

// Similarity is the Jaccard index of the normalized skill sets.
// Two empty inputs score 1 and a single empty input scores 0.
func Similarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := toSet(a)
	setB := toSet(b)

	inter := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func toSet(raw []string) map[string]struct{} {
	out := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		out[Normalize(r)] = struct{}{}
	}
	return out
}

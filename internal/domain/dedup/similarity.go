package dedup

import "strings"

const (
	titleWeight    = 0.5
	companyWeight  = 0.3
	locationWeight = 0.2

	winklerPrefixMax   = 4
	winklerPrefixScale = 0.1
)

// JaroWinkler compares two strings after lowercasing and trimming them.
// Equal strings (including two empty ones) score 1, otherwise an empty side scores 0.
func JaroWinkler(a, b string) float64 {
	s1 := []rune(strings.ToLower(strings.TrimSpace(a)))
	s2 := []rune(strings.ToLower(strings.TrimSpace(b)))

	if string(s1) == string(s2) {
		return 1
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	window := max(len(s1), len(s2))/2 - 1

	m1 := make([]bool, len(s1))
	m2 := make([]bool, len(s2))

	matches := 0
	for i := range s1 {
		start := max(0, i-window)
		end := min(i+window+1, len(s2))
		for j := start; j < end; j++ {
			if m2[j] || s1[i] != s2[j] {
				continue
			}
			m1[i] = true
			m2[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := range s1 {
		if !m1[i] {
			continue
		}
		for !m2[k] {
			k++
		}
		if s1[i] != s2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	jaro := (m/float64(len(s1)) + m/float64(len(s2)) + (m-float64(transpositions)/2)/m) / 3

	prefix := 0
	for i := 0; i < min(len(s1), len(s2), winklerPrefixMax); i++ {
		if s1[i] != s2[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*winklerPrefixScale*(1-jaro)
}

// Similarity is the weighted field similarity used by IsDuplicate.
func Similarity(a, b Signature) float64 {
	return JaroWinkler(a.Title, b.Title)*titleWeight +
		JaroWinkler(a.Company, b.Company)*companyWeight +
		JaroWinkler(a.LocationText, b.LocationText)*locationWeight
}

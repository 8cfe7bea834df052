package skills

import (
	"sort"
	"strings"
)

// Tagged pairs an item with the tags it is ranked by.
type Tagged[T any] struct {
	Item T
	Tags []string
}

// Scored is a ranked item with its overlap score.
type Scored[T any] struct {
	Item  T
	Score float64
}

// OverlapScore is the share of tags that contain, or are contained in, a query skill.
// Comparison is case-insensitive.
func OverlapScore(tags, query []string) float64 {
	q := make([]string, len(query))
	for i, s := range query {
		q[i] = strings.ToLower(s)
	}

	matched := 0
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, s := range q {
			if strings.Contains(tag, s) || strings.Contains(s, tag) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(tags), 1))
}

// RankByOverlap orders candidates by OverlapScore descending, keeping input order on ties,
// and truncates to limit. A limit <= 0 keeps every candidate.
func RankByOverlap[T any](candidates []Tagged[T], query []string, limit int) []Scored[T] {
	out := make([]Scored[T], len(candidates))
	for i, c := range candidates {
		out[i] = Scored[T]{Item: c.Item, Score: OverlapScore(c.Tags, query)}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

package skills

import "strings"

// Extract returns the taxonomy skills found in text, each once, in taxonomy order.
// A skill matches when its normalized form is a substring of the lowercased text.
// Multi-word skills also match when each of their words appears anywhere in the text.
func (t *Taxonomy) Extract(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	if strings.TrimSpace(lower) == "" {
		return found
	}

	for _, skill := range t.canonical {
		if strings.Contains(lower, skill) || allWordsPresent(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

func allWordsPresent(text, skill string) bool {
	words := strings.Split(skill, " ")
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

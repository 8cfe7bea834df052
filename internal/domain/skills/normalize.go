package skills

import (
	"strings"
	"unicode"
)

var abbreviations = map[string]string{
	"js":  "javascript",
	"ts":  "typescript",
	"py":  "python",
	"rb":  "ruby",
	"go":  "golang",
	"rs":  "rust",
	"kt":  "kotlin",
	"ml":  "machine learning",
	"pl":  "programming language",
	"hs":  "haskell",
	"clj": "clojure",
	"erl": "erlang",
}

// Normalize lowercases raw, keeps only ASCII word characters, hyphens and
// whitespace, collapses whitespace and expands a whole-string abbreviation.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	lower := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	s := strings.Join(strings.Fields(b.String()), " ")
	if full, ok := abbreviations[s]; ok {
		return full
	}
	return s
}

// LowerAll lowercases and trims every token and drops empty results and repeats.
// Punctuation and abbreviations are left as written.
func LowerAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		s := strings.ToLower(strings.TrimSpace(r))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizeAll normalizes every token and drops empty results and repeats.
func NormalizeAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		n := Normalize(r)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

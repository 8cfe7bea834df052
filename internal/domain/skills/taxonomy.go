package skills

import (
	"errors"
	"fmt"
	"strings"
)

// Uncategorized is returned by CategoryOf when no category lists the skill.
const Uncategorized = "uncategorized"

var ErrInvalidTaxonomy = errors.New("invalid skill taxonomy")

// Category is a named, ordered list of canonical skills.
type Category struct {
	Name   string   `mapstructure:"name" json:"name" yaml:"name"`
	Skills []string `mapstructure:"skills" json:"skills" yaml:"skills"`
}

// Taxonomy is an ordered set of categories. Category order decides CategoryOf.
// A Taxonomy is immutable after construction and safe for concurrent use.
type Taxonomy struct {
	categories []Category
	normalized [][]string
	canonical  []string
}

// NewTaxonomy validates categories and precomputes their normalized skills.
func NewTaxonomy(categories []Category) (*Taxonomy, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTaxonomy)
	}

	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		normalized: make([][]string, 0, len(categories)),
	}
	seenCategory := make(map[string]struct{}, len(categories))
	seenSkill := make(map[string]struct{})

	for _, c := range categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidTaxonomy)
		}
		if _, ok := seenCategory[name]; ok {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, name)
		}
		seenCategory[name] = struct{}{}

		raw := make([]string, 0, len(c.Skills))
		norm := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			n := Normalize(s)
			if n == "" {
				continue
			}
			raw = append(raw, s)
			norm = append(norm, n)
			if _, ok := seenSkill[n]; !ok {
				seenSkill[n] = struct{}{}
				t.canonical = append(t.canonical, n)
			}
		}

		t.categories = append(t.categories, Category{Name: name, Skills: raw})
		t.normalized = append(t.normalized, norm)
	}

	return t, nil
}

// Categories returns a copy of the configured categories in order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// CanonicalSkills returns every normalized skill once, in category order.
func (t *Taxonomy) CanonicalSkills() []string {
	return append([]string(nil), t.canonical...)
}

// CategoryOf returns the first category, in taxonomy order, listing skill.
func (t *Taxonomy) CategoryOf(skill string) string {
	n := Normalize(skill)
	for i, norm := range t.normalized {
		for _, s := range norm {
			if s == n {
				return t.categories[i].Name
			}
		}
	}
	return Uncategorized
}

// RelatedSkills returns the other normalized skills of skill's category.
func (t *Taxonomy) RelatedSkills(skill string) []string {
	n := Normalize(skill)
	for _, norm := range t.normalized {
		found := false
		for _, s := range norm {
			if s == n {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		out := make([]string, 0, len(norm))
		for _, s := range norm {
			if s != n {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JS", "javascript"},
		{" React ", "react"},
		{"ts", "typescript"},
		{"Go", "golang"},
		{"ML", "machine learning"},
		{"PL", "programming language"},
		{"clj", "clojure"},
		{"swift", "swift"},
		{"scala", "scala"},
		{"Node.js", "nodejs"},
		{"C++", "c"},
		{"C#", "c"},
		{"scikit-learn", "scikit-learn"},
		{"  SQL \t  Server ", "sql server"},
		{"react_native", "react_native"},
		{"js frameworks", "js frameworks"},
		{"café", "caf"},
		{"node . js", "node js"},
		{"", ""},
		{"++", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"JS", " React ", "go", "ML", "Node.js", "C++", "  Adobe   XD ", "node . js",
		"Objective-C", "é-go", "py", "ts ", "machine learning", "GitHub Actions!",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
	for _, s := range DefaultTaxonomy().CanonicalSkills() {
		assert.Equal(t, s, Normalize(s))
	}
}

func TestNormalizeAll(t *testing.T) {
	assert.Equal(t, []string{"javascript", "react"}, NormalizeAll([]string{"JS", "javascript", " react", "++"}))
}

func TestLowerAll(t *testing.T) {
	assert.Equal(t, []string{"node.js", "js", "c++"}, LowerAll([]string{" Node.js", "JS", "", "js", "C++"}))
}

func TestExtract(t *testing.T) {
	tax := DefaultTaxonomy()

	got := tax.Extract("I have 5 years with JavaScript and React")
	assert.Contains(t, got, "javascript")
	assert.Contains(t, got, "react")

	got = tax.Extract("Looking for a Go developer with Docker and Kubernetes")
	assert.Contains(t, got, "docker")
	assert.Contains(t, got, "kubernetes")
	assert.NotContains(t, got, "golang")

	assert.Contains(t, tax.Extract("golang engineer"), "golang")
}

func TestExtract_NoDuplicates(t *testing.T) {
	got := DefaultTaxonomy().Extract("swift and kotlin for iOS and Android, swift again")
	seen := map[string]int{}
	for _, s := range got {
		seen[s]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, s)
	}
	assert.Contains(t, got, "swift")
	assert.Contains(t, got, "kotlin")
}

func TestExtract_Empty(t *testing.T) {
	tax := DefaultTaxonomy()
	assert.Empty(t, tax.Extract(""))
	assert.Empty(t, tax.Extract("   "))
	assert.NotNil(t, tax.Extract(""))
}

func TestExtract_MultiWordLooseMatch(t *testing.T) {
	got := DefaultTaxonomy().Extract("testing your library of stuff")
	assert.Contains(t, got, "testing library")

	got = DefaultTaxonomy().Extract("We need react native and node.js")
	assert.Contains(t, got, "react native")
}

// The matcher is intentionally permissive. These cases document known false
// positives and misses so that tightening it is a visible decision.
func TestExtract_KnownPermissiveness(t *testing.T) {
	tax := DefaultTaxonomy()

	got := tax.Extract("I have 5 years with JavaScript and React")
	assert.Contains(t, got, "java", "java is a substring of javascript")
	assert.Contains(t, got, "c", "c++ and c# normalize to c")
	assert.Contains(t, got, "r", "single letter r matches almost any text")

	got = tax.Extract("Build pipelines: ship, serve, deploy")
	assert.Equal(t, []string{"r"}, got)

	got = tax.Extract("Strong node.js background")
	assert.NotContains(t, got, "nodejs", "dotted names normalize to a form absent from raw text")
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity(nil, nil))
	assert.Equal(t, 1.0, Similarity([]string{}, []string{}))
	assert.Equal(t, 0.0, Similarity([]string{"python"}, nil))
	assert.Equal(t, 0.0, Similarity(nil, []string{"python"}))
	assert.InDelta(t, 1.0/3.0, Similarity([]string{"python", "sql"}, []string{"python", "java"}), 1e-12)
	assert.Equal(t, 1.0, Similarity([]string{"JS", "React"}, []string{"javascript", " react "}))
	assert.Equal(t, 0.0, Similarity([]string{"go"}, []string{"rust"}))
}

func TestSimilarity_StricterThanOverlap(t *testing.T) {
	// "react" is a substring of "react native" but not the same token.
	assert.Equal(t, 0.0, Similarity([]string{"react native"}, []string{"react"}))
	assert.Equal(t, 1.0, OverlapScore([]string{"react native"}, []string{"react"}))
}

func TestOverlapScore(t *testing.T) {
	assert.Equal(t, 0.5, OverlapScore([]string{"React", "Figma"}, []string{"react"}))
	assert.Equal(t, 1.0, OverlapScore([]string{"go"}, []string{"golang"}))
	assert.Equal(t, 0.0, OverlapScore(nil, []string{"go"}))
	assert.Equal(t, 0.0, OverlapScore([]string{"docker"}, nil))
}

func TestRankByOverlap(t *testing.T) {
	candidates := []Tagged[string]{
		{Item: "design", Tags: []string{"figma", "sketch"}},
		{Item: "frontend", Tags: []string{"react", "css"}},
		{Item: "fullstack", Tags: []string{"react", "node", "postgresql", "docker"}},
		{Item: "react-only", Tags: []string{"React"}},
		{Item: "untagged", Tags: nil},
	}

	got := RankByOverlap(candidates, []string{"react", "docker"}, 10)
	require.Len(t, got, 5)

	items := make([]string, len(got))
	for i, g := range got {
		items[i] = g.Item
	}
	assert.Equal(t, []string{"react-only", "frontend", "fullstack", "design", "untagged"}, items)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, 0.5, got[1].Score)
	assert.Equal(t, 0.5, got[2].Score)
	assert.Equal(t, 0.0, got[3].Score)
	assert.Equal(t, 0.0, got[4].Score)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRankByOverlap_Limit(t *testing.T) {
	candidates := []Tagged[int]{
		{Item: 1, Tags: []string{"a"}},
		{Item: 2, Tags: []string{"python"}},
		{Item: 3, Tags: []string{"python"}},
	}

	got := RankByOverlap(candidates, []string{"python"}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Item)

	assert.Len(t, RankByOverlap(candidates, []string{"python"}, 0), 3)
	assert.Empty(t, RankByOverlap[int](nil, []string{"python"}, 5))
}

func TestCategoryOf(t *testing.T) {
	tax := DefaultTaxonomy()

	assert.Equal(t, "programming-languages", tax.CategoryOf("Go"))
	assert.Equal(t, "programming-languages", tax.CategoryOf("swift"))
	assert.Equal(t, "web-development", tax.CategoryOf(" React "))
	assert.Equal(t, "backend-development", tax.CategoryOf("Node.js"))
	assert.Equal(t, "databases", tax.CategoryOf("SQL  Server"))
	assert.Equal(t, "mobile-development", tax.CategoryOf("react native"))
	assert.Equal(t, "testing", tax.CategoryOf("vitest"))
	assert.Equal(t, Uncategorized, tax.CategoryOf("cobol"))
	assert.Equal(t, Uncategorized, tax.CategoryOf(""))
}

func TestRelatedSkills(t *testing.T) {
	tax := DefaultTaxonomy()

	related := tax.RelatedSkills("Docker")
	assert.Contains(t, related, "kubernetes")
	assert.NotContains(t, related, "docker")
	assert.Len(t, related, 12)

	assert.Nil(t, tax.RelatedSkills("cobol"))
}

func TestNewTaxonomy_Validation(t *testing.T) {
	_, err := NewTaxonomy(nil)
	assert.ErrorIs(t, err, ErrInvalidTaxonomy)

	_, err = NewTaxonomy([]Category{{Name: " ", Skills: []string{"go"}}})
	assert.ErrorIs(t, err, ErrInvalidTaxonomy)

	_, err = NewTaxonomy([]Category{{Name: "a"}, {Name: "A"}})
	assert.ErrorIs(t, err, ErrInvalidTaxonomy)
}

func TestTaxonomy_Extensible(t *testing.T) {
	tax, err := NewTaxonomy([]Category{
		{Name: "Blockchain", Skills: []string{"Solidity", "web3"}},
		{Name: "languages", Skills: []string{"solidity", "zig"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "blockchain", tax.CategoryOf("solidity"))
	assert.Equal(t, "languages", tax.CategoryOf("Zig"))
	assert.Equal(t, []string{"solidity", "web3", "zig"}, tax.CanonicalSkills())
	assert.Equal(t, []string{"solidity", "zig"}, tax.Extract("Zig and Solidity"))
}

func TestDefaultTaxonomy_Categories(t *testing.T) {
	cats := DefaultTaxonomy().Categories()
	require.Len(t, cats, 10)

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"programming-languages", "web-development", "backend-development", "databases",
		"cloud-platforms", "devops", "mobile-development", "data-science", "design", "testing",
	}, names)

	cats[0].Skills[0] = "mutated"
	assert.Equal(t, "javascript", DefaultTaxonomy().Categories()[0].Skills[0])
}

func TestLoadTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	content := `categories:
  - name: infra
    skills: [terraform, pulumi]
  - name: languages
    skills:
      - go
      - zig
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)
	assert.Equal(t, "languages", tax.CategoryOf("golang"))
	assert.Equal(t, "infra", tax.CategoryOf("Pulumi"))

	_, err = LoadTaxonomy(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

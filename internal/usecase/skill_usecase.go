package usecase

import (
	"strings"

	"jobmarket/internal/domain/skills"
)

type ExtractedSkill struct {
	Skill    string `json:"skill"`
	Category string `json:"category"`
}

type SkillCategory struct {
	Skill    string `json:"skill"`
	Category string `json:"category"`
	Known    bool   `json:"known"`
}

type SkillUsecase interface {
	Extract(text string) ([]ExtractedSkill, error)
	Taxonomy() []skills.Category
	Category(skill string) (SkillCategory, error)
	Related(skill string) ([]string, error)
}

type Skills struct {
	taxonomy *skills.Taxonomy
}

func NewSkills(taxonomy *skills.Taxonomy) *Skills {
	if taxonomy == nil {
		taxonomy = skills.DefaultTaxonomy()
	}
	return &Skills{taxonomy: taxonomy}
}

func (u *Skills) Extract(text string) ([]ExtractedSkill, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalidField("text", "required")
	}
	found := u.taxonomy.Extract(text)
	out := make([]ExtractedSkill, 0, len(found))
	for _, s := range found {
		out = append(out, ExtractedSkill{Skill: s, Category: u.taxonomy.CategoryOf(s)})
	}
	return out, nil
}

func (u *Skills) Taxonomy() []skills.Category {
	return u.taxonomy.Categories()
}

func (u *Skills) Category(skill string) (SkillCategory, error) {
	norm := skills.Normalize(skill)
	if norm == "" {
		return SkillCategory{}, invalidField("skill", "required")
	}
	cat := u.taxonomy.CategoryOf(norm)
	return SkillCategory{Skill: norm, Category: cat, Known: cat != skills.Uncategorized}, nil
}

// Related lists the other skills of the skill's category; unknown skills have none.
func (u *Skills) Related(skill string) ([]string, error) {
	norm := skills.Normalize(skill)
	if norm == "" {
		return nil, invalidField("skill", "required")
	}
	related := u.taxonomy.RelatedSkills(norm)
	if related == nil {
		related = []string{}
	}
	return related, nil
}

package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const (
	searchKeyPrefix = "jobs:search:"
	lockKeyPrefix   = "jobs:lock:"
)

type jobSearchCacheKeyInput struct {
	Query     string   `json:"query"`
	City      string   `json:"city"`
	District  string   `json:"district"`
	Type      string   `json:"type"`
	Skills    []string `json:"skills"`
	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
	Page      int      `json:"page"`
	Limit     int      `json:"limit"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsSearchCacheKey hashes the normalized search parameters. Params must be validated.
func JobsSearchCacheKey(params JobSearchParams) string {
	skills := make([]string, 0, len(params.Skills))
	for _, s := range params.Skills {
		s = normalizeSearchValue(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	in := jobSearchCacheKeyInput{
		Query:     normalizeSearchValue(params.Query),
		City:      normalizeSearchValue(params.City),
		District:  normalizeSearchValue(params.District),
		Type:      string(params.Type),
		Skills:    skills,
		SalaryMin: params.SalaryMin,
		SalaryMax: params.SalaryMax,
		Page:      params.Page,
		Limit:     params.Limit,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	if strings.HasPrefix(searchKey, searchKeyPrefix) {
		return lockKeyPrefix + strings.TrimPrefix(searchKey, searchKeyPrefix)
	}
	return lockKeyPrefix + searchKey
}

package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"jobmarket/internal/domain/dedup"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/domain/skills"
	"jobmarket/internal/geo"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
	"jobmarket/internal/pkg/pagination"
	"jobmarket/internal/repository"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	searchLockTTL    = 30 * time.Second
	defaultRadiusKm  = 10.0
	maxRadiusKm      = 500.0
	defaultTopSkills = 10
)

type JobSearchParams struct {
	Query     string
	City      string
	District  string
	Type      job.Type
	Skills    []string
	SalaryMin *float64
	SalaryMax *float64
	Page      int
	Limit     int
}

type NearbyParams struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Page      int
	Limit     int
}

type JobWithDistance struct {
	job.Job
	DistanceKm float64 `json:"distanceKm"`
}

type MatchParams struct {
	Skills   []string
	City     string
	District string
	Page     int
	Limit    int
}

type JobMatch struct {
	job.Job
	MatchScore float64 `json:"matchScore"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type JobStats struct {
	Total      int            `json:"total"`
	ByType     map[string]int `json:"byType"`
	BySource   map[string]int `json:"bySource"`
	ByCity     map[string]int `json:"byCity"`
	ByCategory map[string]int `json:"byCategory"`
	TopSkills  []SkillCount   `json:"topSkills"`
}

type JobSearchUsecase interface {
	SearchJobs(ctx context.Context, params JobSearchParams) (pagination.Page[job.Job], error)
	NearbyJobs(ctx context.Context, params NearbyParams) (pagination.Page[JobWithDistance], error)
	MatchJobs(ctx context.Context, params MatchParams) (pagination.Page[JobMatch], error)
	DuplicateGroups(ctx context.Context, query string) ([][]job.Job, error)
	Stats(ctx context.Context) (JobStats, error)
}

type JobSearch struct {
	repo      repository.JobRepository
	taxonomy  *skills.Taxonomy
	cache     SearchCache
	cacheTTL  time.Duration
	threshold float64
	log       *log.Entry
}

func NewJobSearch(repo repository.JobRepository, taxonomy *skills.Taxonomy, cache SearchCache, cacheTTL time.Duration, threshold float64) *JobSearch {
	if taxonomy == nil {
		taxonomy = skills.DefaultTaxonomy()
	}
	if threshold <= 0 {
		threshold = dedup.DefaultThreshold
	}
	return &JobSearch{
		repo:      repo,
		taxonomy:  taxonomy,
		cache:     cache,
		cacheTTL:  cacheTTL,
		threshold: threshold,
		log:       logger.Component("job_search"),
	}
}

// SearchJobs filters active jobs, folds near-duplicates, orders newest first and
// returns the requested page. Pages are cached under a hash of the parameters.
func (u *JobSearch) SearchJobs(ctx context.Context, params JobSearchParams) (pagination.Page[job.Job], error) {
	if params.Type != "" && !params.Type.Valid() {
		return pagination.Page[job.Job]{}, invalidField("type", "unknown job type")
	}
	if params.SalaryMin != nil && params.SalaryMax != nil && *params.SalaryMin > *params.SalaryMax {
		return pagination.Page[job.Job]{}, invalidField("salaryMax", "must not be below salaryMin")
	}
	p := pagination.Validate(params.Page, params.Limit)
	params.Page, params.Limit = p.Page, p.Limit

	cacheKey := JobsSearchCacheKey(params)
	lockKey := JobsSearchLockKey(cacheKey)

	var cached pagination.Page[job.Job]
	if u.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", searchLockTTL)
		switch {
		case err == nil && ok:
			defer func() { _ = u.cache.Delete(ctx, lockKey) }()
		case err == nil && !ok:
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return pagination.Page[job.Job]{}, ctx.Err()
			case <-time.After(300*time.Millisecond + jitter):
			}
			if u.cacheGet(ctx, cacheKey, &cached) {
				return cached, nil
			}
			u.log.WithField("key", lockKey).Debug("lock wait fallback")
		}
	}

	rows, err := u.repo.ListActive(ctx, repository.JobFilter{
		Query:    params.Query,
		City:     params.City,
		District: params.District,
		Type:     params.Type,
	})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return pagination.Page[job.Job]{}, ErrInternal
	}

	filtered := filterJobs(rows, params)
	unique := dedup.FilterDuplicates(filtered, u.threshold)
	sortByPostedAtDesc(unique)
	page := pagination.Paginate(unique, p)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, u.cacheTTL); err == nil {
			u.log.WithField("key", cacheKey).Debug("cache set")
		}
	}
	return page, nil
}

func (u *JobSearch) cacheGet(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	if err == nil && hit {
		metrics.SearchCacheCounter.WithLabelValues("hit").Inc()
		return true
	}
	metrics.SearchCacheCounter.WithLabelValues("miss").Inc()
	return false
}

// InvalidateSearchCache drops every cached search page.
func (u *JobSearch) InvalidateSearchCache(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPrefix(ctx, searchKeyPrefix); err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Warn(err)
	}
}

func filterJobs(rows []job.Job, params JobSearchParams) []job.Job {
	query := lo.FilterMap(params.Skills, func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})

	return lo.Filter(rows, func(j job.Job, _ int) bool {
		if len(query) > 0 && !anySkillMatches(j.Skills, query) {
			return false
		}
		if params.SalaryMin != nil && (j.SalaryMin == nil || *j.SalaryMin < *params.SalaryMin) {
			return false
		}
		if params.SalaryMax != nil && (j.SalaryMax == nil || *j.SalaryMax > *params.SalaryMax) {
			return false
		}
		return true
	})
}

// anySkillMatches reports whether some query skill is a substring of some job skill.
func anySkillMatches(jobSkills, query []string) bool {
	for _, q := range query {
		for _, s := range jobSkills {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
	}
	return false
}

func sortByPostedAtDesc(jobs []job.Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].PostedAt.After(jobs[k].PostedAt)
	})
}

// NearbyJobs returns active jobs within RadiusKm of the point, closest first.
func (u *JobSearch) NearbyJobs(ctx context.Context, params NearbyParams) (pagination.Page[JobWithDistance], error) {
	if params.Latitude < -90 || params.Latitude > 90 {
		return pagination.Page[JobWithDistance]{}, invalidField("lat", "out of range")
	}
	if params.Longitude < -180 || params.Longitude > 180 {
		return pagination.Page[JobWithDistance]{}, invalidField("lng", "out of range")
	}
	radius := params.RadiusKm
	if radius == 0 {
		radius = defaultRadiusKm
	}
	if radius < 0 || radius > maxRadiusKm {
		return pagination.Page[JobWithDistance]{}, invalidField("radius", "out of range")
	}

	center := geo.Point{Latitude: params.Latitude, Longitude: params.Longitude}
	rows, err := u.repo.ListActiveInBounds(ctx, geo.BoundingBox(center, radius))
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return pagination.Page[JobWithDistance]{}, ErrInternal
	}

	out := make([]JobWithDistance, 0, len(rows))
	for _, j := range rows {
		if !j.HasCoordinates() {
			continue
		}
		d := geo.Distance(center, geo.Point{Latitude: *j.Latitude, Longitude: *j.Longitude})
		if d <= radius {
			out = append(out, JobWithDistance{Job: j, DistanceKm: math.Round(d*100) / 100})
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].DistanceKm < out[k].DistanceKm })

	return pagination.Paginate(out, pagination.Validate(params.Page, params.Limit)), nil
}

// MatchJobs scores active jobs by skill overlap with the candidate. Only jobs
// sharing at least one skill are returned, best match first.
func (u *JobSearch) MatchJobs(ctx context.Context, params MatchParams) (pagination.Page[JobMatch], error) {
	query := skills.NormalizeAll(params.Skills)
	if len(query) == 0 {
		return pagination.Page[JobMatch]{}, invalidField("skills", "at least one skill is required")
	}
	metrics.MatchRequestsCounter.WithLabelValues("jobs").Inc()

	f := repository.JobFilter{}
	switch {
	case strings.TrimSpace(params.City) != "":
		f.City = params.City
	case strings.TrimSpace(params.District) != "":
		f.District = params.District
	}
	rows, err := u.repo.ListActive(ctx, f)
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return pagination.Page[JobMatch]{}, ErrInternal
	}

	matches := make([]JobMatch, 0, len(rows))
	for _, j := range rows {
		score := skills.Similarity(skills.NormalizeAll(j.Skills), query)
		if score > 0 {
			matches = append(matches, JobMatch{Job: j, MatchScore: score})
		}
	}
	sort.SliceStable(matches, func(i, k int) bool { return matches[i].MatchScore > matches[k].MatchScore })

	return pagination.Paginate(matches, pagination.Validate(params.Page, params.Limit)), nil
}

// DuplicateGroups clusters the active jobs matching query and returns the
// clusters that hold more than one posting.
func (u *JobSearch) DuplicateGroups(ctx context.Context, query string) ([][]job.Job, error) {
	rows, err := u.repo.ListActive(ctx, repository.JobFilter{Query: query})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return nil, ErrInternal
	}
	groups := dedup.GroupSimilar(rows, u.threshold)
	return lo.Filter(groups, func(g []job.Job, _ int) bool { return len(g) > 1 }), nil
}

func (u *JobSearch) Stats(ctx context.Context) (JobStats, error) {
	rows, err := u.repo.ListActive(ctx, repository.JobFilter{})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return JobStats{}, ErrInternal
	}

	st := JobStats{
		Total:      len(rows),
		ByType:     make(map[string]int, len(job.Types)),
		BySource:   make(map[string]int, len(job.Sources)),
		ByCity:     map[string]int{},
		ByCategory: map[string]int{},
	}
	for _, t := range job.Types {
		st.ByType[string(t)] = 0
	}
	for _, s := range job.Sources {
		st.BySource[string(s)] = 0
	}

	skillCounts := map[string]int{}
	for _, j := range rows {
		st.ByType[string(j.Type)]++
		st.BySource[string(j.Source)]++
		if j.City != "" {
			st.ByCity[j.City]++
		}
		for _, s := range skills.NormalizeAll(j.Skills) {
			skillCounts[s]++
			st.ByCategory[u.taxonomy.CategoryOf(s)]++
		}
	}

	top := make([]SkillCount, 0, len(skillCounts))
	for s, n := range skillCounts {
		top = append(top, SkillCount{Skill: s, Count: n})
	}
	sort.Slice(top, func(i, k int) bool {
		if top[i].Count != top[k].Count {
			return top[i].Count > top[k].Count
		}
		return top[i].Skill < top[k].Skill
	})
	st.TopSkills = lo.Slice(top, 0, defaultTopSkills)

	return st, nil
}

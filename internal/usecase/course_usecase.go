package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"jobmarket/internal/domain/course"
	"jobmarket/internal/domain/skills"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
	"jobmarket/internal/pkg/pagination"
	"jobmarket/internal/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultRecommendLimit = 10
	activeCoursesKey      = "courses:active"
)

type CourseInput struct {
	Title           string
	Description     string
	Provider        course.Provider
	URL             string
	DurationMinutes *int
	Level           course.Level
	Tags            []string
	ThumbnailURL    string
	Instructor      string
	Rating          *float64
	Price           *float64
	Currency        string
	IsFree          bool
}

type CourseListParams struct {
	Provider course.Provider
	Level    course.Level
	Page     int
	Limit    int
}

type CourseRecommendation struct {
	course.Course
	RelevanceScore float64 `json:"relevanceScore"`
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, in CourseInput) (course.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (course.Course, error)
	ListCourses(ctx context.Context, params CourseListParams) (pagination.Page[course.Course], error)
	RecommendCourses(ctx context.Context, skillList []string, limit int) ([]CourseRecommendation, error)
}

// CachedCourses memoizes the active course catalogue used for recommendations.
type CachedCourses struct {
	cache *gocache.Cache
}

func NewCachedCourses(ttl time.Duration) *CachedCourses {
	return &CachedCourses{cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedCourses) Get() ([]course.Course, bool) {
	v, ok := c.cache.Get(activeCoursesKey)
	if !ok {
		return nil, false
	}
	return v.([]course.Course), true
}

func (c *CachedCourses) Set(courses []course.Course) {
	c.cache.SetDefault(activeCoursesKey, courses)
}

func (c *CachedCourses) Flush() {
	c.cache.Flush()
}

type Courses struct {
	repo   repository.CourseRepository
	cached *CachedCourses
	log    *log.Entry
}

func NewCourses(repo repository.CourseRepository, cached *CachedCourses) *Courses {
	if cached == nil {
		cached = NewCachedCourses(10 * time.Minute)
	}
	return &Courses{repo: repo, cached: cached, log: logger.Component("courses")}
}

func (u *Courses) CreateCourse(ctx context.Context, in CourseInput) (course.Course, error) {
	c := course.Course{
		Title:           strings.Join(strings.Fields(in.Title), " "),
		Description:     strings.TrimSpace(in.Description),
		Provider:        in.Provider,
		URL:             strings.TrimSpace(in.URL),
		DurationMinutes: in.DurationMinutes,
		Level:           in.Level,
		Tags:            skills.LowerAll(in.Tags),
		ThumbnailURL:    strings.TrimSpace(in.ThumbnailURL),
		Instructor:      strings.TrimSpace(in.Instructor),
		Rating:          in.Rating,
		Price:           in.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(in.Currency)),
		IsFree:          in.IsFree,
	}
	if c.Provider == "" {
		c.Provider = course.ProviderOther
	}
	if c.Level == "" {
		c.Level = course.LevelBeginner
	}
	if err := validateCourse(c); err != nil {
		return course.Course{}, err
	}

	if err := u.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourseURL) {
			return course.Course{}, ErrCourseAlreadyExists
		}
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return course.Course{}, ErrInternal
	}
	u.cached.Flush()
	return c, nil
}

func (u *Courses) GetCourse(ctx context.Context, id uuid.UUID) (course.Course, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return course.Course{}, ErrCourseNotFound
		}
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return course.Course{}, ErrInternal
	}
	return c, nil
}

func (u *Courses) ListCourses(ctx context.Context, params CourseListParams) (pagination.Page[course.Course], error) {
	if params.Provider != "" && !params.Provider.Valid() {
		return pagination.Page[course.Course]{}, invalidField("provider", "unknown provider")
	}
	if params.Level != "" && !params.Level.Valid() {
		return pagination.Page[course.Course]{}, invalidField("level", "unknown level")
	}
	rows, err := u.repo.ListActive(ctx, repository.CourseFilter{Provider: params.Provider, Level: params.Level})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return pagination.Page[course.Course]{}, ErrInternal
	}
	return pagination.Paginate(rows, pagination.Validate(params.Page, params.Limit)), nil
}

// RecommendCourses ranks active courses by how many of their tags overlap the
// given skills. Skills are only lowercased so "js" still matches a "node.js" tag.
// A non-positive limit means DefaultRecommendLimit.
func (u *Courses) RecommendCourses(ctx context.Context, skillList []string, limit int) ([]CourseRecommendation, error) {
	query := skills.LowerAll(skillList)
	if len(query) == 0 {
		return nil, invalidField("skills", "at least one skill is required")
	}
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	metrics.MatchRequestsCounter.WithLabelValues("courses").Inc()

	active, err := u.activeCourses(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]skills.Tagged[course.Course], 0, len(active))
	for _, c := range active {
		candidates = append(candidates, skills.Tagged[course.Course]{Item: c, Tags: c.Tags})
	}

	ranked := skills.RankByOverlap(candidates, query, limit)
	out := make([]CourseRecommendation, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, CourseRecommendation{Course: r.Item, RelevanceScore: r.Score})
	}
	return out, nil
}

func (u *Courses) activeCourses(ctx context.Context) ([]course.Course, error) {
	if cs, ok := u.cached.Get(); ok {
		return cs, nil
	}
	cs, err := u.repo.ListActive(ctx, repository.CourseFilter{})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error(err)
		return nil, ErrInternal
	}
	u.cached.Set(cs)
	return cs, nil
}

func validateCourse(c course.Course) error {
	fields := map[string]string{}
	if c.Title == "" {
		fields["title"] = "required"
	}
	if u, err := url.ParseRequestURI(c.URL); err != nil || u.Host == "" {
		fields["url"] = "must be an absolute url"
	}
	if !c.Provider.Valid() {
		fields["provider"] = "unknown provider"
	}
	if !c.Level.Valid() {
		fields["level"] = "unknown level"
	}
	if c.Rating != nil && (*c.Rating < 0 || *c.Rating > 5) {
		fields["rating"] = "must be between 0 and 5"
	}
	if c.Price != nil && *c.Price < 0 {
		fields["price"] = "must not be negative"
	}
	if c.DurationMinutes != nil && *c.DurationMinutes <= 0 {
		fields["durationMinutes"] = "must be positive"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobmarket/internal/delivery/http/middleware"
	"jobmarket/internal/domain/course"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/ingestion"
	"jobmarket/internal/pkg/pagination"
	"jobmarket/internal/repository"
	"jobmarket/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJobs struct{ mock.Mock }

func (m *mockJobs) CreateJob(ctx context.Context, in usecase.JobInput) (job.Job, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(job.Job), args.Error(1)
}

func (m *mockJobs) UpdateJob(ctx context.Context, id uuid.UUID, patch usecase.JobPatch) (job.Job, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(job.Job), args.Error(1)
}

func (m *mockJobs) GetJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(job.Job), args.Error(1)
}

func (m *mockJobs) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSearch struct{ mock.Mock }

func (m *mockSearch) SearchJobs(ctx context.Context, p usecase.JobSearchParams) (pagination.Page[job.Job], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(pagination.Page[job.Job]), args.Error(1)
}

func (m *mockSearch) NearbyJobs(ctx context.Context, p usecase.NearbyParams) (pagination.Page[usecase.JobWithDistance], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(pagination.Page[usecase.JobWithDistance]), args.Error(1)
}

func (m *mockSearch) MatchJobs(ctx context.Context, p usecase.MatchParams) (pagination.Page[usecase.JobMatch], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(pagination.Page[usecase.JobMatch]), args.Error(1)
}

func (m *mockSearch) DuplicateGroups(ctx context.Context, q string) ([][]job.Job, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([][]job.Job), args.Error(1)
}

func (m *mockSearch) Stats(ctx context.Context) (usecase.JobStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.JobStats), args.Error(1)
}

type mockCourses struct{ mock.Mock }

func (m *mockCourses) CreateCourse(ctx context.Context, in usecase.CourseInput) (course.Course, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(course.Course), args.Error(1)
}

func (m *mockCourses) GetCourse(ctx context.Context, id uuid.UUID) (course.Course, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(course.Course), args.Error(1)
}

func (m *mockCourses) ListCourses(ctx context.Context, p usecase.CourseListParams) (pagination.Page[course.Course], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(pagination.Page[course.Course]), args.Error(1)
}

func (m *mockCourses) RecommendCourses(ctx context.Context, skillList []string, limit int) ([]usecase.CourseRecommendation, error) {
	args := m.Called(ctx, skillList, limit)
	return args.Get(0).([]usecase.CourseRecommendation), args.Error(1)
}

type stubRunner struct {
	reports []ingestion.Report
	err     error
	runs    []repository.IngestionRun
}

func (s stubRunner) Run(context.Context) ([]ingestion.Report, error) { return s.reports, s.err }

func (s stubRunner) RecentRuns(context.Context, int) ([]repository.IngestionRun, error) {
	return s.runs, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func allow(c fiber.Ctx) error { return c.Next() }

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func jobsApp(jobs *mockJobs, search *mockSearch) *fiber.App {
	app := newTestApp()
	NewJobsHandler(jobs, search).RegisterRoutes(app.Group("/jobs"), allow)
	return app
}

func TestJobsHandler_Create(t *testing.T) {
	jobs, search := &mockJobs{}, &mockSearch{}
	created := job.Job{ID: uuid.New(), Title: "Go Developer", Company: "Acme", Type: job.TypeFullTime}
	jobs.On("CreateJob", mock.Anything, mock.MatchedBy(func(in usecase.JobInput) bool {
		return in.Title == "Go Developer" && in.Type == job.TypeFullTime && in.Source == ""
	})).Return(created, nil)

	status, env := do(t, jobsApp(jobs, search), http.MethodPost, "/jobs",
		`{"title":"Go Developer","company":"Acme","city":"Pune","district":"Baner","type":"full-time"}`)

	assert.Equal(t, http.StatusCreated, status)
	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, created.ID.String(), out["id"])
	assert.Equal(t, []any{}, out["skills"])
	jobs.AssertExpectations(t)
}

func TestJobsHandler_CreateValidation(t *testing.T) {
	status, env := do(t, jobsApp(&mockJobs{}, &mockSearch{}), http.MethodPost, "/jobs",
		`{"company":"Acme","city":"Pune","district":"Baner","type":"weekly"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Equal(t, "required", fields["title"])
	assert.Contains(t, fields["type"], "oneof")
}

func TestJobsHandler_CreateConflict(t *testing.T) {
	jobs := &mockJobs{}
	jobs.On("CreateJob", mock.Anything, mock.Anything).Return(job.Job{}, usecase.ErrJobAlreadyExists)

	status, env := do(t, jobsApp(jobs, &mockSearch{}), http.MethodPost, "/jobs",
		`{"title":"Go Developer","company":"Acme","city":"Pune","district":"Baner"}`)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Job already exists", env.Message)
}

func TestJobsHandler_UsecaseValidationError(t *testing.T) {
	jobs := &mockJobs{}
	jobs.On("CreateJob", mock.Anything, mock.Anything).
		Return(job.Job{}, &usecase.ValidationError{Fields: map[string]string{"salaryMax": "must not be below salaryMin"}})

	status, env := do(t, jobsApp(jobs, &mockSearch{}), http.MethodPost, "/jobs",
		`{"title":"Go","company":"Acme","city":"Pune","district":"Baner","salaryMin":10,"salaryMax":5}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(env.Data), "salaryMax")
}

func TestJobsHandler_GetNotFound(t *testing.T) {
	jobs := &mockJobs{}
	id := uuid.New()
	jobs.On("GetJob", mock.Anything, id).Return(job.Job{}, usecase.ErrJobNotFound)

	status, env := do(t, jobsApp(jobs, &mockSearch{}), http.MethodGet, "/jobs/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job not found", env.Message)
}

func TestJobsHandler_GetInvalidID(t *testing.T) {
	status, _ := do(t, jobsApp(&mockJobs{}, &mockSearch{}), http.MethodGet, "/jobs/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobsHandler_Search(t *testing.T) {
	search := &mockSearch{}
	search.On("SearchJobs", mock.Anything, mock.MatchedBy(func(p usecase.JobSearchParams) bool {
		return p.Query == "golang" && p.City == "Pune" && p.Page == 2 && p.Limit == 5 &&
			len(p.Skills) == 2 && p.SalaryMin != nil && *p.SalaryMin == 1000
	})).Return(pagination.Page[job.Job]{
		Data:       []job.Job{{ID: uuid.New(), Title: "Go"}},
		Pagination: pagination.Meta{Page: 2, Limit: 5, Total: 6, TotalPages: 2, HasPrev: true},
	}, nil)

	status, env := do(t, jobsApp(&mockJobs{}, search), http.MethodGet,
		"/jobs/search?q=golang&city=Pune&skills=go,%20docker,&salaryMin=1000&page=2&limit=5", "")

	require.Equal(t, http.StatusOK, status)
	var page struct {
		Data       []map[string]any `json:"data"`
		Pagination pagination.Meta  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 6, page.Pagination.Total)
	search.AssertExpectations(t)
}

func TestJobsHandler_SearchBadQuery(t *testing.T) {
	app := jobsApp(&mockJobs{}, &mockSearch{})

	status, _ := do(t, app, http.MethodGet, "/jobs?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/jobs?type=weekly", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobsHandler_Nearby(t *testing.T) {
	search := &mockSearch{}
	search.On("NearbyJobs", mock.Anything, usecase.NearbyParams{Latitude: 18.52, Longitude: 73.85, RadiusKm: 5, Page: 1, Limit: 20}).
		Return(pagination.Page[usecase.JobWithDistance]{
			Data: []usecase.JobWithDistance{{Job: job.Job{ID: uuid.New()}, DistanceKm: 1.25}},
		}, nil)

	status, env := do(t, jobsApp(&mockJobs{}, search), http.MethodGet, "/jobs/nearby?lat=18.52&lng=73.85&radius=5", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"distanceKm":1.25`)

	status, _ = do(t, jobsApp(&mockJobs{}, search), http.MethodGet, "/jobs/nearby?lng=73.85", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobsHandler_Match(t *testing.T) {
	search := &mockSearch{}
	search.On("MatchJobs", mock.Anything, usecase.MatchParams{Skills: []string{"go", "sql"}, City: "Pune"}).
		Return(pagination.Page[usecase.JobMatch]{
			Data: []usecase.JobMatch{{Job: job.Job{ID: uuid.New()}, MatchScore: 0.5}},
		}, nil)

	status, env := do(t, jobsApp(&mockJobs{}, search), http.MethodPost, "/jobs/match", `{"skills":["go","sql"],"city":" Pune "}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"matchScore":0.5`)

	status, _ = do(t, jobsApp(&mockJobs{}, search), http.MethodPost, "/jobs/match", `{"skills":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobsHandler_Delete(t *testing.T) {
	jobs := &mockJobs{}
	id := uuid.New()
	jobs.On("DeleteJob", mock.Anything, id).Return(nil)

	status, _ := do(t, jobsApp(jobs, &mockSearch{}), http.MethodDelete, "/jobs/"+id.String(), "")
	assert.Equal(t, http.StatusOK, status)
	jobs.AssertExpectations(t)
}

func TestJobsHandler_UpdatePassesPatch(t *testing.T) {
	jobs := &mockJobs{}
	id := uuid.New()
	jobs.On("UpdateJob", mock.Anything, id, mock.MatchedBy(func(p usecase.JobPatch) bool {
		return p.Title != nil && *p.Title == "Senior Go" && p.Type != nil && *p.Type == job.TypeContract && p.Company == nil
	})).Return(job.Job{ID: id, Title: "Senior Go"}, nil)

	status, _ := do(t, jobsApp(jobs, &mockSearch{}), http.MethodPatch, "/jobs/"+id.String(), `{"title":"Senior Go","type":"contract"}`)
	assert.Equal(t, http.StatusOK, status)
	jobs.AssertExpectations(t)
}

func TestJobsHandler_WriteGuard(t *testing.T) {
	app := newTestApp()
	deny := func(c fiber.Ctx) error { return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil) }
	NewJobsHandler(&mockJobs{}, &mockSearch{}).RegisterRoutes(app.Group("/jobs"), deny)

	status, _ := do(t, app, http.MethodPost, "/jobs", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestJobsHandler_InternalErrorHidden(t *testing.T) {
	search := &mockSearch{}
	search.On("Stats", mock.Anything).Return(usecase.JobStats{}, errors.New("db exploded"))

	status, env := do(t, jobsApp(&mockJobs{}, search), http.MethodGet, "/jobs/stats", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, env.Message, "exploded")
}

func TestCoursesHandler(t *testing.T) {
	uc := &mockCourses{}
	app := newTestApp()
	NewCoursesHandler(uc).RegisterRoutes(app.Group("/courses"), allow)

	uc.On("RecommendCourses", mock.Anything, []string{"python"}, 0).Return([]usecase.CourseRecommendation{
		{Course: course.Course{ID: uuid.New(), Title: "Python 101"}, RelevanceScore: 1},
	}, nil)
	status, env := do(t, app, http.MethodPost, "/courses/recommend", `{"skills":["python"]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"relevanceScore":1`)

	status, _ = do(t, app, http.MethodPost, "/courses", `{"title":"Go","provider":"udemy","url":"not a url","tags":["go"]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	uc.On("ListCourses", mock.Anything, usecase.CourseListParams{Provider: course.ProviderUdemy, Page: 1, Limit: 20}).
		Return(pagination.Page[course.Course]{Data: []course.Course{}}, nil)
	status, _ = do(t, app, http.MethodGet, "/courses?provider=udemy", "")
	assert.Equal(t, http.StatusOK, status)

	id := uuid.New()
	uc.On("GetCourse", mock.Anything, id).Return(course.Course{}, usecase.ErrCourseNotFound)
	status, env = do(t, app, http.MethodGet, "/courses/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Course not found", env.Message)
}

func TestSkillHandler(t *testing.T) {
	app := newTestApp()
	NewSkillHandler(usecase.NewSkills(nil)).RegisterRoutes(app.Group("/skills"))

	status, env := do(t, app, http.MethodPost, "/skills/extract", `{"text":"We use Docker and Kubernetes"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"skill":"docker"`)

	status, _ = do(t, app, http.MethodPost, "/skills/extract", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, app, http.MethodGet, "/skills/python/category", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"known":true`)

	status, env = do(t, app, http.MethodGet, "/skills/python/related", "")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), `"python"`)

	status, env = do(t, app, http.MethodGet, "/skills/taxonomy", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"name"`)
}

func TestIngestionHandler(t *testing.T) {
	app := newTestApp()
	NewIngestionHandler(stubRunner{reports: []ingestion.Report{{Source: "adzuna", Fetched: 3, Ingested: 2}}}).RegisterRoutes(app.Group("/ingestion"))

	status, env := do(t, app, http.MethodPost, "/ingestion/run", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"ingested":2`)

	status, _ = do(t, app, http.MethodGet, "/ingestion/runs?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, status)

	busy := newTestApp()
	NewIngestionHandler(stubRunner{err: ingestion.ErrRunInProgress}).RegisterRoutes(busy.Group("/ingestion"))
	status, _ = do(t, busy, http.MethodPost, "/ingestion/run", "")
	assert.Equal(t, http.StatusConflict, status)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	app := newTestApp()
	NewHealthHandler(map[string]Pinger{
		"db":    pingFunc(func(context.Context) error { return nil }),
		"redis": pingFunc(func(context.Context) error { return errors.New("down") }),
	}).RegisterRoutes(app)

	status, env := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(env.Data), `"redis":"down"`)
	assert.Contains(t, string(env.Data), `"db":"up"`)
}

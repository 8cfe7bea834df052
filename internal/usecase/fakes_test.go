package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobmarket/internal/domain/course"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/geo"
	"jobmarket/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs []job.Job
	err  error
	// skipLookup hides stored jobs from FindByFingerprint to simulate a lost race.
	skipLookup bool
}

func (r *fakeJobRepo) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, other := range r.jobs {
		if other.Fingerprint == j.Fingerprint {
			return repository.ErrDuplicateFingerprint
		}
	}
	j.ID = uuid.New()
	j.IsActive = true
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}
	j.UpdatedAt = j.PostedAt
	r.jobs = append(r.jobs, *j)
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	for _, j := range r.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrNotFound
}

func (r *fakeJobRepo) FindByFingerprint(_ context.Context, fingerprint string) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.skipLookup {
		return nil, nil
	}
	for _, j := range r.jobs {
		if j.Fingerprint == fingerprint {
			found := j
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jobs {
		if r.jobs[i].ID == j.ID {
			r.jobs[i] = *j
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeJobRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jobs {
		if r.jobs[i].ID == id && r.jobs[i].IsActive {
			r.jobs[i].IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeJobRepo) ListActive(_ context.Context, f repository.JobFilter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	contains := func(s, sub string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	var out []job.Job
	for _, j := range r.jobs {
		switch {
		case !j.IsActive:
		case f.Query != "" && !contains(j.Title, f.Query) && !contains(j.Company, f.Query):
		case f.City != "" && !contains(j.City, f.City):
		case f.District != "" && !contains(j.District, f.District):
		case f.Type != "" && j.Type != f.Type:
		default:
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListActiveInBounds(_ context.Context, b geo.Bounds) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Job
	for _, j := range r.jobs {
		if j.IsActive && j.HasCoordinates() && b.Contains(geo.Point{Latitude: *j.Latitude, Longitude: *j.Longitude}) {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeCourseRepo struct {
	courses []course.Course
	lists   int
}

func (r *fakeCourseRepo) Create(_ context.Context, c *course.Course) error {
	for _, other := range r.courses {
		if other.URL == c.URL {
			return repository.ErrDuplicateCourseURL
		}
	}
	c.ID = uuid.New()
	c.IsActive = true
	r.courses = append(r.courses, *c)
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (course.Course, error) {
	for _, c := range r.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, repository.ErrNotFound
}

func (r *fakeCourseRepo) ListActive(_ context.Context, f repository.CourseFilter) ([]course.Course, error) {
	r.lists++
	var out []course.Course
	for _, c := range r.courses {
		if c.IsActive && (f.Provider == "" || c.Provider == f.Provider) && (f.Level == "" || c.Level == f.Level) {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockSearchCache struct {
	mock.Mock
}

func (m *mockSearchCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	args := m.Called(ctx, key, out)
	return args.Bool(0), args.Error(1)
}

func (m *mockSearchCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockSearchCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockSearchCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func (m *mockSearchCache) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}

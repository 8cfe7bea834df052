package ingestion

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobmarket/internal/domain/dedup"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/repository"
	"jobmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

type staticSource struct {
	name     string
	postings []Posting
	err      error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Fetch(context.Context) ([]Posting, error) { return s.postings, s.err }

type fakeCreator struct {
	mu   sync.Mutex
	seen map[string]bool
	fail string
}

func (f *fakeCreator) CreateJob(_ context.Context, in usecase.JobInput) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Title == f.fail {
		return job.Job{}, usecase.ErrInvalidInput
	}
	fp := dedup.ComputeFingerprint(dedup.Signature{Title: in.Title, Company: in.Company, LocationText: in.LocationText})
	if f.seen[fp] {
		return job.Job{}, usecase.ErrJobAlreadyExists
	}
	f.seen[fp] = true
	return job.Job{ID: uuid.New(), Title: in.Title}, nil
}

type fakeRuns struct {
	mu       sync.Mutex
	started  []string
	finished []repository.IngestionRun
}

func (r *fakeRuns) Start(_ context.Context, source string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, source)
	return uuid.New(), nil
}

func (r *fakeRuns) Finish(_ context.Context, run repository.IngestionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, run)
	return nil
}

func (r *fakeRuns) ListRecent(context.Context, int) ([]repository.IngestionRun, error) {
	return r.finished, nil
}

func posting(source, title, company, location string) Posting {
	return Posting{Source: source, Input: usecase.JobInput{Title: title, Company: company, LocationText: location}}
}

func TestService_Run(t *testing.T) {
	creator := &fakeCreator{seen: map[string]bool{}, fail: "Broken"}
	creator.seen[dedup.ComputeFingerprint(dedup.Signature{Title: "Existing", Company: "Old Co", LocationText: "Paris"})] = true
	runs := &fakeRuns{}

	sources := []Source{
		staticSource{name: "adzuna", postings: []Posting{
			posting("adzuna", "Senior Go Developer", "Acme Corp", "Berlin"),
			posting("adzuna", "Existing", "Old Co", "Paris"),
			posting("adzuna", "Broken", "X", "Y"),
		}},
		staticSource{name: "jooble", postings: []Posting{
			posting("jooble", "Senior Go Developer", "Acme Corp.", "Berlin"),
			posting("jooble", "Rust Engineer", "Ferris Ltd", "Oslo"),
		}},
		staticSource{name: "scraper", err: ErrSourceNotConfigured},
		staticSource{name: "broken", err: errors.New("upstream down")},
	}

	svc := NewService(sources, creator, runs, Options{Workers: 2, DedupThreshold: 0.8})
	reports, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	assert.Equal(t, Report{Source: "adzuna", Fetched: 3, Ingested: 1, Duplicates: 1, Failed: 1}, reports[0])
	assert.Equal(t, Report{Source: "jooble", Fetched: 2, Ingested: 1, FuzzyDuplicates: 1}, reports[1])
	assert.True(t, reports[2].Skipped)
	assert.Equal(t, "upstream down", reports[3].Error)

	assert.ElementsMatch(t, []string{"adzuna", "jooble", "scraper", "broken"}, runs.started)
	require.Len(t, runs.finished, 4)
	assert.Equal(t, "adzuna", runs.finished[0].Source)
	assert.NotNil(t, runs.finished[0].FinishedAt)
}

func TestService_NoSources(t *testing.T) {
	_, err := NewService(nil, &fakeCreator{seen: map[string]bool{}}, nil, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrSourceNotConfigured)
}

type countingRunner struct {
	calls atomic.Int32
	block chan struct{}
}

func (r *countingRunner) Run(context.Context) ([]Report, error) {
	r.calls.Add(1)
	<-r.block
	return nil, nil
}

func TestScheduler_SkipsOverlappingTicks(t *testing.T) {
	runner := &countingRunner{block: make(chan struct{})}
	s, err := NewScheduler("@every 1h", runner, time.Minute)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.tick()
		close(done)
	}()
	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.tick()
	assert.Equal(t, int32(1), runner.calls.Load())

	close(runner.block)
	<-done
	s.tick()
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("not a cron", &countingRunner{}, 0)
	assert.Error(t, err)
}

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := NewWorkerPool(3, 0)
	results := p.Run(context.Background())

	var n atomic.Int32
	go func() {
		defer p.Close()
		for i := 0; i < 20; i++ {
			p.Submit(func(context.Context) error {
				n.Add(1)
				return nil
			})
		}
	}()

	count := 0
	for res := range results {
		assert.NoError(t, res.Err)
		count++
	}
	assert.Equal(t, 20, count)
	assert.Equal(t, int32(20), n.Load())
}

func TestWorkerPool_SubmitAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewWorkerPool(1, 0)
	results := p.Run(ctx)
	cancel()
	for range results {
	}
	assert.False(t, p.Submit(func(context.Context) error { return nil }))
}

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b blockingSource) Name() string { return "blocking" }

func (b blockingSource) Fetch(context.Context) ([]Posting, error) {
	close(b.started)
	<-b.release
	return nil, nil
}

func TestService_RejectsConcurrentRun(t *testing.T) {
	src := blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService([]Source{src}, &fakeCreator{seen: map[string]bool{}}, nil, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background())
		done <- err
	}()
	<-src.started

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(src.release)
	require.NoError(t, <-done)

	runs, err := svc.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

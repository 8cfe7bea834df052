package ingestion

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"jobmarket/internal/domain/dedup"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
	"jobmarket/internal/repository"
	"jobmarket/internal/usecase"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrRunInProgress = errors.New("ingestion already running")

type JobCreator interface {
	CreateJob(ctx context.Context, in usecase.JobInput) (job.Job, error)
}

// Report summarizes one source's share of an ingestion run.
type Report struct {
	Source          string `json:"source"`
	Fetched         int    `json:"fetched"`
	Ingested        int    `json:"ingested"`
	Duplicates      int    `json:"duplicates"`
	FuzzyDuplicates int    `json:"fuzzyDuplicates"`
	Failed          int    `json:"failed"`
	Skipped         bool   `json:"skipped,omitempty"`
	Error           string `json:"error,omitempty"`
}

type Options struct {
	Workers        int
	DedupThreshold float64
}

type Service struct {
	sources []Source
	jobs    JobCreator
	runs    repository.IngestionRunRepository
	opts    Options
	running atomic.Bool
	log     *log.Entry
}

func NewService(sources []Source, jobs JobCreator, runs repository.IngestionRunRepository, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.DedupThreshold <= 0 {
		opts.DedupThreshold = dedup.DefaultThreshold
	}
	return &Service{sources: sources, jobs: jobs, runs: runs, opts: opts, log: logger.Component("ingestion")}
}

type fetchResult struct {
	postings []Posting
	err      error
	took     time.Duration
}

// Run fetches every source concurrently, folds near-duplicates across the
// combined batch and stores the remaining postings. Reports follow source order.
// Only one run may be active at a time.
func (s *Service) Run(ctx context.Context) ([]Report, error) {
	if len(s.sources) == 0 {
		return nil, ErrSourceNotConfigured
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	runIDs := s.startRuns(ctx)
	fetched := s.fetchAll(ctx)

	reports := make([]Report, len(s.sources))
	index := make(map[string]int, len(s.sources))
	var batch []Posting
	for i, src := range s.sources {
		res := fetched[i]
		reports[i] = Report{Source: src.Name(), Fetched: len(res.postings)}
		index[src.Name()] = i
		metrics.IngestionDuration.WithLabelValues(src.Name()).Observe(res.took.Seconds())

		switch {
		case errors.Is(res.err, ErrSourceNotConfigured):
			reports[i].Skipped = true
			s.log.WithField("source", src.Name()).Warn("source not configured, skipping")
		case res.err != nil:
			reports[i].Error = res.err.Error()
			s.log.WithFields(log.Fields{"source": src.Name(), logger.ErrorTypeField: logger.ErrorTypeIngestion}).Error(res.err)
		}
		batch = append(batch, res.postings...)
	}

	for _, group := range dedup.GroupSimilar(batch, s.opts.DedupThreshold) {
		for _, member := range group[1:] {
			reports[index[member.Source]].FuzzyDuplicates++
			metrics.DuplicatesCounter.WithLabelValues(metrics.DuplicateFuzzy).Inc()
		}

		seed := group[0]
		r := &reports[index[seed.Source]]
		_, err := s.jobs.CreateJob(ctx, seed.Input)
		switch {
		case err == nil:
			r.Ingested++
		case errors.Is(err, usecase.ErrJobAlreadyExists):
			r.Duplicates++
		default:
			r.Failed++
			s.log.WithFields(log.Fields{"source": seed.Source, "title": seed.Input.Title}).Debugf("ingest job: %v", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	s.finishRuns(runIDs, reports)
	for _, r := range reports {
		s.log.WithFields(log.Fields{
			"source":           r.Source,
			"fetched":          r.Fetched,
			"ingested":         r.Ingested,
			"duplicates":       r.Duplicates,
			"fuzzy_duplicates": r.FuzzyDuplicates,
			"failed":           r.Failed,
		}).Info("ingestion completed")
	}
	return reports, ctx.Err()
}

// RecentRuns lists the latest recorded runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]repository.IngestionRun, error) {
	if s.runs == nil {
		return []repository.IngestionRun{}, nil
	}
	return s.runs.ListRecent(ctx, limit)
}

func (s *Service) fetchAll(ctx context.Context) []fetchResult {
	results := make([]fetchResult, len(s.sources))

	pool := NewWorkerPool(min(s.opts.Workers, len(s.sources)), len(s.sources))
	for i, src := range s.sources {
		i, src := i, src
		pool.Submit(func(ctx context.Context) error {
			start := time.Now()
			postings, err := src.Fetch(ctx)
			results[i] = fetchResult{postings: postings, err: err, took: time.Since(start)}
			return err
		})
	}
	pool.Close()

	for range pool.Run(ctx) {
	}

	return results
}

func (s *Service) startRuns(ctx context.Context) []uuid.UUID {
	ids := make([]uuid.UUID, len(s.sources))
	if s.runs == nil {
		return ids
	}
	for i, src := range s.sources {
		id, err := s.runs.Start(ctx, src.Name())
		if err != nil {
			s.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Warnf("start ingestion run: %v", err)
			continue
		}
		ids[i] = id
	}
	return ids
}

func (s *Service) finishRuns(ids []uuid.UUID, reports []Report) {
	if s.runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for i, id := range ids {
		if id == uuid.Nil {
			continue
		}
		r := reports[i]
		err := s.runs.Finish(ctx, repository.IngestionRun{
			ID:              id,
			Source:          r.Source,
			FinishedAt:      &now,
			Fetched:         r.Fetched,
			Ingested:        r.Ingested,
			Duplicates:      r.Duplicates,
			FuzzyDuplicates: r.FuzzyDuplicates,
			Failed:          r.Failed,
			Error:           r.Error,
		})
		if err != nil {
			s.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Warnf("finish ingestion run: %v", err)
		}
	}
}

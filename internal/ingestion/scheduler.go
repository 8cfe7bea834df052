package ingestion

import (
	"context"
	"sync/atomic"
	"time"

	"jobmarket/internal/logger"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const DefaultSchedule = "0 */6 * * *"

type Runner interface {
	Run(ctx context.Context) ([]Report, error)
}

// Scheduler triggers ingestion on a cron spec. A tick is skipped while the
// previous run is still going.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	timeout time.Duration
	running atomic.Bool
	log     *log.Entry
}

func NewScheduler(spec string, runner Runner, timeout time.Duration) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	s := &Scheduler{cron: cron.New(), runner: runner, timeout: timeout, log: logger.Component("scheduler")}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, errors.Wrapf(err, "invalid ingestion schedule %q", spec)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("previous ingestion still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.runner.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrRunInProgress):
		s.log.Warn("ingestion triggered elsewhere is still running, skipping tick")
	default:
		s.log.WithField(logger.ErrorTypeField, logger.ErrorTypeIngestion).Error(err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.WithField("next", e.Next).Info("ingestion scheduled")
	}
}

// Stop halts scheduling; the returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

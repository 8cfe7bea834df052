package seeder

import (
	"context"

	"jobmarket/internal/database"
	"jobmarket/internal/logger"

	"github.com/pkg/errors"
)

// Seeder loads one data set. Implementations must be safe to run repeatedly.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner applies seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	l := logger.Component("seeder")
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return errors.Wrapf(err, "seed %s", s.Name())
		}
		l.WithField("seeder", s.Name()).Info("seeded")
	}
	return nil
}

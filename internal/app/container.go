package app

import (
	"context"
	"strings"
	"time"

	"jobmarket/internal/config"
	"jobmarket/internal/database"
	dbpostgres "jobmarket/internal/database/postgres"
	"jobmarket/internal/domain/skills"
	"jobmarket/internal/events"
	"jobmarket/internal/infrastructure/cache"
	"jobmarket/internal/ingestion"
	"jobmarket/internal/pkg/jwt"
	"jobmarket/internal/repository"
	"jobmarket/internal/usecase"
	"jobmarket/internal/ws"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
)

const (
	tokenIssuer    = "jobmarket"
	courseCacheTTL = 5 * time.Minute
)

// Container owns the long-lived dependencies shared by the server and the CLI.
type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Bus      EventBus.Bus
	Taxonomy *skills.Taxonomy
	JWT      *jwt.HMACService
	Hub      *ws.Hub

	Jobs      *usecase.Jobs
	JobSearch *usecase.JobSearch
	Courses   *usecase.Courses
	Skills    *usecase.Skills
	Ingestion *ingestion.Service
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taxonomy, err := loadTaxonomy(cfg.Matching)
	if err != nil {
		return nil, err
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		DB:       db,
		Cache:    cache.NewRedis(ctx, cfg.Redis),
		Bus:      EventBus.New(),
		Taxonomy: taxonomy,
		JWT:      jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn, tokenIssuer),
		Hub:      ws.NewHub(),
	}

	jobRepo := repository.NewPostgresJobRepository(db)
	c.Jobs = usecase.NewJobs(jobRepo, taxonomy, c.Bus)
	c.JobSearch = usecase.NewJobSearch(jobRepo, taxonomy, c.Cache, cfg.Redis.TTL, cfg.Matching.DedupThreshold)
	c.Courses = usecase.NewCourses(repository.NewPostgresCourseRepository(db), usecase.NewCachedCourses(courseCacheTTL))
	c.Skills = usecase.NewSkills(taxonomy)

	sources, err := ingestion.NewSources(cfg.Ingestion)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Ingestion = ingestion.NewService(sources, c.Jobs, repository.NewPostgresIngestionRunRepository(db), ingestion.Options{
		Workers:        cfg.Ingestion.Workers,
		DedupThreshold: cfg.Matching.DedupThreshold,
	})

	if err := c.subscribe(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func loadTaxonomy(cfg config.MatchingConfig) (*skills.Taxonomy, error) {
	path := strings.TrimSpace(cfg.TaxonomyFile)
	if path == "" {
		return skills.DefaultTaxonomy(), nil
	}
	t, err := skills.LoadTaxonomy(path)
	if err != nil {
		return nil, errors.Wrap(err, "load taxonomy")
	}
	return t, nil
}

// subscribe wires job events to the realtime feed and the search cache.
func (c *Container) subscribe() error {
	if err := ws.NewJobFeed(c.Hub).Subscribe(c.Bus); err != nil {
		return errors.Wrap(err, "subscribe job feed")
	}

	invalidate := func(any) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		c.JobSearch.InvalidateSearchCache(ctx)
	}
	for _, topic := range []string{events.JobCreatedTopic, events.JobUpdatedTopic, events.JobDeletedTopic} {
		if err := c.Bus.SubscribeAsync(topic, invalidate, true); err != nil {
			return errors.Wrapf(err, "subscribe %s", topic)
		}
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	c.Bus.WaitAsync()
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

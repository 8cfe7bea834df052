package ingestion

import (
	"net/http"
	"strings"
	"time"

	"jobmarket/internal/config"

	"golang.org/x/time/rate"
)

const defaultRequestsPerSecond = 1

// NewSources builds the configured sources. Sources without credentials are
// still returned and report themselves as skipped.
func NewSources(cfg config.IngestionConfig) ([]Source, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	newLimiter := func() *rate.Limiter { return rate.NewLimiter(rate.Limit(rps), 1) }

	sources := []Source{
		NewAdzuna(AdzunaConfig{
			AppID:   cfg.AdzunaAppID,
			AppKey:  cfg.AdzunaAppKey,
			Country: cfg.AdzunaCountry,
			Query:   cfg.AdzunaQuery,
			PerPage: cfg.AdzunaPerPage,
		}, client, newLimiter()),
		NewJooble(JoobleConfig{
			APIKey:   cfg.JoobleAPIKey,
			Keywords: cfg.JoobleKeywords,
			Location: cfg.JoobleLocation,
		}, client, newLimiter()),
	}

	if path := strings.TrimSpace(cfg.CareersFile); path != "" {
		targets, err := LoadCareersTargets(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, NewCareers(targets, cfg.Workers))
	}
	return sources, nil
}

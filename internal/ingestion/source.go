package ingestion

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobmarket/internal/domain/dedup"
	"jobmarket/internal/usecase"
)

var ErrSourceNotConfigured = errors.New("source not configured")

// Posting is one fetched job tagged with the source that produced it.
type Posting struct {
	Source string
	Input  usecase.JobInput
}

func (p Posting) Signature() dedup.Signature {
	return dedup.Signature{
		Title:        p.Input.Title,
		Company:      p.Input.Company,
		LocationText: p.Input.LocationText,
		ExternalURL:  p.Input.ExternalURL,
	}
}

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Posting, error)
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "JobMarketIngest/1.0",
		"Accept":          "application/json, text/html;q=0.9",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

var postedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parsePosted returns nil for empty or unparseable dates so the store default applies.
func parsePosted(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range postedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

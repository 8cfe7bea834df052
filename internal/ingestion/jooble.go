package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"jobmarket/internal/domain/job"
	"jobmarket/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	joobleBaseURL         = "https://jooble.org/api"
	joobleDefaultLocation = "india"
	joobleRadiusKm        = 25
)

var joobleDefaultKeywords = []string{"developer", "software engineer", "programmer"}

type JoobleConfig struct {
	APIKey   string
	Keywords []string
	Location string
	BaseURL  string
}

type Jooble struct {
	cfg     JoobleConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewJooble(cfg JoobleConfig, client *http.Client, limiter *rate.Limiter) *Jooble {
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = joobleDefaultKeywords
	}
	if cfg.Location == "" {
		cfg.Location = joobleDefaultLocation
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = joobleBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Jooble{cfg: cfg, client: client, limiter: limiter}
}

func (j *Jooble) Name() string { return string(job.SourceJooble) }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Radius   int    `json:"radius"`
	Page     int    `json:"page"`
}

type joobleResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

type joobleJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	Date        string `json:"date"`
	Updated     string `json:"updated"`
}

// Fetch queries every configured keyword in turn and concatenates the results.
func (j *Jooble) Fetch(ctx context.Context) ([]Posting, error) {
	if strings.TrimSpace(j.cfg.APIKey) == "" {
		return nil, ErrSourceNotConfigured
	}

	var out []Posting
	for _, kw := range j.cfg.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		jobs, err := j.search(ctx, kw)
		if err != nil {
			return out, errors.Wrapf(err, "jooble keyword %q", kw)
		}
		for _, r := range jobs {
			out = append(out, Posting{Source: j.Name(), Input: r.toInput()})
		}
	}
	return out, nil
}

func (j *Jooble) search(ctx context.Context, keywords string) ([]joobleJob, error) {
	if j.limiter != nil {
		if err := j.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(joobleRequest{Keywords: keywords, Location: j.cfg.Location, Radius: joobleRadiusKm, Page: 1})
	if err != nil {
		return nil, err
	}
	endpoint := strings.TrimRight(j.cfg.BaseURL, "/") + "/" + url.PathEscape(j.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "jooble request")
	}
	for k, v := range httpHeaders() {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "jooble fetch")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("jooble: unexpected status %d", resp.StatusCode)
	}

	var body joobleResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "jooble decode")
	}
	return body.Jobs, nil
}

func (r joobleJob) toInput() usecase.JobInput {
	city, district := splitLocation(r.Location)

	return usecase.JobInput{
		Title:        r.Title,
		Company:      r.Company,
		City:         city,
		District:     district,
		LocationText: pickNonEmpty(r.Location, city),
		Currency:     "USD",
		Type:         job.TypeFullTime,
		Description:  stripTags(pickNonEmpty(r.Description, r.Snippet)),
		Source:       job.SourceJooble,
		ExternalURL:  r.Link,
		PostedAt:     parsePosted(pickNonEmpty(r.Date, r.Updated)),
	}
}

// splitLocation reads "City, District" keeping the original casing.
func splitLocation(location string) (city, district string) {
	parts := strings.Split(location, ",")
	city = pickNonEmpty(parts[0], "Unknown")
	district = city
	if len(parts) > 1 {
		district = pickNonEmpty(parts[1], city)
	}
	return city, district
}

// stripTags drops the HTML highlighting Jooble puts into snippets.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

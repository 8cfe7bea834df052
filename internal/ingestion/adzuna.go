package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobmarket/internal/domain/job"
	"jobmarket/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	adzunaBaseURL        = "https://api.adzuna.com/v1/api/jobs"
	adzunaDefaultCountry = "in"
	adzunaDefaultQuery   = "developer software engineer programmer"
	adzunaDefaultPerPage = 50
	maxResponseBytes     = 8 << 20
)

type AdzunaConfig struct {
	AppID   string
	AppKey  string
	Country string
	Query   string
	PerPage int
	BaseURL string
}

type Adzuna struct {
	cfg     AdzunaConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewAdzuna(cfg AdzunaConfig, client *http.Client, limiter *rate.Limiter) *Adzuna {
	if cfg.Country == "" {
		cfg.Country = adzunaDefaultCountry
	}
	if cfg.Query == "" {
		cfg.Query = adzunaDefaultQuery
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = adzunaDefaultPerPage
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = adzunaBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Adzuna{cfg: cfg, client: client, limiter: limiter}
}

func (a *Adzuna) Name() string { return string(job.SourceAdzuna) }

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
		LogoURL     string `json:"logo_url"`
	} `json:"company"`
	Location struct {
		Area        []string `json:"area"`
		DisplayName string   `json:"display_name"`
	} `json:"location"`
	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryCurrency string   `json:"salary_currency"`
	ContractType   string   `json:"contract_type"`
	Description    string   `json:"description"`
	RedirectURL    string   `json:"redirect_url"`
	Created        string   `json:"created"`
}

func (a *Adzuna) Fetch(ctx context.Context) ([]Posting, error) {
	if strings.TrimSpace(a.cfg.AppID) == "" || strings.TrimSpace(a.cfg.AppKey) == "" {
		return nil, ErrSourceNotConfigured
	}
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("app_id", a.cfg.AppID)
	q.Set("app_key", a.cfg.AppKey)
	q.Set("results_per_page", strconv.Itoa(a.cfg.PerPage))
	q.Set("what", a.cfg.Query)
	q.Set("content-type", "application/json")
	endpoint := fmt.Sprintf("%s/%s/search/1?%s", strings.TrimRight(a.cfg.BaseURL, "/"), url.PathEscape(a.cfg.Country), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "adzuna request")
	}
	for k, v := range httpHeaders() {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "adzuna fetch")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("adzuna: unexpected status %d", resp.StatusCode)
	}

	var body adzunaResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "adzuna decode")
	}

	out := make([]Posting, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, Posting{Source: a.Name(), Input: r.toInput()})
	}
	return out, nil
}

func (r adzunaJob) toInput() usecase.JobInput {
	city, district := "Unknown", "Unknown"
	if area := r.Location.Area; len(area) > 0 {
		city = pickNonEmpty(area[0], "Unknown")
		district = city
		if len(area) > 1 {
			district = pickNonEmpty(area[1], city)
		}
	}

	return usecase.JobInput{
		Title:        r.Title,
		Company:      r.Company.DisplayName,
		LogoURL:      r.Company.LogoURL,
		City:         city,
		District:     district,
		LocationText: pickNonEmpty(r.Location.DisplayName, city),
		SalaryMin:    positive(r.SalaryMin),
		SalaryMax:    positive(r.SalaryMax),
		Currency:     pickNonEmpty(r.SalaryCurrency, "USD"),
		Type:         mapContractType(r.ContractType),
		Description:  r.Description,
		Source:       job.SourceAdzuna,
		ExternalURL:  r.RedirectURL,
		PostedAt:     parsePosted(r.Created),
	}
}

func mapContractType(contractType string) job.Type {
	switch strings.ToLower(strings.TrimSpace(contractType)) {
	case "full_time":
		return job.TypeFullTime
	case "part_time":
		return job.TypePartTime
	case "contract":
		return job.TypeContract
	case "internship":
		return job.TypeInternship
	case "freelance":
		return job.TypeFreelance
	default:
		return job.TypeFullTime
	}
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

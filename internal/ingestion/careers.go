package ingestion

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"jobmarket/internal/domain/job"
	"jobmarket/internal/logger"
	"jobmarket/internal/usecase"

	"github.com/gocolly/colly/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// CareersTarget describes a static company careers page. ListURL may contain
// "%d" for the page number.
type CareersTarget struct {
	Company            string `mapstructure:"company"`
	ListURL            string `mapstructure:"list_url"`
	LinkSelector       string `mapstructure:"link_selector"`
	TitleSelector      string `mapstructure:"title_selector"`
	LocationSelector   string `mapstructure:"location_selector"`
	DetailBodySelector string `mapstructure:"detail_body_selector"`
	Location           string `mapstructure:"location"`
	Pages              int    `mapstructure:"pages"`
}

// LoadCareersTargets reads a `targets` list from a YAML or JSON file.
func LoadCareersTargets(path string) ([]CareersTarget, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read careers file %s", path)
	}
	var targets []CareersTarget
	if err := v.UnmarshalKey("targets", &targets); err != nil {
		return nil, errors.Wrap(err, "decode careers targets")
	}
	return targets, nil
}

type Careers struct {
	targets []CareersTarget
	workers int
	delay   time.Duration
}

func NewCareers(targets []CareersTarget, workers int) *Careers {
	if workers <= 0 {
		workers = 4
	}
	return &Careers{targets: targets, workers: workers, delay: 450 * time.Millisecond}
}

func (s *Careers) Name() string { return string(job.SourceScraper) }

type careersListItem struct {
	Link     string
	Title    string
	Location string
}

type careersDetail struct {
	Title       string
	Location    string
	Description string
	URL         string
}

func (s *Careers) Fetch(ctx context.Context) ([]Posting, error) {
	if len(s.targets) == 0 {
		return nil, ErrSourceNotConfigured
	}
	l := logger.Component("careers")

	var (
		mu  sync.Mutex
		out []Posting
	)
	for _, t := range s.targets {
		t = withSelectorDefaults(t)
		if t.Company == "" || t.ListURL == "" {
			continue
		}

		pool := NewWorkerPool(s.workers, s.workers*2)
		results := pool.Run(ctx)

		go func() {
			defer pool.Close()
			for page := 1; page <= max(1, t.Pages); page++ {
				listURL := t.ListURL
				if strings.Contains(listURL, "%d") {
					listURL = fmt.Sprintf(listURL, page)
				}
				items, err := s.scrapeListingPage(ctx, t, listURL)
				if err != nil {
					l.WithField("url", listURL).Warnf("careers list page: %v", err)
					continue
				}
				for _, it := range items {
					it := it
					_ = pool.Submit(func(ctx context.Context) error {
						d, err := s.scrapeDetailPage(ctx, t, it.Link)
						if err != nil {
							return errors.Wrapf(err, "detail %s", it.Link)
						}
						p := Posting{Source: s.Name(), Input: careersInput(t, it, d)}
						mu.Lock()
						out = append(out, p)
						mu.Unlock()
						return nil
					})
				}
			}
		}()

		for res := range results {
			if res.Err != nil {
				l.WithField("company", t.Company).Warn(res.Err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func withSelectorDefaults(t CareersTarget) CareersTarget {
	t.Company = strings.TrimSpace(t.Company)
	t.ListURL = strings.TrimSpace(t.ListURL)
	if strings.TrimSpace(t.LinkSelector) == "" {
		t.LinkSelector = "a"
	}
	if strings.TrimSpace(t.TitleSelector) == "" {
		t.TitleSelector = "title"
	}
	if strings.TrimSpace(t.DetailBodySelector) == "" {
		t.DetailBodySelector = "body"
	}
	return t
}

func careersInput(t CareersTarget, it careersListItem, d careersDetail) usecase.JobInput {
	location := pickNonEmpty(pickNonEmpty(d.Location, it.Location), t.Location)
	city, district := splitLocation(location)
	return usecase.JobInput{
		Title:        pickNonEmpty(d.Title, it.Title),
		Company:      t.Company,
		City:         city,
		District:     district,
		LocationText: pickNonEmpty(location, city),
		Description:  d.Description,
		Source:       job.SourceScraper,
		ExternalURL:  d.URL,
	}
}

func (s *Careers) collector(rawURL string) *colly.Collector {
	var c *colly.Collector
	if allowed := hostFromURL(rawURL); allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: s.delay, RandomDelay: 2 * s.delay})

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})
	return c
}

func (s *Careers) scrapeListingPage(ctx context.Context, target CareersTarget, listURL string) ([]careersListItem, error) {
	c := s.collector(listURL)

	items := make([]careersListItem, 0)
	seen := map[string]struct{}{}

	c.OnHTML(target.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := strings.TrimSpace(e.Request.AbsoluteURL(href))
		if abs == "" {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}

		title := strings.TrimSpace(e.Text)
		if target.TitleSelector != "title" {
			title = pickNonEmpty(e.DOM.Find(target.TitleSelector).Text(), title)
		}
		location := ""
		if strings.TrimSpace(target.LocationSelector) != "" {
			location = strings.TrimSpace(e.DOM.Find(target.LocationSelector).Text())
		}

		items = append(items, careersListItem{Link: abs, Title: title, Location: location})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}

func (s *Careers) scrapeDetailPage(ctx context.Context, target CareersTarget, jobURL string) (careersDetail, error) {
	c := s.collector(jobURL)

	out := careersDetail{URL: jobURL}
	var reqErr error

	c.OnHTML(target.TitleSelector, func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})

	if strings.TrimSpace(target.LocationSelector) != "" {
		c.OnHTML(target.LocationSelector, func(e *colly.HTMLElement) {
			if out.Location == "" {
				out.Location = strings.TrimSpace(e.Text)
			}
		})
	}

	c.OnHTML(target.DetailBodySelector, func(e *colly.HTMLElement) {
		out.Description = strings.Join(strings.Fields(e.Text), " ")
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return careersDetail{}, ctx.Err()
	}
	if err := c.Visit(jobURL); err != nil {
		return careersDetail{}, err
	}
	c.Wait()
	if reqErr != nil {
		return careersDetail{}, reqErr
	}
	return out, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

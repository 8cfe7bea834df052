package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobmarket/internal/domain/dedup"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/domain/skills"
	"jobmarket/internal/events"
	"jobmarket/internal/geo"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
	"jobmarket/internal/repository"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultCurrency = "USD"

type JobInput struct {
	Title        string
	Company      string
	LogoURL      string
	City         string
	District     string
	LocationText string
	Latitude     *float64
	Longitude    *float64
	SalaryMin    *float64
	SalaryMax    *float64
	Currency     string
	Type         job.Type
	Skills       []string
	Description  string
	Requirements []string
	Benefits     []string
	Source       job.Source
	ExternalURL  string
	PostedAt     *time.Time
}

// JobPatch holds the fields of an update; nil fields are left unchanged.
type JobPatch struct {
	Title        *string
	Company      *string
	LogoURL      *string
	City         *string
	District     *string
	LocationText *string
	Latitude     *float64
	Longitude    *float64
	SalaryMin    *float64
	SalaryMax    *float64
	Currency     *string
	Type         *job.Type
	Skills       *[]string
	Description  *string
	Requirements *[]string
	Benefits     *[]string
	Source       *job.Source
	ExternalURL  *string
	IsActive     *bool
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (job.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, patch JobPatch) (job.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

type Jobs struct {
	repo     repository.JobRepository
	taxonomy *skills.Taxonomy
	bus      EventBus.Bus
	log      *log.Entry
}

func NewJobs(repo repository.JobRepository, taxonomy *skills.Taxonomy, bus EventBus.Bus) *Jobs {
	if taxonomy == nil {
		taxonomy = skills.DefaultTaxonomy()
	}
	return &Jobs{repo: repo, taxonomy: taxonomy, bus: bus, log: logger.Component("jobs")}
}

// CreateJob stores a new posting. A posting whose fingerprint is already stored
// fails with ErrJobAlreadyExists.
func (u *Jobs) CreateJob(ctx context.Context, in JobInput) (job.Job, error) {
	j, err := u.buildJob(in)
	if err != nil {
		return job.Job{}, err
	}

	existing, err := u.repo.FindByFingerprint(ctx, j.Fingerprint)
	if err != nil {
		u.logDBError(err, "find by fingerprint")
		return job.Job{}, ErrInternal
	}
	if existing != nil {
		metrics.DuplicatesCounter.WithLabelValues(metrics.DuplicateExact).Inc()
		return job.Job{}, ErrJobAlreadyExists
	}

	if err := u.repo.Create(ctx, &j); err != nil {
		if errors.Is(err, repository.ErrDuplicateFingerprint) {
			metrics.DuplicatesCounter.WithLabelValues(metrics.DuplicateExact).Inc()
			return job.Job{}, ErrJobAlreadyExists
		}
		u.logDBError(err, "create job")
		return job.Job{}, ErrInternal
	}

	metrics.JobsCreatedCounter.WithLabelValues(string(j.Source)).Inc()
	u.log.WithFields(log.Fields{"job_id": j.ID, "source": j.Source, "skills": len(j.Skills)}).Info("job created")
	u.publish(events.JobCreatedTopic, events.JobCreated{Job: j})

	return j, nil
}

// buildJob normalizes the input before fingerprinting, so stored fingerprints
// cover the whitespace-collapsed title, company and location.
func (u *Jobs) buildJob(in JobInput) (job.Job, error) {
	norm := dedup.NormalizeJobData(dedup.JobData{
		Title:        in.Title,
		Company:      in.Company,
		LocationText: in.LocationText,
		Description:  in.Description,
	})

	j := job.Job{
		Title:        norm.Title,
		Company:      norm.Company,
		LogoURL:      strings.TrimSpace(in.LogoURL),
		City:         dedup.CollapseWhitespace(in.City),
		District:     dedup.CollapseWhitespace(in.District),
		LocationText: norm.LocationText,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Currency:     strings.ToUpper(strings.TrimSpace(in.Currency)),
		Type:         in.Type,
		Description:  norm.Description,
		Requirements: trimAll(in.Requirements),
		Benefits:     trimAll(in.Benefits),
		Source:       in.Source,
		ExternalURL:  strings.TrimSpace(in.ExternalURL),
	}
	if in.PostedAt != nil {
		j.PostedAt = in.PostedAt.UTC()
	}
	if j.Currency == "" {
		j.Currency = defaultCurrency
	}
	if j.Type == "" {
		j.Type = job.TypeFullTime
	}
	if j.Source == "" {
		j.Source = job.SourceManual
	}

	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}

	j.Skills = u.resolveSkills(in.Skills, j.Description)
	j.Fingerprint = dedup.ComputeFingerprint(j.Signature())
	fillCoordinates(&j)

	return j, nil
}

// UpdateJob applies patch. The fingerprint is recomputed only when an identity
// field changes, and skills are re-extracted when the description changes
// without explicit skills.
func (u *Jobs) UpdateJob(ctx context.Context, id uuid.UUID, patch JobPatch) (job.Job, error) {
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		u.logDBError(err, "get job")
		return job.Job{}, ErrInternal
	}

	next := applyPatch(current, patch)
	if err := validateJob(next); err != nil {
		return job.Job{}, err
	}

	identityChanged := next.Title != current.Title ||
		next.Company != current.Company ||
		next.LocationText != current.LocationText ||
		next.ExternalURL != current.ExternalURL

	fingerprintChanged := false
	if identityChanged {
		next.Fingerprint = dedup.ComputeFingerprint(next.Signature())
		fingerprintChanged = next.Fingerprint != current.Fingerprint
	}
	if fingerprintChanged {
		other, err := u.repo.FindByFingerprint(ctx, next.Fingerprint)
		if err != nil {
			u.logDBError(err, "find by fingerprint")
			return job.Job{}, ErrInternal
		}
		if other != nil && other.ID != next.ID {
			metrics.DuplicatesCounter.WithLabelValues(metrics.DuplicateExact).Inc()
			return job.Job{}, ErrJobAlreadyExists
		}
	}

	reextracted := false
	switch {
	case patch.Skills != nil:
		next.Skills = u.resolveSkills(*patch.Skills, next.Description)
	case next.Description != current.Description:
		next.Skills = u.taxonomy.Extract(next.Description)
		reextracted = true
	}

	if next.City != current.City && patch.Latitude == nil && patch.Longitude == nil {
		next.Latitude, next.Longitude = nil, nil
		fillCoordinates(&next)
	}

	if err := u.repo.Update(ctx, &next); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return job.Job{}, ErrJobNotFound
		case errors.Is(err, repository.ErrDuplicateFingerprint):
			metrics.DuplicatesCounter.WithLabelValues(metrics.DuplicateExact).Inc()
			return job.Job{}, ErrJobAlreadyExists
		}
		u.logDBError(err, "update job")
		return job.Job{}, ErrInternal
	}

	u.publish(events.JobUpdatedTopic, events.JobUpdated{
		Job:                next,
		FingerprintChanged: fingerprintChanged,
		SkillsReextracted:  reextracted,
	})
	return next, nil
}

func (u *Jobs) GetJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		u.logDBError(err, "get job")
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// DeleteJob deactivates the job; inactive jobs drop out of search and matching.
// The row keeps its fingerprint, so creating the same posting again conflicts
// until the job is reactivated.
func (u *Jobs) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		u.logDBError(err, "deactivate job")
		return ErrInternal
	}
	u.publish(events.JobDeletedTopic, events.JobDeleted{JobID: id.String()})
	return nil
}

func (u *Jobs) resolveSkills(explicit []string, description string) []string {
	if len(explicit) > 0 {
		return skills.NormalizeAll(explicit)
	}
	return u.taxonomy.Extract(description)
}

func (u *Jobs) publish(topic string, evt any) {
	if u.bus == nil {
		return
	}
	u.bus.Publish(topic, evt)
}

func (u *Jobs) logDBError(err error, op string) {
	u.log.WithFields(log.Fields{logger.ErrorTypeField: logger.ErrorTypeDB, "op": op}).Error(err)
}

func applyPatch(j job.Job, p JobPatch) job.Job {
	if p.Title != nil {
		j.Title = dedup.CollapseWhitespace(*p.Title)
	}
	if p.Company != nil {
		j.Company = dedup.CollapseWhitespace(*p.Company)
	}
	if p.LogoURL != nil {
		j.LogoURL = strings.TrimSpace(*p.LogoURL)
	}
	if p.City != nil {
		j.City = dedup.CollapseWhitespace(*p.City)
	}
	if p.District != nil {
		j.District = dedup.CollapseWhitespace(*p.District)
	}
	if p.LocationText != nil {
		j.LocationText = dedup.CollapseWhitespace(*p.LocationText)
	}
	if p.Latitude != nil {
		j.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		j.Longitude = p.Longitude
	}
	if p.SalaryMin != nil {
		j.SalaryMin = p.SalaryMin
	}
	if p.SalaryMax != nil {
		j.SalaryMax = p.SalaryMax
	}
	if p.Currency != nil {
		j.Currency = strings.ToUpper(strings.TrimSpace(*p.Currency))
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Description != nil {
		j.Description = dedup.CollapseWhitespace(*p.Description)
	}
	if p.Requirements != nil {
		j.Requirements = trimAll(*p.Requirements)
	}
	if p.Benefits != nil {
		j.Benefits = trimAll(*p.Benefits)
	}
	if p.Source != nil {
		j.Source = *p.Source
	}
	if p.ExternalURL != nil {
		j.ExternalURL = strings.TrimSpace(*p.ExternalURL)
	}
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
	return j
}

func validateJob(j job.Job) error {
	fields := map[string]string{}
	required := map[string]string{
		"title":        j.Title,
		"company":      j.Company,
		"city":         j.City,
		"district":     j.District,
		"locationText": j.LocationText,
	}
	for name, v := range required {
		if v == "" {
			fields[name] = "required"
		}
	}
	if !j.Type.Valid() {
		fields["type"] = "unknown job type"
	}
	if !j.Source.Valid() {
		fields["source"] = "unknown job source"
	}
	if j.SalaryMin != nil && *j.SalaryMin <= 0 {
		fields["salaryMin"] = "must be positive"
	}
	if j.SalaryMax != nil && *j.SalaryMax <= 0 {
		fields["salaryMax"] = "must be positive"
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		fields["salaryMax"] = "must not be below salaryMin"
	}
	if (j.Latitude == nil) != (j.Longitude == nil) {
		fields["latitude"] = "latitude and longitude go together"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func fillCoordinates(j *job.Job) {
	if j.HasCoordinates() {
		return
	}
	if p, ok := geo.CityCoordinates(j.City); ok {
		lat, lon := p.Latitude, p.Longitude
		j.Latitude, j.Longitude = &lat, &lon
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package dto

import (
	"time"

	"jobmarket/internal/domain/job"
	"jobmarket/internal/usecase"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title        string     `json:"title" validate:"required,max=300"`
	Company      string     `json:"company" validate:"required,max=200"`
	LogoURL      string     `json:"logoUrl" validate:"omitempty,url"`
	City         string     `json:"city" validate:"required"`
	District     string     `json:"district" validate:"required"`
	LocationText string     `json:"locationText"`
	Latitude     *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64   `json:"longitude" validate:"omitempty,longitude"`
	SalaryMin    *float64   `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax    *float64   `json:"salaryMax" validate:"omitempty,gte=0"`
	Currency     string     `json:"currency" validate:"omitempty,len=3"`
	Type         string     `json:"type" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	Skills       []string   `json:"skills" validate:"omitempty,dive,required"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Benefits     []string   `json:"benefits"`
	Source       string     `json:"source" validate:"omitempty,oneof=adzuna jooble manual scraper"`
	ExternalURL  string     `json:"externalUrl" validate:"omitempty,url"`
	PostedAt     *time.Time `json:"postedAt"`
}

func (r CreateJobRequest) ToInput() usecase.JobInput {
	return usecase.JobInput{
		Title:        r.Title,
		Company:      r.Company,
		LogoURL:      r.LogoURL,
		City:         r.City,
		District:     r.District,
		LocationText: r.LocationText,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Currency:     r.Currency,
		Type:         job.Type(r.Type),
		Skills:       r.Skills,
		Description:  r.Description,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		Source:       job.Source(r.Source),
		ExternalURL:  r.ExternalURL,
		PostedAt:     r.PostedAt,
	}
}

// UpdateJobRequest is a partial update; absent fields keep their value.
type UpdateJobRequest struct {
	Title        *string   `json:"title" validate:"omitempty,min=1,max=300"`
	Company      *string   `json:"company" validate:"omitempty,min=1,max=200"`
	LogoURL      *string   `json:"logoUrl" validate:"omitempty,url"`
	City         *string   `json:"city" validate:"omitempty,min=1"`
	District     *string   `json:"district" validate:"omitempty,min=1"`
	LocationText *string   `json:"locationText"`
	Latitude     *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64  `json:"longitude" validate:"omitempty,longitude"`
	SalaryMin    *float64  `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax    *float64  `json:"salaryMax" validate:"omitempty,gte=0"`
	Currency     *string   `json:"currency" validate:"omitempty,len=3"`
	Type         *string   `json:"type" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	Skills       *[]string `json:"skills"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Benefits     *[]string `json:"benefits"`
	Source       *string   `json:"source" validate:"omitempty,oneof=adzuna jooble manual scraper"`
	ExternalURL  *string   `json:"externalUrl" validate:"omitempty,url"`
	IsActive     *bool     `json:"isActive"`
}

func (r UpdateJobRequest) ToPatch() usecase.JobPatch {
	p := usecase.JobPatch{
		Title:        r.Title,
		Company:      r.Company,
		LogoURL:      r.LogoURL,
		City:         r.City,
		District:     r.District,
		LocationText: r.LocationText,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Currency:     r.Currency,
		Skills:       r.Skills,
		Description:  r.Description,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		ExternalURL:  r.ExternalURL,
		IsActive:     r.IsActive,
	}
	if r.Type != nil {
		t := job.Type(*r.Type)
		p.Type = &t
	}
	if r.Source != nil {
		s := job.Source(*r.Source)
		p.Source = &s
	}
	return p
}

type MatchJobsRequest struct {
	Skills   []string `json:"skills" validate:"required,min=1,dive,required"`
	City     string   `json:"city"`
	District string   `json:"district"`
	Page     int      `json:"page" validate:"gte=0"`
	Limit    int      `json:"limit" validate:"gte=0"`
}

type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	LocationText string    `json:"locationText"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	SalaryMin    *float64  `json:"salaryMin"`
	SalaryMax    *float64  `json:"salaryMax"`
	Currency     string    `json:"currency"`
	Type         string    `json:"type"`
	Skills       []string  `json:"skills"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Benefits     []string  `json:"benefits"`
	Source       string    `json:"source"`
	ExternalURL  string    `json:"externalUrl,omitempty"`
	IsActive     bool      `json:"isActive"`
	PostedAt     string    `json:"postedAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type NearbyJobResponse struct {
	JobResponse
	DistanceKm float64 `json:"distanceKm"`
}

type JobMatchResponse struct {
	JobResponse
	MatchScore float64 `json:"matchScore"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		LogoURL:      j.LogoURL,
		City:         j.City,
		District:     j.District,
		LocationText: j.LocationText,
		Latitude:     j.Latitude,
		Longitude:    j.Longitude,
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
		Currency:     j.Currency,
		Type:         string(j.Type),
		Skills:       nonNil(j.Skills),
		Description:  j.Description,
		Requirements: nonNil(j.Requirements),
		Benefits:     nonNil(j.Benefits),
		Source:       string(j.Source),
		ExternalURL:  j.ExternalURL,
		IsActive:     j.IsActive,
		PostedAt:     formatTime(j.PostedAt),
		UpdatedAt:    formatTime(j.UpdatedAt),
	}
}

func NewJobResponses(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}

func NewNearbyJobResponses(items []usecase.JobWithDistance) []NearbyJobResponse {
	out := make([]NearbyJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NearbyJobResponse{JobResponse: NewJobResponse(it.Job), DistanceKm: it.DistanceKm})
	}
	return out
}

func NewJobMatchResponses(items []usecase.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, JobMatchResponse{JobResponse: NewJobResponse(it.Job), MatchScore: it.MatchScore})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package job

import (
	"time"

	"jobmarket/internal/domain/dedup"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
	TypeFreelance  Type = "freelance"
)

var Types = []Type{TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeFreelance}

func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceAdzuna  Source = "adzuna"
	SourceJooble  Source = "jooble"
	SourceManual  Source = "manual"
	SourceScraper Source = "scraper"
)

var Sources = []Source{SourceAdzuna, SourceJooble, SourceManual, SourceScraper}

func (s Source) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

type Job struct {
	ID           uuid.UUID
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
	Type         Type
	Skills       []string
	Description  string
	Requirements []string
	Benefits     []string
	Source       Source
	ExternalURL  string
	Fingerprint  string
	IsActive     bool
	PostedAt     time.Time
	UpdatedAt    time.Time
}

func (j Job) Signature() dedup.Signature {
	return dedup.Signature{
		Title:        j.Title,
		Company:      j.Company,
		LocationText: j.LocationText,
		ExternalURL:  j.ExternalURL,
	}
}

func (j Job) HasCoordinates() bool {
	return j.Latitude != nil && j.Longitude != nil
}

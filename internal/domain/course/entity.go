package course

import (
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderYouTube  Provider = "youtube"
	ProviderUdemy    Provider = "udemy"
	ProviderCoursera Provider = "coursera"
	ProviderLinkedIn Provider = "linkedin"
	ProviderInternal Provider = "internal"
	ProviderOther    Provider = "other"
)

var Providers = []Provider{ProviderYouTube, ProviderUdemy, ProviderCoursera, ProviderLinkedIn, ProviderInternal, ProviderOther}

func (p Provider) Valid() bool {
	for _, v := range Providers {
		if p == v {
			return true
		}
	}
	return false
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

type Course struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Provider        Provider
	URL             string
	DurationMinutes *int
	Level           Level
	Tags            []string
	ThumbnailURL    string
	Instructor      string
	Rating          *float64
	Price           *float64
	Currency        string
	IsFree          bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

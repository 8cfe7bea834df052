package dto

import (
	"jobmarket/internal/repository"

	"github.com/google/uuid"
)

type IngestionRunResponse struct {
	ID              uuid.UUID `json:"id"`
	Source          string    `json:"source"`
	StartedAt       string    `json:"startedAt"`
	FinishedAt      string    `json:"finishedAt,omitempty"`
	Fetched         int       `json:"fetched"`
	Ingested        int       `json:"ingested"`
	Duplicates      int       `json:"duplicates"`
	FuzzyDuplicates int       `json:"fuzzyDuplicates"`
	Failed          int       `json:"failed"`
	Error           string    `json:"error,omitempty"`
}

func NewIngestionRunResponses(runs []repository.IngestionRun) []IngestionRunResponse {
	out := make([]IngestionRunResponse, 0, len(runs))
	for _, r := range runs {
		finished := ""
		if r.FinishedAt != nil {
			finished = formatTime(*r.FinishedAt)
		}
		out = append(out, IngestionRunResponse{
			ID:              r.ID,
			Source:          r.Source,
			StartedAt:       formatTime(r.StartedAt),
			FinishedAt:      finished,
			Fetched:         r.Fetched,
			Ingested:        r.Ingested,
			Duplicates:      r.Duplicates,
			FuzzyDuplicates: r.FuzzyDuplicates,
			Failed:          r.Failed,
			Error:           r.Error,
		})
	}
	return out
}

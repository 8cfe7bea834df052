package handler

import (
	"context"
	"errors"

	"jobmarket/internal/delivery/http/dto"
	"jobmarket/internal/delivery/http/middleware"
	"jobmarket/internal/ingestion"
	"jobmarket/internal/pkg/response"
	"jobmarket/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type IngestionRunner interface {
	Run(ctx context.Context) ([]ingestion.Report, error)
	RecentRuns(ctx context.Context, limit int) ([]repository.IngestionRun, error)
}

type IngestionHandler struct {
	runner IngestionRunner
}

func NewIngestionHandler(runner IngestionRunner) *IngestionHandler {
	return &IngestionHandler{runner: runner}
}

func (h *IngestionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/run", h.HandleRun)
	r.Get("/runs", h.HandleRuns)
}

func (h *IngestionHandler) HandleRun(c fiber.Ctx) error {
	reports, err := h.runner.Run(c.Context())
	switch {
	case err == nil:
	case errors.Is(err, ingestion.ErrRunInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Ingestion already running", nil, err)
	case errors.Is(err, ingestion.ErrSourceNotConfigured):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "No ingestion sources configured", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "Ingestion completed", reports)
}

func (h *IngestionHandler) HandleRuns(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil || limit <= 0 || limit > 100 {
		return badQuery("limit", err)
	}
	runs, err := h.runner.RecentRuns(c.Context(), limit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewIngestionRunResponses(runs))
}

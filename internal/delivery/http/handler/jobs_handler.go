package handler

import (
	"strings"

	"jobmarket/internal/delivery/http/dto"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/pkg/pagination"
	"jobmarket/internal/pkg/response"
	"jobmarket/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	jobs   usecase.JobUsecase
	search usecase.JobSearchUsecase
}

func NewJobsHandler(jobs usecase.JobUsecase, search usecase.JobSearchUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, search: search}
}

// RegisterRoutes mounts the job routes; write guards the mutating ones.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, write fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleSearchJobs)
	r.Get("/search", h.HandleSearchJobs)
	r.Get("/nearby", h.HandleNearbyJobs)
	r.Get("/stats", h.HandleStats)
	r.Get("/duplicates", h.HandleDuplicates)
	r.Post("/match", h.HandleMatchJobs)
	r.Get("/:id", h.HandleGetJob)

	r.Post("/", write, h.HandleCreateJob)
	r.Patch("/:id", write, h.HandleUpdateJob)
	r.Delete("/:id", write, h.HandleDeleteJob)
}

type pageResponse[T any] struct {
	Data       []T             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

func mapPage[S, T any](p pagination.Page[S], conv func([]S) []T) pageResponse[T] {
	return pageResponse[T]{Data: conv(p.Data), Pagination: p.Pagination}
}

func (h *JobsHandler) HandleSearchJobs(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return badQuery("page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", pagination.DefaultLimit)
	if err != nil {
		return badQuery("limit", err)
	}
	salaryMin, err := parseQueryFloat(c, "salaryMin")
	if err != nil {
		return badQuery("salaryMin", err)
	}
	salaryMax, err := parseQueryFloat(c, "salaryMax")
	if err != nil {
		return badQuery("salaryMax", err)
	}

	params := usecase.JobSearchParams{
		Query:     strings.TrimSpace(c.Query("q")),
		City:      strings.TrimSpace(c.Query("city")),
		District:  strings.TrimSpace(c.Query("district")),
		Type:      job.Type(strings.TrimSpace(c.Query("type"))),
		Skills:    parseSkillsQuery(c.Query("skills")),
		SalaryMin: salaryMin,
		SalaryMax: salaryMax,
		Page:      page,
		Limit:     limit,
	}
	if params.Type != "" && !params.Type.Valid() {
		return badQuery("type", nil)
	}

	res, err := h.search.SearchJobs(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapPage(res, dto.NewJobResponses))
}

func (h *JobsHandler) HandleNearbyJobs(c fiber.Ctx) error {
	lat, err := parseQueryFloat(c, "lat")
	if err != nil || lat == nil {
		return badQuery("lat", err)
	}
	lng, err := parseQueryFloat(c, "lng")
	if err != nil || lng == nil {
		return badQuery("lng", err)
	}
	radius, err := parseQueryFloat(c, "radius")
	if err != nil {
		return badQuery("radius", err)
	}
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return badQuery("page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", pagination.DefaultLimit)
	if err != nil {
		return badQuery("limit", err)
	}

	params := usecase.NearbyParams{Latitude: *lat, Longitude: *lng, Page: page, Limit: limit}
	if radius != nil {
		params.RadiusKm = *radius
	}

	res, err := h.search.NearbyJobs(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapPage(res, dto.NewNearbyJobResponses))
}

func (h *JobsHandler) HandleMatchJobs(c fiber.Ctx) error {
	var req dto.MatchJobsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.search.MatchJobs(c.Context(), usecase.MatchParams{
		Skills:   req.Skills,
		City:     strings.TrimSpace(req.City),
		District: strings.TrimSpace(req.District),
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapPage(res, dto.NewJobMatchResponses))
}

func (h *JobsHandler) HandleStats(c fiber.Ctx) error {
	stats, err := h.search.Stats(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *JobsHandler) HandleDuplicates(c fiber.Ctx) error {
	groups, err := h.search.DuplicateGroups(c.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([][]dto.JobResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.NewJobResponses(g))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	j, err := h.jobs.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	j, err := h.jobs.CreateJob(c.Context(), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleUpdateJob(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	j, err := h.jobs.UpdateJob(c.Context(), id, req.ToPatch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleDeleteJob(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.jobs.DeleteJob(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

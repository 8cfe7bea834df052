package handler

import (
	"strings"

	"jobmarket/internal/delivery/http/dto"
	"jobmarket/internal/domain/course"
	"jobmarket/internal/pkg/pagination"
	"jobmarket/internal/pkg/response"
	"jobmarket/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CoursesHandler struct {
	uc usecase.CourseUsecase
}

func NewCoursesHandler(uc usecase.CourseUsecase) *CoursesHandler {
	return &CoursesHandler{uc: uc}
}

func (h *CoursesHandler) RegisterRoutes(r fiber.Router, write fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleListCourses)
	r.Post("/recommend", h.HandleRecommend)
	r.Get("/:id", h.HandleGetCourse)
	r.Post("/", write, h.HandleCreateCourse)
}

func (h *CoursesHandler) HandleListCourses(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return badQuery("page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", pagination.DefaultLimit)
	if err != nil {
		return badQuery("limit", err)
	}

	res, err := h.uc.ListCourses(c.Context(), usecase.CourseListParams{
		Provider: course.Provider(strings.TrimSpace(c.Query("provider"))),
		Level:    course.Level(strings.TrimSpace(c.Query("level"))),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapPage(res, dto.NewCourseResponses))
}

func (h *CoursesHandler) HandleGetCourse(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetCourse(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponse(out))
}

func (h *CoursesHandler) HandleCreateCourse(c fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	out, err := h.uc.CreateCourse(c.Context(), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Course created", dto.NewCourseResponse(out))
}

func (h *CoursesHandler) HandleRecommend(c fiber.Ctx) error {
	var req dto.RecommendCoursesRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	recs, err := h.uc.RecommendCourses(c.Context(), req.Skills, req.Limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseRecommendationResponses(recs))
}

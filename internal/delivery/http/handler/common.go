package handler

import (
	"errors"
	"strconv"
	"strings"

	"jobmarket/internal/delivery/http/dto"
	"jobmarket/internal/delivery/http/middleware"
	"jobmarket/internal/pkg/response"
	"jobmarket/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseQueryFloat(c fiber.Ctx, key string) (*float64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseSkillsQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func badQuery(key string, err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", map[string]string{key: "invalid"}, err)
}

// bindBody decodes the JSON body into req and runs its validation tags.
func bindBody(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := dto.Validate(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, nil)
	}
	return nil
}

// mapUsecaseError turns usecase sentinels into HTTP errors.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, usecase.ErrJobNotFound.Error(), nil, err)
	case errors.Is(err, usecase.ErrCourseNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, usecase.ErrCourseNotFound.Error(), nil, err)
	case errors.Is(err, usecase.ErrJobAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, usecase.ErrJobAlreadyExists.Error(), nil, err)
	case errors.Is(err, usecase.ErrCourseAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, usecase.ErrCourseAlreadyExists.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

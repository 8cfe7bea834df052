package handler

import (
	"net/url"

	"jobmarket/internal/delivery/http/dto"
	"jobmarket/internal/pkg/response"
	"jobmarket/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/extract", h.HandleExtract)
	r.Get("/taxonomy", h.HandleTaxonomy)
	r.Get("/:skill/category", h.HandleCategory)
	r.Get("/:skill/related", h.HandleRelated)
}

func (h *SkillHandler) HandleExtract(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	out, err := h.uc.Extract(req.Text)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillHandler) HandleTaxonomy(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Taxonomy())
}

func (h *SkillHandler) HandleCategory(c fiber.Ctx) error {
	out, err := h.uc.Category(skillParam(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillHandler) HandleRelated(c fiber.Ctx) error {
	out, err := h.uc.Related(skillParam(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// skillParam decodes names such as "c%2B%2B" or "node.js".
func skillParam(c fiber.Ctx) string {
	raw := c.Params("skill")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

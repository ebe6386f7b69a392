package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/repfit/repfit-api/internal/domain"
)

// TemplateHandler exposes plan template CRUD.
// Reads are member-level, writes are admin only (middleware check outside).
type TemplateHandler struct {
	templateRepo domain.PlanTemplateRepository
}

func NewTemplateHandler(templateRepo domain.PlanTemplateRepository) *TemplateHandler {
	return &TemplateHandler{
		templateRepo: templateRepo,
	}
}

// List handles GET /v1/templates
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.templateRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(templates)
}

// Get handles GET /v1/templates/:id
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	template, err := h.templateRepo.GetByID(c.Context(), id)
	if err != nil {
		if err == domain.ErrTemplateNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(template)
}

// Create handles POST /v1/templates
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req domain.PlanTemplate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	if req.NumWeeks > 0 && len(req.Weeks) > req.NumWeeks {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "More weeks defined than num_weeks"})
	}
	if err := h.templateRepo.Create(c.Context(), &req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// Update handles PUT /v1/templates/:id
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var req domain.PlanTemplate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = id
	if err := h.templateRepo.Update(c.Context(), &req); err != nil {
		if err == domain.ErrTemplateNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(req)
}

// Delete handles DELETE /v1/templates/:id
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.templateRepo.Delete(c.Context(), id); err != nil {
		if err == domain.ErrTemplateNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

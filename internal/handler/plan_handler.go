package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/repfit/repfit-api/internal/domain"
	"github.com/repfit/repfit-api/internal/middleware"
)

// PlanHandler exposes the acting user's workout plan and its dated items
type PlanHandler struct {
	planRepo domain.PlanRepository
	itemRepo domain.PlanItemRepository
}

func NewPlanHandler(planRepo domain.PlanRepository, itemRepo domain.PlanItemRepository) *PlanHandler {
	return &PlanHandler{
		planRepo: planRepo,
		itemRepo: itemRepo,
	}
}

func actingUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	return userID
}

// GetActive handles GET /v1/me/plan
func (h *PlanHandler) GetActive(c *fiber.Ctx) error {
	userID := actingUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	plan, err := h.planRepo.GetActiveByUser(c.UserContext(), userID)
	if err != nil {
		if err == domain.ErrPlanNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plan)
}

// Create handles POST /v1/me/plan
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	userID := actingUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Name == "" {
		req.Name = "My Plan"
	}

	// One active plan per user
	if _, err := h.planRepo.GetActiveByUser(c.UserContext(), userID); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An active plan already exists"})
	}

	plan := &domain.WorkoutPlan{
		UserID: userID,
		Name:   req.Name,
		Active: true,
	}
	if err := h.planRepo.Create(c.UserContext(), plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// ListItems handles GET /v1/me/plan/items?from=&to=
func (h *PlanHandler) ListItems(c *fiber.Ctx) error {
	userID := actingUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	plan, err := h.planRepo.GetActiveByUser(c.UserContext(), userID)
	if err != nil {
		if err == domain.ErrPlanNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	from := c.Query("from")
	to := c.Query("to")

	var items []*domain.PlanItem
	if from != "" && to != "" {
		items, err = h.itemRepo.ListByPlanAndRange(c.UserContext(), plan.ID, from, to)
	} else {
		items, err = h.itemRepo.ListByPlan(c.UserContext(), plan.ID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"plan_id": plan.ID,
		"items":   items,
	})
}

// CompleteItem handles PATCH /v1/me/plan/items/:id/complete
func (h *PlanHandler) CompleteItem(c *fiber.Ctx) error {
	userID := actingUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	id := c.Params("id")
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan, err := h.planRepo.GetActiveByUser(c.UserContext(), userID)
	if err != nil {
		if err == domain.ErrPlanNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.itemRepo.SetCompleted(c.UserContext(), plan.ID, id, req.Completed); err != nil {
		switch err {
		case domain.ErrPlanItemNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case domain.ErrInvalidID:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "updated"})
}

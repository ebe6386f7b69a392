package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/repfit/repfit-api/internal/domain"
)

// WorkoutHandler exposes the workout catalog.
// Reads are public, writes are admin only (middleware check outside).
type WorkoutHandler struct {
	workoutRepo domain.WorkoutRepository
}

func NewWorkoutHandler(workoutRepo domain.WorkoutRepository) *WorkoutHandler {
	return &WorkoutHandler{
		workoutRepo: workoutRepo,
	}
}

// List handles GET /v1/workouts
func (h *WorkoutHandler) List(c *fiber.Ctx) error {
	filter := make(map[string]interface{})
	if name := c.Query("name"); name != "" {
		filter["name"] = name
	}
	if muscleGroup := c.Query("muscle_group"); muscleGroup != "" {
		filter["muscle_group"] = muscleGroup
	}

	workouts, err := h.workoutRepo.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(workouts)
}

// Get handles GET /v1/workouts/:id
func (h *WorkoutHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	workout, err := h.workoutRepo.GetByID(c.Context(), id)
	if err != nil {
		if err == domain.ErrWorkoutNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(workout)
}

// Create handles POST /v1/workouts
func (h *WorkoutHandler) Create(c *fiber.Ctx) error {
	var req domain.Workout
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	if err := h.workoutRepo.Create(c.Context(), &req); err != nil {
		if err == domain.ErrDuplicateWorkout {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// Update handles PUT /v1/workouts/:id
func (h *WorkoutHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var req domain.Workout
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = id
	if err := h.workoutRepo.Update(c.Context(), &req); err != nil {
		if err == domain.ErrWorkoutNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(req)
}

// Delete handles DELETE /v1/workouts/:id
func (h *WorkoutHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.workoutRepo.Delete(c.Context(), id); err != nil {
		if err == domain.ErrWorkoutNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/repfit/repfit-api/internal/domain"
	"github.com/repfit/repfit-api/internal/service"
	"github.com/repfit/repfit-api/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ImportHandler exposes template import and its dry-run preview
type ImportHandler struct {
	importService  *service.ImportService
	previewService *service.PreviewService
	templateRepo   domain.PlanTemplateRepository
}

func NewImportHandler(
	importService *service.ImportService,
	previewService *service.PreviewService,
	templateRepo domain.PlanTemplateRepository,
) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		previewService: previewService,
		templateRepo:   templateRepo,
	}
}

type importRequest struct {
	TemplateID    string   `json:"template_id"`
	StartDate     string   `json:"start_date"`     // YYYY-MM-DD
	Days          []string `json:"days"`           // weekday names, e.g. ["monday","thursday"]
	ClearExisting bool     `json:"clear_existing"` // wipe current plan items first
}

func (h *ImportHandler) parseRequest(c *fiber.Ctx) (*importRequest, time.Time, domain.WeekdaySet, error) {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, time.Time{}, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}

	start := time.Now().UTC()
	if req.StartDate != "" {
		parsed, err := time.Parse(domain.DateLayout, req.StartDate)
		if err != nil {
			return nil, time.Time{}, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		}
		start = parsed
	}

	days, err := domain.ParseWeekdaySet(req.Days)
	if err != nil {
		return nil, time.Time{}, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return &req, start, days, nil
}

// Import handles POST /v1/me/plan/import.
// Outcomes are reported in the body, not the status code: a partial or even
// fully failed import is still a handled response, not a transport error.
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	req, start, days, err := h.parseRequest(c)
	if err != nil {
		fiberErr := err.(*fiber.Error)
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	// A missing template reference flows through as a nil template so the
	// outcome surfaces in the result body like every other failure
	var tpl *domain.PlanTemplate
	if req.TemplateID != "" {
		tpl, err = h.templateRepo.GetByID(c.UserContext(), req.TemplateID)
		if err != nil {
			if err == domain.ErrTemplateNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	telemetry.AddSpanEvent(c, "plan.import",
		attribute.String("template_id", req.TemplateID),
		attribute.Bool("clear_existing", req.ClearExisting),
	)

	result := h.importService.ImportTemplate(c.UserContext(), tpl, start, days, req.ClearExisting)

	telemetry.SetSpanAttribute(c, "import.status", string(result.Status))

	return c.JSON(fiber.Map{
		"success":       result.Success(),
		"status":        result.Status,
		"items_created": result.ItemsCreated,
		"error":         result.Error,
	})
}

// Preview handles POST /v1/me/plan/import/preview
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	req, start, days, err := h.parseRequest(c)
	if err != nil {
		fiberErr := err.(*fiber.Error)
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	if req.TemplateID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "template_id is required"})
	}

	tpl, err := h.templateRepo.GetByID(c.UserContext(), req.TemplateID)
	if err != nil {
		if err == domain.ErrTemplateNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.previewService.PreviewTemplate(c.UserContext(), tpl, start, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"template_id": req.TemplateID,
		"count":       len(items),
		"items":       items,
	})
}

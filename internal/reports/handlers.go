package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/validation"
)

/* ================================ DTOs ================================== */

type FileReportRequest struct {
	Type     string `json:"type" validate:"required,oneof=user post message"`
	TargetID string `json:"target_id" validate:"required"`
	Reason   string `json:"reason" validate:"required,max=1000"`
	// Required when reporting a message, so the target can be located.
	ChatID string `json:"chat_id" validate:"omitempty"`
}

/* ============================== Handler ================================= */

type Handler struct{ store store.Store }

func NewHandler(st store.Store) *Handler { return &Handler{store: st} }

// @Summary      File a report
// @Description  Opens a moderation ticket against a user, post, or message; the target is snapshotted
// @Tags         reports
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  FileReportRequest  true  "Report payload"
// @Success      201  {object}  models.Report
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse  "target not found"
// @Router       /reports [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in FileReportRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	if in.Type == string(models.ReportMessage) && in.ChatID == "" {
		return validation.Respond(c, map[string][]string{
			"chat_id": {"This field is required for message reports"},
		})
	}

	r, err := h.store.FileReport(c.Context(), store.NewReport{
		ReporterID: auth.MustUserID(c),
		Type:       models.ReportType(in.Type),
		TargetID:   in.TargetID,
		Reason:     in.Reason,
		ChatID:     in.ChatID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// @Summary      List reports
// @Description  All moderation tickets, newest first
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Report
// @Router       /reports [get]
func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.store.ListReports(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// @Summary      Resolve a report
// @Description  One-way transition; resolving twice is a no-op
// @Tags         reports
// @Security     BearerAuth
// @Param        id  path  string  true  "report id"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /reports/{id}/resolve [post]
func (h *Handler) Resolve(c *fiber.Ctx) error {
	if err := h.store.ResolveReport(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

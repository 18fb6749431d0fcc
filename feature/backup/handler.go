package backup

import (
	"errors"
	"fmt"

	"barkeep/feature/catalog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for backup export and import.
type Handler struct {
	service *Service
	offsite *Offsite
}

// NewHandler creates a new HTTP handler. offsite may be nil when no
// storage provider is configured.
func NewHandler(service *Service, offsite *Offsite) *Handler {
	return &Handler{service: service, offsite: offsite}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backup")
	group.Get("/export", h.HandleExport)
	group.Post("/import", h.HandleImport)

	if h.offsite != nil {
		group.Post("/push", h.HandlePush)
		group.Post("/pull", h.HandlePull)
		group.Get("/offsite", h.HandleListOffsite)
	}
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrMalformedImport):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrConfirmationRequired):
		return c.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func confirmed(c *fiber.Ctx) bool {
	return c.Query("confirm") == "true"
}

// HandleExport downloads the catalog as a dated backup document.
// @Summary Export Backup
// @Description Download both catalog collections as a JSON backup document.
// @Tags backup
// @Produce json
// @Success 200 {object} backup.Document
// @Router /backup/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	filename, data, err := h.service.Export()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// HandleImport applies an uploaded backup document to the catalog.
// @Summary Import Backup
// @Description Merge an uploaded backup into the catalog, or overwrite it.
// @Tags backup
// @Accept json
// @Produce json
// @Param mode query string false "merge (default) or overwrite"
// @Param confirm query bool false "Must be true for overwrite mode"
// @Param document body backup.Document true "Backup document"
// @Success 200 {object} backup.MergeSummary
// @Failure 400 {object} map[string]string "Malformed document"
// @Failure 428 {object} map[string]string "Confirmation required"
// @Router /backup/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	mode, err := ParseMode(c.Query("mode"))
	if err != nil {
		return respondError(c, err)
	}
	// Overwrite discards the current catalog, so it gets the same gate as
	// the other destructive operations.
	if mode == ModeOverwrite && !confirmed(c) {
		return respondError(c, catalog.ErrConfirmationRequired)
	}

	summary, err := h.service.Import(c.Body(), mode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// HandlePush copies the current catalog to the offsite bucket.
// @Summary Push Backup Offsite
// @Description Export the catalog and upload it to the configured bucket.
// @Tags backup
// @Produce json
// @Success 200 {object} map[string]string
// @Router /backup/push [post]
func (h *Handler) HandlePush(c *fiber.Ctx) error {
	filename, data, err := h.service.Export()
	if err != nil {
		return respondError(c, err)
	}
	if err := h.offsite.Push(c.Context(), filename, data); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"filename": filename})
}

// HandlePull restores the catalog from an offsite backup document.
// @Summary Pull Backup From Offsite
// @Description Download a stored backup and overwrite the catalog with it.
// @Tags backup
// @Produce json
// @Param filename query string false "Backup filename; latest when omitted"
// @Param confirm query bool true "Must be true to confirm the destructive action"
// @Success 200 {object} backup.MergeSummary
// @Failure 428 {object} map[string]string "Confirmation required"
// @Router /backup/pull [post]
func (h *Handler) HandlePull(c *fiber.Ctx) error {
	if !confirmed(c) {
		return respondError(c, catalog.ErrConfirmationRequired)
	}

	filename, data, err := h.offsite.Pull(c.Context(), c.Query("filename"))
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.service.Import(data, ModeOverwrite)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"filename": filename, "summary": summary})
}

// HandleListOffsite lists the stored offsite backups.
// @Summary List Offsite Backups
// @Description List the backup documents stored in the configured bucket.
// @Tags backup
// @Produce json
// @Success 200 {array} string
// @Router /backup/offsite [get]
func (h *Handler) HandleListOffsite(c *fiber.Ctx) error {
	names, err := h.offsite.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

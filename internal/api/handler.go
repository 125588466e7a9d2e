package api

import (
	"idleview/internal/models"
	"idleview/internal/services"
	"idleview/internal/settings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	store  *settings.Store
	photos *services.PhotoState
	logger *zap.Logger
}

func NewHandler(store *settings.Store, photos *services.PhotoState, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		photos: photos,
		logger: logger,
	}
}

// GetSettings handles GET /api/settings
func (h *Handler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.store.Get())
}

// UpdateSettings handles PUT /api/settings
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	doc, err := settings.Decode(c.Body())
	if err != nil {
		h.logger.Error("Failed to decode settings document", zap.Error(err))
		return internalError(c, err)
	}

	if err := h.store.Replace(doc); err != nil {
		h.logger.Error("Failed to update settings", zap.Error(err))
		return internalError(c, err)
	}

	h.logger.Info("Settings updated")
	return c.JSON(doc)
}

// PatchSettings handles PATCH /api/settings
func (h *Handler) PatchSettings(c *fiber.Ctx) error {
	doc, err := h.store.MergePatch(c.Body())
	if err != nil {
		h.logger.Error("Failed to patch settings", zap.Error(err))
		return internalError(c, err)
	}

	h.logger.Info("Settings partially updated")
	return c.JSON(doc)
}

// ResetSettings handles POST /api/settings/reset
func (h *Handler) ResetSettings(c *fiber.Ctx) error {
	doc, err := h.store.Reset()
	if err != nil {
		h.logger.Error("Failed to reset settings", zap.Error(err))
		return internalError(c, err)
	}

	h.logger.Info("Settings reset to defaults")
	return c.JSON(doc)
}

// GetHealth handles GET /api/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "idleview-api",
	})
}

// GetCurrentPhoto handles GET /api/photo/current
func (h *Handler) GetCurrentPhoto(c *fiber.Ctx) error {
	return c.JSON(h.photos.Current())
}

// UpdateCurrentPhoto handles POST /api/photo/current
func (h *Handler) UpdateCurrentPhoto(c *fiber.Ctx) error {
	var photo models.CurrentPhoto
	if err := c.BodyParser(&photo); err != nil {
		return internalError(c, err)
	}

	h.photos.Set(photo, "")
	h.logger.Info("Current photo updated",
		zap.String("url", photo.URL),
		zap.String("author", photo.Author))
	return c.JSON(photo)
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

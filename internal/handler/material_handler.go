package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/utils"
)

// MaterialHandler exposes course material endpoints.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler constructs the handler.
func NewMaterialHandler(svc service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: svc,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register attaches the read-only material routes available to every role.
func (h *MaterialHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterEditor attaches the mutating material routes.
func (h *MaterialHandler) RegisterEditor(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *MaterialHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	teacherID, err := parseQueryInt(c, "teacher_id")
	if err != nil || teacherID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	response, err := h.service.List(c.Context(), dto.MaterialListRequest{
		Page:      page,
		PageSize:  pageSize,
		TeacherID: uint(teacherID),
		Subject:   c.Query("subject"),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list materials")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list materials")
	}

	return utils.SendSuccess(c, "materials", response)
}

func (h *MaterialHandler) create(c *fiber.Ctx) error {
	var payload dto.MaterialCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create material")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create material")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material created", response)
}

func (h *MaterialHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.MaterialUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		h.logger.Error().Err(err).Msg("failed to update material")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update material")
	}

	return utils.SendSuccess(c, "material updated", response)
}

func (h *MaterialHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete material")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete material")
	}

	return utils.SendSuccess(c, "material deleted", nil)
}

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

// LibraryHandler exposes e-library catalog endpoints.
type LibraryHandler struct {
	service service.LibraryService
	logger  zerolog.Logger
}

// NewLibraryHandler constructs the handler.
func NewLibraryHandler(svc service.LibraryService, logger zerolog.Logger) *LibraryHandler {
	return &LibraryHandler{
		service: svc,
		logger:  logger.With().Str("component", "library_handler").Logger(),
	}
}

// Register attaches the read-only catalog routes available to every role.
func (h *LibraryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin attaches the mutating catalog routes.
func (h *LibraryHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *LibraryHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	response, err := h.service.List(c.Context(), dto.LibraryBookListRequest{
		Page:          page,
		PageSize:      pageSize,
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		AvailableOnly: c.QueryBool("available"),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list library books")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list library books")
	}

	return utils.SendSuccess(c, "library books", response)
}

func (h *LibraryHandler) create(c *fiber.Ctx) error {
	var payload dto.LibraryBookCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create library book")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create library book")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "library book created", response)
}

func (h *LibraryHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.LibraryBookUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "library book not found")
		}
		h.logger.Error().Err(err).Msg("failed to update library book")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update library book")
	}

	return utils.SendSuccess(c, "library book updated", response)
}

func (h *LibraryHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "library book not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete library book")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete library book")
	}

	return utils.SendSuccess(c, "library book deleted", nil)
}

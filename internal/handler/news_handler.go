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

// NewsHandler exposes campus announcement endpoints.
type NewsHandler struct {
	service service.NewsService
	logger  zerolog.Logger
}

// NewNewsHandler constructs the handler.
func NewNewsHandler(svc service.NewsService, logger zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		service: svc,
		logger:  logger.With().Str("component", "news_handler").Logger(),
	}
}

// Register attaches the read-only news routes available to every role.
func (h *NewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterEditor attaches the mutating news routes.
func (h *NewsHandler) RegisterEditor(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *NewsHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	authorID, err := parseQueryInt(c, "author_id")
	if err != nil || authorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid author id")
	}

	response, err := h.service.List(c.Context(), dto.NewsListRequest{
		Page:          page,
		PageSize:      pageSize,
		AuthorID:      uint(authorID),
		PublishedOnly: c.QueryBool("published"),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list news")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list news")
	}

	return utils.SendSuccess(c, "news", response)
}

func (h *NewsHandler) create(c *fiber.Ctx) error {
	var payload dto.NewsCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create news post")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create news post")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "news post created", response)
}

func (h *NewsHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.NewsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "news post not found")
		}
		h.logger.Error().Err(err).Msg("failed to update news post")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update news post")
	}

	return utils.SendSuccess(c, "news post updated", response)
}

func (h *NewsHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "news post not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete news post")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete news post")
	}

	return utils.SendSuccess(c, "news post deleted", nil)
}

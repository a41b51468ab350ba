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

// ShopHandler exposes campus shop catalog endpoints.
type ShopHandler struct {
	service service.ShopService
	logger  zerolog.Logger
}

// NewShopHandler constructs the handler.
func NewShopHandler(svc service.ShopService, logger zerolog.Logger) *ShopHandler {
	return &ShopHandler{
		service: svc,
		logger:  logger.With().Str("component", "shop_handler").Logger(),
	}
}

// Register attaches the read-only catalog routes available to every role.
func (h *ShopHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin attaches the mutating catalog routes.
func (h *ShopHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ShopHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	response, err := h.service.List(c.Context(), dto.ShopProductListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		InStock:  c.QueryBool("in_stock"),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list products")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list products")
	}

	return utils.SendSuccess(c, "products", response)
}

func (h *ShopHandler) create(c *fiber.Ctx) error {
	var payload dto.ShopProductCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create product")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "product created", response)
}

func (h *ShopHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.ShopProductUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error().Err(err).Msg("failed to update product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update product")
	}

	return utils.SendSuccess(c, "product updated", response)
}

func (h *ShopHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete product")
	}

	return utils.SendSuccess(c, "product deleted", nil)
}

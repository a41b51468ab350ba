package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/utils"
)

// The admin viewer shows 20 rows per page with previous/next navigation.
const auditViewerPageSize = 20

// AdminAuditHandler exposes the audit log viewer endpoints.
type AdminAuditHandler struct {
	service service.AuditQueryService
	logger  zerolog.Logger
}

// NewAdminAuditHandler constructs the handler.
func NewAdminAuditHandler(svc service.AuditQueryService, logger zerolog.Logger) *AdminAuditHandler {
	return &AdminAuditHandler{
		service: svc,
		logger:  logger.With().Str("component", "admin_audit_handler").Logger(),
	}
}

// Register attaches audit viewer routes to the router group.
func (h *AdminAuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/filters", h.filters)
}

func (h *AdminAuditHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = auditViewerPageSize
	}

	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}

	from, err := parseQueryTime(c, "from", false)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid from date")
	}

	to, err := parseQueryTime(c, "to", true)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid to date")
	}

	req := dto.AuditLogQueryRequest{
		Page:      page,
		PageSize:  pageSize,
		Email:     c.Query("email"),
		Action:    c.Query("action"),
		TableName: c.Query("table"),
		From:      from,
		To:        to,
	}
	if actorID > 0 {
		id := uint(actorID)
		req.ActorID = &id
	}

	response, err := h.service.Query(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPagination),
			errors.Is(err, service.ErrInvalidAction),
			errors.Is(err, service.ErrInvalidDateRange):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		// A failed query must be distinguishable from an empty result: the
		// viewer renders "no records found" only on a successful 200.
		h.logger.Error().Err(err).Msg("failed to query audit log")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to query audit log")
	}

	return utils.SendSuccess(c, "audit log", response)
}

// filters feeds the viewer's dropdowns: the closed action set and the fixed
// audited-table list.
func (h *AdminAuditHandler) filters(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "audit filters", fiber.Map{
		"actions": models.AuditActions,
		"tables":  models.AuditedTables,
	})
}

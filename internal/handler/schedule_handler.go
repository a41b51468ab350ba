package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/utils"
)

// ScheduleHandler exposes timetable endpoints.
type ScheduleHandler struct {
	service service.ScheduleService
	logger  zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: svc,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register attaches the read-only timetable routes available to every role.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterEditor attaches the mutating timetable routes.
func (h *ScheduleHandler) RegisterEditor(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ScheduleHandler) list(c *fiber.Ctx) error {
	teacherID, err := parseQueryInt(c, "teacher_id")
	if err != nil || teacherID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	req := dto.ScheduleListRequest{
		GroupName: c.Query("group"),
		TeacherID: uint(teacherID),
	}
	if raw := c.Query("weekday"); raw != "" {
		weekday, err := strconv.Atoi(raw)
		if err != nil || weekday < 1 || weekday > 7 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid weekday")
		}
		req.Weekday = &weekday
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list schedule")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list schedule")
	}

	return utils.SendSuccess(c, "schedule", response)
}

func (h *ScheduleHandler) create(c *fiber.Ctx) error {
	var payload dto.ScheduleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create schedule entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create schedule entry")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "schedule entry created", response)
}

func (h *ScheduleHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.ScheduleUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "schedule entry not found")
		}
		h.logger.Error().Err(err).Msg("failed to update schedule entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update schedule entry")
	}

	return utils.SendSuccess(c, "schedule entry updated", response)
}

func (h *ScheduleHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "schedule entry not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete schedule entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete schedule entry")
	}

	return utils.SendSuccess(c, "schedule entry deleted", nil)
}

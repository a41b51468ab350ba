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

// GradeHandler exposes grade book endpoints.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(svc service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: svc,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register attaches the staff grade book routes.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterStudent attaches the student's own grade book view.
func (h *GradeHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.listOwn)
}

func (h *GradeHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	studentID, err := parseQueryInt(c, "student_id")
	if err != nil || studentID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	teacherID, err := parseQueryInt(c, "teacher_id")
	if err != nil || teacherID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	response, err := h.service.List(c.Context(), dto.GradeListRequest{
		Page:      page,
		PageSize:  pageSize,
		StudentID: uint(studentID),
		TeacherID: uint(teacherID),
		Subject:   c.Query("subject"),
		Semester:  c.Query("semester"),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list grades")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list grades")
	}

	return utils.SendSuccess(c, "grades", response)
}

func (h *GradeHandler) listOwn(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	response, err := h.service.ListOwn(c.Context(), userEmailFromContext(c), dto.GradeListRequest{
		Page:     page,
		PageSize: pageSize,
		Subject:  c.Query("subject"),
		Semester: c.Query("semester"),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
		}
		h.logger.Error().Err(err).Msg("failed to load own grades")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load grades")
	}

	return utils.SendSuccess(c, "grades", response)
}

func (h *GradeHandler) create(c *fiber.Ctx) error {
	var payload dto.GradeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create grade")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create grade")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade recorded", response)
}

func (h *GradeHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.GradeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "grade not found")
		}
		h.logger.Error().Err(err).Msg("failed to update grade")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update grade")
	}

	return utils.SendSuccess(c, "grade updated", response)
}

func (h *GradeHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), auditActorFromContext(c), requestMetaFromContext(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "grade not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete grade")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete grade")
	}

	return utils.SendSuccess(c, "grade deleted", nil)
}

package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

// ScheduleService manages the weekly timetable.
type ScheduleService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.ScheduleCreateRequest) (dto.ScheduleResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.ScheduleUpdateRequest) (dto.ScheduleResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	List(ctx context.Context, req dto.ScheduleListRequest) ([]dto.ScheduleResponse, error)
}

type scheduleService struct {
	repo      repository.ScheduleRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo repository.ScheduleRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "schedule_service").Logger(),
	}
}

func (s *scheduleService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.ScheduleCreateRequest) (dto.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleResponse{}, err
	}

	entry := models.ScheduleEntry{
		GroupName: strings.TrimSpace(req.GroupName),
		Subject:   strings.TrimSpace(req.Subject),
		TeacherID: req.TeacherID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return dto.ScheduleResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, entry.TableName(), &entry.ID, nil, entry, meta)

	return dto.NewScheduleResponse(entry), nil
}

func (s *scheduleService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.ScheduleUpdateRequest) (dto.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleResponse{}, err
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}
	before := *entry

	if req.Subject != nil {
		entry.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.TeacherID != nil {
		entry.TeacherID = *req.TeacherID
	}
	if req.Weekday != nil {
		entry.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.Room != nil {
		entry.Room = *req.Room
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return dto.ScheduleResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, entry.TableName(), &entry.ID, before, *entry, meta)

	return dto.NewScheduleResponse(*entry), nil
}

func (s *scheduleService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, entry.TableName(), &id, *entry, nil, meta)

	return nil
}

func (s *scheduleService) List(ctx context.Context, req dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	filter := repository.ScheduleFilter{
		GroupName: req.GroupName,
		Weekday:   req.Weekday,
	}
	if req.TeacherID > 0 {
		filter.TeacherID = &req.TeacherID
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ScheduleResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewScheduleResponse(entry))
	}

	return items, nil
}

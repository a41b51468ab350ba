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

// TeacherService manages teaching staff profiles.
type TeacherService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.TeacherCreateRequest) (dto.TeacherResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.TeacherUpdateRequest) (dto.TeacherResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	Get(ctx context.Context, id uint) (dto.TeacherResponse, error)
	List(ctx context.Context, req dto.TeacherListRequest) (dto.TeacherListResponse, error)
}

type teacherService struct {
	repo      repository.TeacherRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(repo repository.TeacherRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.TeacherCreateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher := models.Teacher{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Department: req.Department,
		Subject:    req.Subject,
	}

	if err := s.repo.Create(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, teacher.TableName(), &teacher.ID, nil, teacher, meta)

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.TeacherUpdateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	before := *teacher

	if req.Name != nil {
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		teacher.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Department != nil {
		teacher.Department = *req.Department
	}
	if req.Subject != nil {
		teacher.Subject = *req.Subject
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, teacher.TableName(), &teacher.ID, before, *teacher, meta)

	return dto.NewTeacherResponse(*teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, teacher.TableName(), &id, *teacher, nil, meta)

	return nil
}

func (s *teacherService) Get(ctx context.Context, id uint) (dto.TeacherResponse, error) {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	return dto.NewTeacherResponse(*teacher), nil
}

func (s *teacherService) List(ctx context.Context, req dto.TeacherListRequest) (dto.TeacherListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	teachers, total, err := s.repo.List(ctx, repository.TeacherFilter{
		Search:     req.Search,
		Department: req.Department,
		Page:       maxInt(req.Page, 1),
		PageSize:   pageSize,
	})
	if err != nil {
		return dto.TeacherListResponse{}, err
	}

	items := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		items = append(items, dto.NewTeacherResponse(teacher))
	}

	return dto.TeacherListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

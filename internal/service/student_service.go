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

// StudentService manages student profiles. Every mutation lands in the
// audit trail with before/after snapshots.
type StudentService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.StudentCreateRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error)
}

type studentService struct {
	repo      repository.StudentRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		GroupName: req.GroupName,
		Course:    req.Course,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, student.TableName(), &student.ID, nil, student, meta)

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	before := *student

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		student.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.GroupName != nil {
		student.GroupName = *req.GroupName
	}
	if req.Course != nil {
		student.Course = *req.Course
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return dto.StudentResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, student.TableName(), &student.ID, before, *student, meta)

	return dto.NewStudentResponse(*student), nil
}

func (s *studentService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, student.TableName(), &id, *student, nil, meta)

	return nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(*student), nil
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	students, total, err := s.repo.List(ctx, repository.StudentFilter{
		Search:    req.Search,
		GroupName: req.GroupName,
		Page:      maxInt(req.Page, 1),
		PageSize:  pageSize,
	})
	if err != nil {
		return dto.StudentListResponse{}, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	return dto.StudentListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

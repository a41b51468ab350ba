package service

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

// GradeService manages marks. Teachers own mutations; the audit trail keeps
// the previous value on every change.
type GradeService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, teacherID uint, req dto.GradeCreateRequest) (dto.GradeResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.GradeUpdateRequest) (dto.GradeResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	List(ctx context.Context, req dto.GradeListRequest) (dto.GradeListResponse, error)
	ListOwn(ctx context.Context, studentEmail string, req dto.GradeListRequest) (dto.StudentGradeListResponse, error)
}

type gradeService struct {
	repo      repository.GradeRepository
	students  repository.StudentRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(repo repository.GradeRepository, students repository.StudentRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) GradeService {
	return &gradeService{
		repo:      repo,
		students:  students,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "grade_service").Logger(),
	}
}

func (s *gradeService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, teacherID uint, req dto.GradeCreateRequest) (dto.GradeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GradeResponse{}, err
	}

	grade := models.Grade{
		StudentID: req.StudentID,
		TeacherID: teacherID,
		Subject:   strings.TrimSpace(req.Subject),
		Score:     req.Score,
		Semester:  req.Semester,
		Comment:   req.Comment,
	}

	if err := s.repo.Create(ctx, &grade); err != nil {
		return dto.GradeResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, grade.TableName(), &grade.ID, nil, grade, meta)

	return dto.NewGradeResponse(grade), nil
}

func (s *gradeService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.GradeUpdateRequest) (dto.GradeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GradeResponse{}, err
	}

	grade, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.GradeResponse{}, err
	}
	before := *grade

	if req.Score != nil {
		grade.Score = *req.Score
	}
	if req.Semester != nil {
		grade.Semester = *req.Semester
	}
	if req.Comment != nil {
		grade.Comment = *req.Comment
	}

	if err := s.repo.Update(ctx, grade); err != nil {
		return dto.GradeResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, grade.TableName(), &grade.ID, before, *grade, meta)

	return dto.NewGradeResponse(*grade), nil
}

func (s *gradeService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	grade, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, grade.TableName(), &id, *grade, nil, meta)

	return nil
}

func (s *gradeService) List(ctx context.Context, req dto.GradeListRequest) (dto.GradeListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	filter := repository.GradeFilter{
		Subject:  req.Subject,
		Semester: req.Semester,
		Page:     maxInt(req.Page, 1),
		PageSize: pageSize,
	}
	if req.StudentID > 0 {
		filter.StudentID = &req.StudentID
	}
	if req.TeacherID > 0 {
		filter.TeacherID = &req.TeacherID
	}

	grades, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.GradeListResponse{}, err
	}

	items := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		items = append(items, dto.NewGradeResponse(grade))
	}

	return dto.GradeListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

// ListOwn serves the student grade book. The student identity comes from
// the session email, never from request filters, so one student can never
// page through another's marks.
func (s *gradeService) ListOwn(ctx context.Context, studentEmail string, req dto.GradeListRequest) (dto.StudentGradeListResponse, error) {
	student, err := s.students.GetByEmail(ctx, studentEmail)
	if err != nil {
		return dto.StudentGradeListResponse{}, err
	}

	pageSize := clampPageSize(req.PageSize, 25, 200)

	filter := repository.GradeFilter{
		StudentID: &student.ID,
		Subject:   req.Subject,
		Semester:  req.Semester,
		Page:      maxInt(req.Page, 1),
		PageSize:  pageSize,
	}

	grades, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.StudentGradeListResponse{}, err
	}

	average, err := s.repo.AverageScore(ctx, student.ID, req.Subject, req.Semester)
	if err != nil {
		return dto.StudentGradeListResponse{}, err
	}

	items := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		items = append(items, dto.NewGradeResponse(grade))
	}

	return dto.StudentGradeListResponse{
		Items:      items,
		GPA:        math.Round(average*100) / 100,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

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

// MaterialService manages shared study-material metadata.
type MaterialService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, teacherID uint, req dto.MaterialCreateRequest) (dto.MaterialResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.MaterialUpdateRequest) (dto.MaterialResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	List(ctx context.Context, req dto.MaterialListRequest) (dto.MaterialListResponse, error)
}

type materialService struct {
	repo      repository.MaterialRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMaterialService constructs the material service.
func NewMaterialService(repo repository.MaterialRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) MaterialService {
	return &materialService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, teacherID uint, req dto.MaterialCreateRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MaterialResponse{}, err
	}

	material := models.Material{
		Title:     strings.TrimSpace(req.Title),
		Subject:   req.Subject,
		FileURL:   req.FileURL,
		TeacherID: teacherID,
	}

	if err := s.repo.Create(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, material.TableName(), &material.ID, nil, material, meta)

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.MaterialUpdateRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MaterialResponse{}, err
	}

	material, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.MaterialResponse{}, err
	}
	before := *material

	if req.Title != nil {
		material.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subject != nil {
		material.Subject = *req.Subject
	}
	if req.FileURL != nil {
		material.FileURL = *req.FileURL
	}

	if err := s.repo.Update(ctx, material); err != nil {
		return dto.MaterialResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, material.TableName(), &material.ID, before, *material, meta)

	return dto.NewMaterialResponse(*material), nil
}

func (s *materialService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	material, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, material.TableName(), &id, *material, nil, meta)

	return nil
}

func (s *materialService) List(ctx context.Context, req dto.MaterialListRequest) (dto.MaterialListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	filter := repository.MaterialFilter{
		Subject:  req.Subject,
		Page:     maxInt(req.Page, 1),
		PageSize: pageSize,
	}
	if req.TeacherID > 0 {
		filter.TeacherID = &req.TeacherID
	}

	materials, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.MaterialListResponse{}, err
	}

	items := make([]dto.MaterialResponse, 0, len(materials))
	for _, material := range materials {
		items = append(items, dto.NewMaterialResponse(material))
	}

	return dto.MaterialListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

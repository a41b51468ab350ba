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

// LibraryService manages the e-library catalog.
type LibraryService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.LibraryBookCreateRequest) (dto.LibraryBookResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.LibraryBookUpdateRequest) (dto.LibraryBookResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	List(ctx context.Context, req dto.LibraryBookListRequest) (dto.LibraryBookListResponse, error)
}

type libraryService struct {
	repo      repository.LibraryBookRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLibraryService constructs the library service.
func NewLibraryService(repo repository.LibraryBookRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) LibraryService {
	return &libraryService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "library_service").Logger(),
	}
}

func (s *libraryService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.LibraryBookCreateRequest) (dto.LibraryBookResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LibraryBookResponse{}, err
	}

	book := models.LibraryBook{
		Title:     strings.TrimSpace(req.Title),
		Author:    strings.TrimSpace(req.Author),
		Category:  strings.TrimSpace(req.Category),
		Pages:     req.Pages,
		Available: true,
	}
	if req.Available != nil {
		book.Available = *req.Available
	}

	if err := s.repo.Create(ctx, &book); err != nil {
		return dto.LibraryBookResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, book.TableName(), &book.ID, nil, book, meta)

	return dto.NewLibraryBookResponse(book), nil
}

func (s *libraryService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.LibraryBookUpdateRequest) (dto.LibraryBookResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LibraryBookResponse{}, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.LibraryBookResponse{}, err
	}
	before := *book

	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		book.Author = strings.TrimSpace(*req.Author)
	}
	if req.Category != nil {
		book.Category = strings.TrimSpace(*req.Category)
	}
	if req.Pages != nil {
		book.Pages = *req.Pages
	}
	if req.Available != nil {
		book.Available = *req.Available
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return dto.LibraryBookResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, book.TableName(), &book.ID, before, *book, meta)

	return dto.NewLibraryBookResponse(*book), nil
}

func (s *libraryService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, book.TableName(), &id, *book, nil, meta)

	return nil
}

func (s *libraryService) List(ctx context.Context, req dto.LibraryBookListRequest) (dto.LibraryBookListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	filter := repository.LibraryBookFilter{
		Search:        req.Search,
		Category:      req.Category,
		AvailableOnly: req.AvailableOnly,
		Page:          maxInt(req.Page, 1),
		PageSize:      pageSize,
	}

	books, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.LibraryBookListResponse{}, err
	}

	items := make([]dto.LibraryBookResponse, 0, len(books))
	for _, book := range books {
		items = append(items, dto.NewLibraryBookResponse(book))
	}

	return dto.LibraryBookListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

// NewsService manages announcements. Bodies may carry limited HTML, so they
// are sanitized before storage.
type NewsService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, authorID uint, req dto.NewsCreateRequest) (dto.NewsResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.NewsUpdateRequest) (dto.NewsResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	List(ctx context.Context, req dto.NewsListRequest) (dto.NewsListResponse, error)
}

type newsService struct {
	repo      repository.NewsRepository
	recorder  AuditRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNewsService constructs the news service.
func NewNewsService(repo repository.NewsRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) NewsService {
	return &newsService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "news_service").Logger(),
	}
}

func (s *newsService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, authorID uint, req dto.NewsCreateRequest) (dto.NewsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NewsResponse{}, err
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(req.Body))
	if body == "" {
		return dto.NewsResponse{}, errors.New("news body empty after sanitization")
	}

	post := models.NewsPost{
		Title:     strings.TrimSpace(req.Title),
		Body:      body,
		AuthorID:  authorID,
		Published: true,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.repo.Create(ctx, &post); err != nil {
		return dto.NewsResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, post.TableName(), &post.ID, nil, post, meta)

	return dto.NewNewsResponse(post), nil
}

func (s *newsService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.NewsUpdateRequest) (dto.NewsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NewsResponse{}, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.NewsResponse{}, err
	}
	before := *post

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		body := strings.TrimSpace(s.sanitizer.Sanitize(*req.Body))
		if body == "" {
			return dto.NewsResponse{}, errors.New("news body empty after sanitization")
		}
		post.Body = body
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return dto.NewsResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, post.TableName(), &post.ID, before, *post, meta)

	return dto.NewNewsResponse(*post), nil
}

func (s *newsService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, post.TableName(), &id, *post, nil, meta)

	return nil
}

func (s *newsService) List(ctx context.Context, req dto.NewsListRequest) (dto.NewsListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	filter := repository.NewsFilter{
		PublishedOnly: req.PublishedOnly,
		Page:          maxInt(req.Page, 1),
		PageSize:      pageSize,
	}
	if req.AuthorID > 0 {
		filter.AuthorID = &req.AuthorID
	}

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.NewsListResponse{}, err
	}

	items := make([]dto.NewsResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, dto.NewNewsResponse(post))
	}

	return dto.NewsListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

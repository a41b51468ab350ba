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

// ShopService manages the merchandise catalog. Checkout is an external
// messaging link, so the service stops at catalog CRUD.
type ShopService interface {
	Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.ShopProductCreateRequest) (dto.ShopProductResponse, error)
	Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.ShopProductUpdateRequest) (dto.ShopProductResponse, error)
	Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error
	List(ctx context.Context, req dto.ShopProductListRequest) (dto.ShopProductListResponse, error)
}

type shopService struct {
	repo      repository.ShopProductRepository
	recorder  AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewShopService constructs the shop service.
func NewShopService(repo repository.ShopProductRepository, recorder AuditRecorder, validate *validator.Validate, logger zerolog.Logger) ShopService {
	return &shopService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "shop_service").Logger(),
	}
}

func (s *shopService) Create(ctx context.Context, actor AuditActor, meta RequestMeta, req dto.ShopProductCreateRequest) (dto.ShopProductResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ShopProductResponse{}, err
	}

	product := models.ShopProduct{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return dto.ShopProductResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionCreate, product.TableName(), &product.ID, nil, product, meta)

	return dto.NewShopProductResponse(product), nil
}

func (s *shopService) Update(ctx context.Context, actor AuditActor, meta RequestMeta, id uint, req dto.ShopProductUpdateRequest) (dto.ShopProductResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ShopProductResponse{}, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ShopProductResponse{}, err
	}
	before := *product

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return dto.ShopProductResponse{}, err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionUpdate, product.TableName(), &product.ID, before, *product, meta)

	return dto.NewShopProductResponse(*product), nil
}

func (s *shopService) Delete(ctx context.Context, actor AuditActor, meta RequestMeta, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	auditMutation(ctx, s.recorder, s.logger, actor, models.AuditActionDelete, product.TableName(), &id, *product, nil, meta)

	return nil
}

func (s *shopService) List(ctx context.Context, req dto.ShopProductListRequest) (dto.ShopProductListResponse, error) {
	pageSize := clampPageSize(req.PageSize, 25, 200)

	products, total, err := s.repo.List(ctx, repository.ShopProductFilter{
		Search:   req.Search,
		InStock:  req.InStock,
		Page:     maxInt(req.Page, 1),
		PageSize: pageSize,
	})
	if err != nil {
		return dto.ShopProductListResponse{}, err
	}

	items := make([]dto.ShopProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, dto.NewShopProductResponse(product))
	}

	return dto.ShopProductListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, pageSize, total),
	}, nil
}

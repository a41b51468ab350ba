package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// ShopProductFilter narrows catalog listings.
type ShopProductFilter struct {
	Search   string
	InStock  bool
	Page     int
	PageSize int
}

// ShopProductRepository manages the shop catalog.
type ShopProductRepository interface {
	Create(ctx context.Context, product *models.ShopProduct) error
	Update(ctx context.Context, product *models.ShopProduct) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.ShopProduct, error)
	List(ctx context.Context, filter ShopProductFilter) ([]models.ShopProduct, int64, error)
}

type shopProductRepository struct {
	db *gorm.DB
}

// NewShopProductRepository constructs the shop product repository.
func NewShopProductRepository(db *gorm.DB) ShopProductRepository {
	return &shopProductRepository{db: db}
}

func (r *shopProductRepository) Create(ctx context.Context, product *models.ShopProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *shopProductRepository) Update(ctx context.Context, product *models.ShopProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *shopProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ShopProduct{}, id).Error
}

func (r *shopProductRepository) GetByID(ctx context.Context, id uint) (*models.ShopProduct, error) {
	var product models.ShopProduct
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *shopProductRepository) List(ctx context.Context, filter ShopProductFilter) ([]models.ShopProduct, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShopProduct{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if filter.InStock {
		query = query.Where("stock > 0")
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var products []models.ShopProduct
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
	"github.com/abner-serafim/2025-api-arq/internal/logger"
	"github.com/abner-serafim/2025-api-arq/internal/models"
)

// ProductFilters holds raw query values; PriceMin/PriceMax that fail decimal
// parsing are skipped like the order date filters.
type ProductFilters struct {
	Name     string
	EAN      string
	PriceMin string
	PriceMax string
}

type ProductInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	EAN   *string         `json:"ean"`
}

type ProductPatch struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	EAN   *string          `json:"ean"`
}

type ProductService interface {
	List(ctx context.Context, filters ProductFilters) ([]models.Product, error)
	Count(ctx context.Context, filters ProductFilters) (int64, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error)
	Patch(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger) ProductService {
	return &productService{db: db, log: baseLog.With("service", "ProductService")}
}

func applyProductFilters(query *gorm.DB, filters ProductFilters) *gorm.DB {
	if filters.Name != "" {
		query = query.Where("name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.EAN != "" {
		query = query.Where("ean = ?", filters.EAN)
	}
	if filters.PriceMin != "" {
		if priceMin, err := decimal.NewFromString(filters.PriceMin); err == nil {
			query = query.Where("price >= ?", priceMin)
		}
	}
	if filters.PriceMax != "" {
		if priceMax, err := decimal.NewFromString(filters.PriceMax); err == nil {
			query = query.Where("price <= ?", priceMax)
		}
	}
	return query
}

func (s *productService) List(ctx context.Context, filters ProductFilters) ([]models.Product, error) {
	var products []models.Product
	query := applyProductFilters(s.db.WithContext(ctx).Model(&models.Product{}), filters)
	if err := query.Find(&products).Error; err != nil {
		return nil, translateStorage("list products", err)
	}
	return products, nil
}

func (s *productService) Count(ctx context.Context, filters ProductFilters) (int64, error) {
	var count int64
	query := applyProductFilters(s.db.WithContext(ctx).Model(&models.Product{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateStorage("count products", err)
	}
	return count, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product with ID %d not found", id)
		}
		return nil, translateStorage("load product", err)
	}
	return &product, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, apperr.Validationf("required field missing or empty (name)")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validationf("price must be a positive value")
	}

	product := models.Product{
		Name:  input.Name,
		Price: input.Price,
		EAN:   input.EAN,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, translateStorage("create product", err)
	}

	s.log.Info("product created", "product_id", product.ID)
	return &product, nil
}

func (s *productService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, apperr.Validationf("for PUT, name and price must be provided")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validationf("price must be a positive value")
	}

	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("product with ID %d not found", id)
			}
			return translateStorage("load product", err)
		}

		product.Name = input.Name
		product.Price = input.Price
		product.EAN = input.EAN
		if err := tx.Save(&product).Error; err != nil {
			return translateStorage("update product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Patch(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	if patch.Name == nil && patch.Price == nil && patch.EAN == nil {
		return nil, apperr.Validationf("no valid field provided for update")
	}
	if patch.Price != nil && patch.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validationf("price must be a positive value")
	}

	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("product with ID %d not found", id)
			}
			return translateStorage("load product", err)
		}

		if patch.Name != nil {
			product.Name = *patch.Name
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}
		if patch.EAN != nil {
			product.EAN = patch.EAN
		}
		if err := tx.Save(&product).Error; err != nil {
			return translateStorage("patch product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Product{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("product with ID %d not found", id)
			}
			return translateStorage("load product", err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return translateStorage("delete product", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("product deleted", "product_id", id)
	return nil
}

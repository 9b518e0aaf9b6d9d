package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
	"github.com/abner-serafim/2025-api-arq/internal/models"
)

// Catalog is the read-only view of customers and products the order core
// uses to validate references and source snapshot data. It never writes.
type Catalog interface {
	FindCustomer(ctx context.Context, id uint) (*models.Customer, error)
	FindProduct(ctx context.Context, id uint) (*models.Product, error)
}

type catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) Catalog {
	return &catalog{db: db}
}

func (cat *catalog) FindCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := cat.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("customer with ID %d not found", id)
		}
		return nil, apperr.Storagef("find customer %d: %w", id, err)
	}
	return &customer, nil
}

func (cat *catalog) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := cat.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product with ID %d not found", id)
		}
		return nil, apperr.Storagef("find product %d: %w", id, err)
	}
	return &product, nil
}

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
	"github.com/abner-serafim/2025-api-arq/internal/logger"
	"github.com/abner-serafim/2025-api-arq/internal/models"
)

type CustomerFilters struct {
	Name    string
	TaxID   string
	Phone   string
	Address string
	Email   string
}

type CustomerInput struct {
	Name    string  `json:"name"`
	TaxID   string  `json:"tax_id"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
}

type CustomerPatch struct {
	Name    *string `json:"name"`
	TaxID   *string `json:"tax_id"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
}

type CustomerService interface {
	List(ctx context.Context, filters CustomerFilters) ([]models.Customer, error)
	Count(ctx context.Context, filters CustomerFilters) (int64, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id uint, input CustomerInput) (*models.Customer, error)
	Patch(ctx context.Context, id uint, patch CustomerPatch) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerService(db *gorm.DB, baseLog *logger.Logger) CustomerService {
	return &customerService{db: db, log: baseLog.With("service", "CustomerService")}
}

func applyCustomerFilters(query *gorm.DB, filters CustomerFilters) *gorm.DB {
	// Substring match on the free-text fields, exact match on the keys.
	if filters.Name != "" {
		query = query.Where("name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.Address != "" {
		query = query.Where("address LIKE ?", "%"+filters.Address+"%")
	}
	if filters.Email != "" {
		query = query.Where("email LIKE ?", "%"+filters.Email+"%")
	}
	if filters.TaxID != "" {
		query = query.Where("tax_id = ?", filters.TaxID)
	}
	if filters.Phone != "" {
		query = query.Where("phone = ?", filters.Phone)
	}
	return query
}

func (s *customerService) List(ctx context.Context, filters CustomerFilters) ([]models.Customer, error) {
	var customers []models.Customer
	query := applyCustomerFilters(s.db.WithContext(ctx).Model(&models.Customer{}), filters)
	if err := query.Find(&customers).Error; err != nil {
		return nil, translateStorage("list customers", err)
	}
	return customers, nil
}

func (s *customerService) Count(ctx context.Context, filters CustomerFilters) (int64, error) {
	var count int64
	query := applyCustomerFilters(s.db.WithContext(ctx).Model(&models.Customer{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateStorage("count customers", err)
	}
	return count, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("customer with ID %d not found", id)
		}
		return nil, translateStorage("load customer", err)
	}
	return &customer, nil
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	if input.Name == "" || input.TaxID == "" {
		return nil, apperr.Validationf("required fields missing or empty (name, tax_id)")
	}

	customer := models.Customer{
		Name:    input.Name,
		TaxID:   input.TaxID,
		Phone:   input.Phone,
		Address: input.Address,
		Email:   input.Email,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, translateStorage("create customer", err)
	}

	s.log.Info("customer created", "customer_id", customer.ID)
	return &customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, input CustomerInput) (*models.Customer, error) {
	if input.Name == "" || input.TaxID == "" {
		return nil, apperr.Validationf("for PUT, name and tax_id must be provided")
	}

	var customer models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("customer with ID %d not found", id)
			}
			return translateStorage("load customer", err)
		}

		customer.Name = input.Name
		customer.TaxID = input.TaxID
		customer.Phone = input.Phone
		customer.Address = input.Address
		customer.Email = input.Email
		if err := tx.Save(&customer).Error; err != nil {
			return translateStorage("update customer", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *customerService) Patch(ctx context.Context, id uint, patch CustomerPatch) (*models.Customer, error) {
	if patch.Name == nil && patch.TaxID == nil && patch.Phone == nil && patch.Address == nil && patch.Email == nil {
		return nil, apperr.Validationf("no valid field provided for update")
	}

	var customer models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("customer with ID %d not found", id)
			}
			return translateStorage("load customer", err)
		}

		if patch.Name != nil {
			customer.Name = *patch.Name
		}
		if patch.TaxID != nil {
			customer.TaxID = *patch.TaxID
		}
		if patch.Phone != nil {
			customer.Phone = patch.Phone
		}
		if patch.Address != nil {
			customer.Address = patch.Address
		}
		if patch.Email != nil {
			customer.Email = patch.Email
		}
		if err := tx.Save(&customer).Error; err != nil {
			return translateStorage("patch customer", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Customer{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("customer with ID %d not found", id)
			}
			return translateStorage("load customer", err)
		}
		if err := tx.Delete(&models.Customer{}, id).Error; err != nil {
			return translateStorage("delete customer", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("customer deleted", "customer_id", id)
	return nil
}

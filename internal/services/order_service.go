package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
	"github.com/abner-serafim/2025-api-arq/internal/catalog"
	"github.com/abner-serafim/2025-api-arq/internal/logger"
	"github.com/abner-serafim/2025-api-arq/internal/models"
)

type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerID      uint             `json:"customer_id"`
	Items           []OrderItemInput `json:"items"`
	DeliveryAddress *string          `json:"delivery_address"`
	ContactPhone    *string          `json:"contact_phone"`
	OrderEmail      *string          `json:"order_email"`
}

// OrderPatch carries the only order fields that stay mutable after creation.
// Nil means "leave untouched".
type OrderPatch struct {
	DeliveryAddress *string `json:"delivery_address"`
	ContactPhone    *string `json:"contact_phone"`
	OrderEmail      *string `json:"order_email"`
}

func (p OrderPatch) empty() bool {
	return p.DeliveryAddress == nil && p.ContactPhone == nil && p.OrderEmail == nil
}

// OrderFilters holds raw query values. Unparseable values are skipped, not
// rejected, so a partner sending a malformed date still gets the unfiltered
// result instead of an error.
type OrderFilters struct {
	CustomerID string
	DateFrom   string
	DateTo     string
}

// OrderService is the single entry point for order mutations. Every mutation
// runs in one transaction: order row, item rows and recalculated totals
// become visible together or not at all.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	AddItem(ctx context.Context, orderID, productID uint, quantity int) (*models.Order, error)
	UpdateItem(ctx context.Context, orderID, productID uint, quantity int) (*models.Order, error)
	RemoveItem(ctx context.Context, orderID, productID uint) (*models.Order, error)
	Patch(ctx context.Context, orderID uint, patch OrderPatch) (*models.Order, error)
	Delete(ctx context.Context, orderID uint) error
	List(ctx context.Context, filters OrderFilters) ([]models.Order, error)
	Count(ctx context.Context, filters OrderFilters) (int64, error)
	Get(ctx context.Context, orderID uint, includeItems bool) (*models.Order, error)
}

type orderService struct {
	db      *gorm.DB
	log     *logger.Logger
	catalog catalog.Catalog
}

func NewOrderService(db *gorm.DB, baseLog *logger.Logger, cat catalog.Catalog) OrderService {
	return &orderService{
		db:      db,
		log:     baseLog.With("service", "OrderService"),
		catalog: cat,
	}
}

func validateQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		return apperr.Validationf("invalid quantity %d for product ID %d", quantity, productID)
	}
	return nil
}

func (s *orderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.CustomerID == 0 {
		return nil, apperr.Validationf("customer ID is required")
	}
	if len(input.Items) == 0 {
		return nil, apperr.Validationf("order item list is empty")
	}

	// All validation and catalog lookups happen before the first write.
	seen := make(map[uint]bool, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == 0 {
			return nil, apperr.Validationf("missing product ID in order item")
		}
		if err := validateQuantity(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
		if seen[item.ProductID] {
			return nil, apperr.Validationf("product ID %d listed more than once in the initial order", item.ProductID)
		}
		seen[item.ProductID] = true
	}

	customer, err := s.catalog.FindCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := s.catalog.FindProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductEAN:  product.EAN,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
		})
	}

	// Delivery and contact fields fall back to the customer record.
	deliveryAddress := input.DeliveryAddress
	if deliveryAddress == nil {
		deliveryAddress = customer.Address
	}
	contactPhone := input.ContactPhone
	if contactPhone == nil {
		contactPhone = customer.Phone
	}
	orderEmail := input.OrderEmail
	if orderEmail == nil {
		orderEmail = customer.Email
	}

	order := models.Order{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerTaxID:   customer.TaxID,
		DeliveryAddress: deliveryAddress,
		ContactPhone:    contactPhone,
		OrderEmail:      orderEmail,
		Items:           items,
	}
	order.RecalculateTotals()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return translateStorage("create order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created", "order_id", order.ID, "customer_id", customer.ID, "items", len(order.Items))
	return &order, nil
}

func (s *orderService) AddItem(ctx context.Context, orderID, productID uint, quantity int) (*models.Order, error) {
	if err := validateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Order{}, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("order with ID %d not found", orderID)
			}
			return translateStorage("load order", err)
		}

		var existing models.OrderItem
		err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).First(&existing).Error
		switch {
		case err == nil:
			// Merge policy: sum the quantity, keep the snapshot from the
			// first add. The price is never re-stamped from the catalog.
			existing.Quantity += quantity
			if err := tx.Save(&existing).Error; err != nil {
				return translateStorage("update order item", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			product, err := s.catalog.FindProduct(ctx, productID)
			if err != nil {
				return err
			}
			item := models.OrderItem{
				OrderID:     orderID,
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductEAN:  product.EAN,
				UnitPrice:   product.Price,
				Quantity:    quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return translateStorage("create order item", err)
			}
		default:
			return translateStorage("load order item", err)
		}

		refreshed, err := refreshTotals(tx, orderID)
		if err != nil {
			return err
		}
		order = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item added", "order_id", orderID, "product_id", productID, "quantity", quantity)
	return order, nil
}

func (s *orderService) UpdateItem(ctx context.Context, orderID, productID uint, quantity int) (*models.Order, error) {
	if err := validateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("item with product ID %d not found in order ID %d", productID, orderID)
			}
			return translateStorage("load order item", err)
		}

		// Only the quantity moves; the frozen snapshot stays as it was.
		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return translateStorage("update order item", err)
		}

		refreshed, err := refreshTotals(tx, orderID)
		if err != nil {
			return err
		}
		order = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item updated", "order_id", orderID, "product_id", productID, "quantity", quantity)
	return order, nil
}

func (s *orderService) RemoveItem(ctx context.Context, orderID, productID uint) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("item with product ID %d not found in order ID %d", productID, orderID)
			}
			return translateStorage("load order item", err)
		}

		if err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			Delete(&models.OrderItem{}).Error; err != nil {
			return translateStorage("delete order item", err)
		}

		// An order may legitimately end up with zero items here; the
		// at-least-one-item rule only gates creation.
		refreshed, err := refreshTotals(tx, orderID)
		if err != nil {
			return err
		}
		order = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item removed", "order_id", orderID, "product_id", productID)
	return order, nil
}

func (s *orderService) Patch(ctx context.Context, orderID uint, patch OrderPatch) (*models.Order, error) {
	if patch.empty() {
		return nil, apperr.Validationf("no valid field provided for update")
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("order with ID %d not found", orderID)
			}
			return translateStorage("load order", err)
		}

		updates := map[string]any{}
		if patch.DeliveryAddress != nil {
			order.DeliveryAddress = patch.DeliveryAddress
			updates["delivery_address"] = *patch.DeliveryAddress
		}
		if patch.ContactPhone != nil {
			order.ContactPhone = patch.ContactPhone
			updates["contact_phone"] = *patch.ContactPhone
		}
		if patch.OrderEmail != nil {
			order.OrderEmail = patch.OrderEmail
			updates["order_email"] = *patch.OrderEmail
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
			return translateStorage("patch order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order patched", "order_id", orderID)
	return &order, nil
}

func (s *orderService) Delete(ctx context.Context, orderID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Order{}, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("order with ID %d not found", orderID)
			}
			return translateStorage("load order", err)
		}

		// Items go first so no orphan can survive a backend without
		// enforced foreign keys.
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return translateStorage("delete order items", err)
		}
		if err := tx.Delete(&models.Order{}, orderID).Error; err != nil {
			return translateStorage("delete order", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("order deleted", "order_id", orderID)
	return nil
}

func (s *orderService) List(ctx context.Context, filters OrderFilters) ([]models.Order, error) {
	var orders []models.Order
	query := applyOrderFilters(s.db.WithContext(ctx).Model(&models.Order{}), filters)
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, translateStorage("list orders", err)
	}
	return orders, nil
}

func (s *orderService) Count(ctx context.Context, filters OrderFilters) (int64, error) {
	var count int64
	query := applyOrderFilters(s.db.WithContext(ctx).Model(&models.Order{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateStorage("count orders", err)
	}
	return count, nil
}

func (s *orderService) Get(ctx context.Context, orderID uint, includeItems bool) (*models.Order, error) {
	query := s.db.WithContext(ctx)
	if includeItems {
		query = query.Preload("Items")
	}

	var order models.Order
	if err := query.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order with ID %d not found", orderID)
		}
		return nil, translateStorage("load order", err)
	}
	return &order, nil
}

// refreshTotals reloads the order with its items, recomputes the derived
// fields and persists them, all inside the caller's transaction.
func refreshTotals(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order with ID %d not found", orderID)
		}
		return nil, translateStorage("reload order", err)
	}

	order.RecalculateTotals()
	err := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"total_quantity": order.TotalQuantity,
		"total_value":    order.TotalValue,
	}).Error
	if err != nil {
		return nil, translateStorage("update order totals", err)
	}
	return &order, nil
}

// Filter layouts accepted for date_from/date_to. A bare date on date_to is
// widened to the end of that day.
const dateOnlyLayout = "2006-01-02"

func applyOrderFilters(query *gorm.DB, filters OrderFilters) *gorm.DB {
	if filters.CustomerID != "" {
		if customerID, err := strconv.ParseUint(filters.CustomerID, 10, 64); err == nil {
			query = query.Where("customer_id = ?", customerID)
		}
	}
	if filters.DateFrom != "" {
		if from, ok := parseFilterTime(filters.DateFrom); ok {
			query = query.Where("created_at >= ?", from)
		}
	}
	if filters.DateTo != "" {
		if to, ok := parseFilterTime(filters.DateTo); ok {
			if len(filters.DateTo) == len(dateOnlyLayout) {
				to = to.Add(24*time.Hour - time.Microsecond)
			}
			query = query.Where("created_at <= ?", to)
		}
	}
	return query
}

func parseFilterTime(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

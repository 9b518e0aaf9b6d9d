package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root. The customer_* columns are a snapshot taken
// when the order is created; editing the customer afterwards does not touch
// them. TotalQuantity and TotalValue are derived from Items and refreshed by
// RecalculateTotals after every structural change.
type Order struct {
	ID              uint            `gorm:"primaryKey"`
	CreatedAt       time.Time       `gorm:"index;not null"`
	CustomerID      uint            `gorm:"index;not null"`
	CustomerName    string          `gorm:"not null"`
	CustomerTaxID   string          `gorm:"not null"`
	DeliveryAddress *string         `gorm:"size:500"`
	ContactPhone    *string         `gorm:"size:20"`
	OrderEmail      *string         `gorm:"size:120"`
	TotalQuantity   int             `gorm:"not null;default:0"`
	TotalValue      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem pairs an order with a product. The composite primary key keeps a
// product from appearing twice on the same order. ProductName, ProductEAN and
// UnitPrice are frozen from the product at the moment the item was first
// added; only Quantity changes after that.
type OrderItem struct {
	OrderID     uint            `gorm:"primaryKey;autoIncrement:false"`
	ProductID   uint            `gorm:"primaryKey;autoIncrement:false"`
	ProductName string          `gorm:"not null"`
	ProductEAN  *string         `gorm:"size:13"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity    int             `gorm:"not null"`
}

// RecalculateTotals recomputes the two derived fields from the current item
// collection. Always a full recompute, never an incremental patch.
func (o *Order) RecalculateTotals() {
	totalQuantity := 0
	totalValue := decimal.Zero
	for _, item := range o.Items {
		totalQuantity += item.Quantity
		totalValue = totalValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.TotalQuantity = totalQuantity
	o.TotalValue = totalValue
}

// OrderItemView is the serialized form of a line item.
type OrderItemView struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductEAN  *string `json:"product_ean"`
	UnitPrice   string  `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// OrderView is the serialized form of an order. Items are omitted unless
// requested, listings stay lightweight that way. CurrentCustomer carries the
// customer as it is now, next to the frozen snapshot fields.
type OrderView struct {
	ID              uint            `json:"id"`
	CreatedAt       string          `json:"created_at"`
	CustomerID      uint            `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerTaxID   string          `json:"customer_tax_id"`
	DeliveryAddress *string         `json:"delivery_address"`
	ContactPhone    *string         `json:"contact_phone"`
	OrderEmail      *string         `json:"order_email"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalValue      string          `json:"total_value"`
	Items           []OrderItemView `json:"items,omitempty"`
	CurrentCustomer *Customer       `json:"current_customer,omitempty"`
}

func (i OrderItem) View() OrderItemView {
	return OrderItemView{
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		ProductEAN:  i.ProductEAN,
		UnitPrice:   i.UnitPrice.StringFixed(2),
		Quantity:    i.Quantity,
	}
}

func (o *Order) View(includeItems bool, currentCustomer *Customer) OrderView {
	view := OrderView{
		ID:              o.ID,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerTaxID:   o.CustomerTaxID,
		DeliveryAddress: o.DeliveryAddress,
		ContactPhone:    o.ContactPhone,
		OrderEmail:      o.OrderEmail,
		TotalQuantity:   o.TotalQuantity,
		TotalValue:      o.TotalValue.StringFixed(2),
		CurrentCustomer: currentCustomer,
	}
	if includeItems {
		view.Items = make([]OrderItemView, 0, len(o.Items))
		for _, item := range o.Items {
			view.Items = append(view.Items, item.View())
		}
	}
	return view
}

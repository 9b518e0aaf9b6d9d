package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/abner-serafim/2025-api-arq/internal/models"
)

func strPtr(s string) *string { return &s }

func TestRecalculateTotals(t *testing.T) {
	t.Run("empty item collection yields zero totals", func(t *testing.T) {
		order := models.Order{
			TotalQuantity: 42,
			TotalValue:    decimal.RequireFromString("99.99"),
		}
		order.RecalculateTotals()

		assert.Equal(t, 0, order.TotalQuantity)
		assert.Equal(t, "0.00", order.TotalValue.StringFixed(2))
	})

	t.Run("sums quantity and quantity times unit price", func(t *testing.T) {
		order := models.Order{
			Items: []models.OrderItem{
				{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
				{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
			},
		}
		order.RecalculateTotals()

		assert.Equal(t, 3, order.TotalQuantity)
		assert.Equal(t, "25.00", order.TotalValue.StringFixed(2))
	})

	t.Run("no floating point drift on cent values", func(t *testing.T) {
		order := models.Order{
			Items: []models.OrderItem{
				{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
				{ProductID: 2, Quantity: 7, UnitPrice: decimal.RequireFromString("19.99")},
			},
		}
		order.RecalculateTotals()

		assert.Equal(t, 10, order.TotalQuantity)
		assert.Equal(t, "140.23", order.TotalValue.StringFixed(2))
	})
}

func TestOrderView(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	order := models.Order{
		ID:              7,
		CreatedAt:       created,
		CustomerID:      3,
		CustomerName:    "Maria Silva",
		CustomerTaxID:   "111",
		DeliveryAddress: strPtr("Rua A"),
		TotalQuantity:   3,
		TotalValue:      decimal.RequireFromString("25.00"),
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Widget", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		},
	}

	t.Run("items omitted by default", func(t *testing.T) {
		view := order.View(false, nil)

		assert.Equal(t, uint(7), view.ID)
		assert.Equal(t, "2025-03-14T09:26:53Z", view.CreatedAt)
		assert.Equal(t, "25.00", view.TotalValue)
		assert.Nil(t, view.Items)
		assert.Nil(t, view.CurrentCustomer)
	})

	t.Run("items included on request", func(t *testing.T) {
		view := order.View(true, nil)

		assert.Len(t, view.Items, 1)
		assert.Equal(t, uint(1), view.Items[0].ProductID)
		assert.Equal(t, "10.00", view.Items[0].UnitPrice)
		assert.Equal(t, 2, view.Items[0].Quantity)
	})

	t.Run("current customer rides next to the frozen snapshot", func(t *testing.T) {
		current := &models.Customer{ID: 3, Name: "Maria Souza", TaxID: "111"}
		view := order.View(false, current)

		// Frozen name stays, the live record carries the new one.
		assert.Equal(t, "Maria Silva", view.CustomerName)
		assert.Equal(t, "Maria Souza", view.CurrentCustomer.Name)
	})
}

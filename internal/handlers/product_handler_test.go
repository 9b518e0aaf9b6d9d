package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abner-serafim/2025-api-arq/internal/models"
)

func TestProductEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("creates a product", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "Widget", "price": "10.00", "ean": "7891000100103"}
		recorder := performRequest(router, http.MethodPost, "/api/products", reqBody, true)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var product models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &product))
		assert.Greater(t, product.ID, uint(0))
		assert.Equal(t, "Widget", product.Name)
	})

	t.Run("duplicate EAN maps to 400", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "Clone", "price": "1.00", "ean": "7891000100103"}
		recorder := performRequest(router, http.MethodPost, "/api/products", reqBody, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing price maps to 400", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "No Price"}
		recorder := performRequest(router, http.MethodPost, "/api/products", reqBody, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("lists with price filter", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/api/products?price_min=5", nil, true)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var products []models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
		assert.Len(t, products, 1)
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/api/products/9999", nil, true)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestCustomerEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	var customerID uint

	t.Run("creates a customer", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "Maria Silva", "tax_id": "111", "address": "Rua A"}
		recorder := performRequest(router, http.MethodPost, "/api/customers", reqBody, true)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var customer models.Customer
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &customer))
		assert.Greater(t, customer.ID, uint(0))
		customerID = customer.ID
	})

	t.Run("duplicate tax id maps to 400", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "Other", "tax_id": "111"}
		recorder := performRequest(router, http.MethodPost, "/api/customers", reqBody, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("patches a single field", func(t *testing.T) {
		path := fmt.Sprintf("/api/customers/%d", customerID)
		recorder := performRequest(router, http.MethodPatch, path, map[string]interface{}{"phone": "11988887777"}, true)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var customer models.Customer
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &customer))
		assert.Equal(t, "11988887777", *customer.Phone)
		assert.Equal(t, "Maria Silva", customer.Name)
	})

	t.Run("counts customers", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/api/customers/count", nil, true)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp map[string]int64
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp["count"])
	})

	t.Run("deletes a customer", func(t *testing.T) {
		path := fmt.Sprintf("/api/customers/%d", customerID)
		recorder := performRequest(router, http.MethodDelete, path, nil, true)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = performRequest(router, http.MethodDelete, path, nil, true)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

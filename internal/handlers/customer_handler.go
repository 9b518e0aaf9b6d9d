package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
	"github.com/abner-serafim/2025-api-arq/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func customerFiltersFromQuery(c *gin.Context) services.CustomerFilters {
	return services.CustomerFilters{
		Name:    c.Query("name"),
		TaxID:   c.Query("tax_id"),
		Phone:   c.Query("phone"),
		Address: c.Query("address"),
		Email:   c.Query("email"),
	}
}

// GET /api/customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), customerFiltersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GET /api/customers/count
func (h *CustomerHandler) Count(c *gin.Context) {
	count, err := h.customerService.Count(c.Request.Context(), customerFiltersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GET /api/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// POST /api/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}
	customer, err := h.customerService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// PUT /api/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}
	customer, err := h.customerService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PATCH /api/customers/:id
func (h *CustomerHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch services.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}
	customer, err := h.customerService.Patch(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted successfully"})
}

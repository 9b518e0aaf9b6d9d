package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
	"github.com/abner-serafim/2025-api-arq/internal/catalog"
	"github.com/abner-serafim/2025-api-arq/internal/logger"
	"github.com/abner-serafim/2025-api-arq/internal/models"
	"github.com/abner-serafim/2025-api-arq/internal/notifier"
	"github.com/abner-serafim/2025-api-arq/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
	catalog      catalog.Catalog
	log          *logger.Logger
	notify       bool
}

func NewOrderHandler(orderService services.OrderService, cat catalog.Catalog, baseLog *logger.Logger, notify bool) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		catalog:      cat,
		log:          baseLog.With("handler", "OrderHandler"),
		notify:       notify,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperr.Validationf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.notify {
		h.sendConfirmations(order)
	}

	c.JSON(http.StatusCreated, order.View(true, nil))
}

// Confirmation messages go out after the commit and never affect the order.
func (h *OrderHandler) sendConfirmations(order *models.Order) {
	if order.ContactPhone != nil {
		go func(phone string, orderID uint, total string) {
			if err := notifier.SendSMS(phone, orderID, total); err != nil {
				h.log.Error("order confirmation SMS failed", "order_id", orderID, "error", err)
			}
		}(*order.ContactPhone, order.ID, order.TotalValue.StringFixed(2))
	}
	if order.OrderEmail != nil {
		go func(email, name string, orderID uint, total string) {
			if err := notifier.SendEmail(email, name, orderID, total); err != nil {
				h.log.Error("order confirmation email failed", "order_id", orderID, "error", err)
			}
		}(*order.OrderEmail, order.CustomerName, order.ID, order.TotalValue.StringFixed(2))
	}
}

// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	filters := services.OrderFilters{
		CustomerID: c.Query("customer_id"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}

	orders, err := h.orderService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, orders[i].View(false, nil))
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/orders/count
func (h *OrderHandler) Count(c *gin.Context) {
	filters := services.OrderFilters{
		CustomerID: c.Query("customer_id"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}

	count, err := h.orderService.Count(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	includeItems := c.Query("include_items") == "true"
	includeCustomer := c.Query("include_customer") == "true"

	order, err := h.orderService.Get(c.Request.Context(), orderID, includeItems)
	if err != nil {
		respondError(c, err)
		return
	}

	// The live customer record next to the frozen snapshot, when asked for.
	var currentCustomer *models.Customer
	if includeCustomer {
		currentCustomer, err = h.catalog.FindCustomer(c.Request.Context(), order.CustomerID)
		if err != nil && !apperr.IsNotFound(err) {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, order.View(includeItems, currentCustomer))
}

// PATCH /api/orders/:id
func (h *OrderHandler) Patch(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch services.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}

	order, err := h.orderService.Patch(c.Request.Context(), orderID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.View(false, nil))
}

// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order and its items deleted successfully"})
}

type addItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// POST /api/orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}
	if req.ProductID == 0 {
		respondError(c, apperr.Validationf("missing product ID in order item"))
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.View(true, nil))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /api/orders/:id/items/:productId
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %w", err))
		return
	}

	order, err := h.orderService.UpdateItem(c.Request.Context(), orderID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.View(true, nil))
}

// DELETE /api/orders/:id/items/:productId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), orderID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.View(true, nil))
}

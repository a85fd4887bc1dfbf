package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soleworks/soleworks-api/models"
	"github.com/soleworks/soleworks-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerName  string          `json:"customerName" binding:"required"`
	CustomerEmail string          `json:"customerEmail" binding:"required,email"`
	ShoeSize      float64         `json:"shoeSize" binding:"required,gt=0"`
	Address       string          `json:"address" binding:"required"`
	ModelType     string          `json:"modelType" binding:"required"`
	Layers        models.LayerMap `json:"layers"`
}

// UpdateOrderStatusRequest represents the request body for a status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderController exposes the order endpoints
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates an order controller
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder handles POST /api/v1/orders - submits a new order (public)
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	order, err := ctl.orders.Create(c.Request.Context(), &services.CreateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		ShoeSize:      req.ShoeSize,
		Address:       req.Address,
		ModelType:     req.ModelType,
		Layers:        req.Layers,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": verr.Message,
			})
			return
		}
		if errors.Is(err, services.ErrDuplicateOrderNumber) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Order number collision, please retry",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

// ListOrders handles GET /api/v1/orders - lists orders with optional
// modelType filter and sortby key (public)
func (ctl *OrderController) ListOrders(c *gin.Context) {
	modelType := c.Query("modelType")
	sortBy := c.Query("sortby")

	orders, err := ctl.orders.List(c.Request.Context(), modelType, sortBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to list orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"orders": orders},
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns a single order (public)
func (ctl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := ctl.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id - updates an order's
// status (admin only)
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	order, err := ctl.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Status must be one of: in production, shipped, delivered, cancelled",
			})
			return
		}
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - removes an order (admin only)
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := ctl.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Order deleted successfully",
	})
}

// parseOrderID resolves the :id route parameter; an unparseable id cannot
// name any order, so it reports not found
func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Order not found",
		})
		return 0, false
	}
	return uint(id), true
}

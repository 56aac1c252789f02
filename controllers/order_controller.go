package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockhub/storefront-service/middleware"
	"github.com/stockhub/storefront-service/models"
	"github.com/stockhub/storefront-service/services"
)

type OrderController struct {
	orders    *services.OrderService
	lifecycle *services.LifecycleService
}

func NewOrderController(orders *services.OrderService, lifecycle *services.LifecycleService) *OrderController {
	return &OrderController{orders: orders, lifecycle: lifecycle}
}

// MyOrders lists the caller's orders, optionally filtered by status.
func (oc *OrderController) MyOrders(c *gin.Context) {
	list, err := oc.orders.MyOrders(c.Request.Context(), middleware.Bearer(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AllOrders lists every order (admin view).
func (oc *OrderController) AllOrders(c *gin.Context) {
	list, err := oc.orders.AllOrders(c.Request.Context(), middleware.Bearer(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Timeline returns the reconciled delivery progress for one order. The
// caller supplies the order's current status, which it already holds
// from the listing.
func (oc *OrderController) Timeline(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	timeline, err := oc.orders.Timeline(c.Request.Context(), orderID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}

type transitionRequest struct {
	CurrentStatus string `json:"currentStatus" binding:"required"`
	NewStatus     string `json:"newStatus" binding:"required"`
}

// RequestTransition stages a status change for the order pending user
// confirmation. Nothing reaches the backend yet.
func (oc *OrderController) RequestTransition(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	current, ok := models.ParseStatus(req.CurrentStatus)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown current status"})
		return
	}

	order := &models.Order{ID: orderID, Status: current}
	staged, err := oc.lifecycle.RequestTransition(sessionID, order, models.OrderStatus(req.NewStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, staged)
}

// StagedTransition returns the pending transition, if any.
func (oc *OrderController) StagedTransition(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	staged, exists := oc.lifecycle.Staged(sessionID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "no transition is pending confirmation"})
		return
	}
	c.JSON(http.StatusOK, staged)
}

// ConfirmTransition commits the staged change through the backend.
func (oc *OrderController) ConfirmTransition(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := oc.lifecycle.ConfirmTransition(c.Request.Context(), sessionID, middleware.Bearer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelTransition discards the staged change without side effects.
func (oc *OrderController) CancelTransition(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := oc.lifecycle.CancelTransitionRequest(sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transition request discarded"})
}

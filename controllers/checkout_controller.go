package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stockhub/storefront-service/middleware"
	"github.com/stockhub/storefront-service/services"
)

type CheckoutController struct {
	checkout  *services.CheckoutService
	inventory *services.InventoryService
}

func NewCheckoutController(checkout *services.CheckoutService, inventory *services.InventoryService) *CheckoutController {
	return &CheckoutController{checkout: checkout, inventory: inventory}
}

// Summary refreshes the full stock snapshot in one round trip and
// returns the checkout view: enriched lines, totals and the checkout
// decision.
func (cc *CheckoutController) Summary(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	if _, err := cc.inventory.Refresh(ctx, sessionID, services.ScopeAll, nil); err != nil {
		respondError(c, err)
		return
	}

	summary, err := cc.checkout.Summary(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PlaceOrder submits the checkout form. An Idempotency-Key header guards
// against duplicate submissions; absent one, a fresh key is minted so a
// gateway retry of this exact request is still deduplicated.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in services.PlaceOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	in.IdempotencyKey = c.GetHeader("Idempotency-Key")
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = uuid.NewString()
	}

	order, err := cc.checkout.PlaceOrder(c.Request.Context(), sessionID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// LatestInvoice returns the last successfully placed order for the
// session.
func (cc *CheckoutController) LatestInvoice(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := cc.checkout.LatestInvoice(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no invoice for this session"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/middleware"
	"github.com/stockhub/storefront-service/models"
	"github.com/stockhub/storefront-service/services"
)

type CartController struct {
	carts     *services.CartService
	inventory *services.InventoryService
}

func NewCartController(carts *services.CartService, inventory *services.InventoryService) *CartController {
	return &CartController{carts: carts, inventory: inventory}
}

type addItemRequest struct {
	ItemID   int64 `json:"id" binding:"required"`
	Quantity int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the session's cart enriched with live stock and
// prices. The snapshot is refreshed for the cart's items first so the
// view reflects current availability without a full catalog fetch.
func (cc *CartController) GetCart(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	cart, err := cc.carts.Get(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !cart.IsEmpty() {
		ids := make([]int64, 0, len(cart.Items))
		for _, line := range cart.Items {
			ids = append(ids, line.ItemID)
		}
		if _, err := cc.inventory.Refresh(ctx, sessionID, services.ScopeCart, ids); err != nil {
			respondError(c, err)
			return
		}
	}

	cc.renderCart(c, sessionID, cart)
}

// AddItem adds an item (default quantity 1) to the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		respondError(c, apperrors.New(apperrors.KindInvalidQuantity, "quantity must be positive"))
		return
	}

	ctx := c.Request.Context()

	// The stock gate reads the snapshot, so make sure this item is in it.
	if _, err := cc.inventory.Refresh(ctx, sessionID, services.ScopeCart, []int64{req.ItemID}); err != nil {
		respondError(c, err)
		return
	}

	cart, err := cc.carts.Add(ctx, sessionID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	cc.renderCart(c, sessionID, cart)
}

// SetQuantity replaces one line's quantity.
func (cc *CartController) SetQuantity(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()
	if _, err := cc.inventory.Refresh(ctx, sessionID, services.ScopeCart, []int64{itemID}); err != nil {
		respondError(c, err)
		return
	}

	cart, err := cc.carts.SetQuantity(ctx, sessionID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	cc.renderCart(c, sessionID, cart)
}

// RemoveItem deletes one line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	cart, err := cc.carts.Remove(c.Request.Context(), sessionID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	cc.renderCart(c, sessionID, cart)
}

// ClearCart removes every line and deletes the persisted cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := cc.carts.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

func (cc *CartController) renderCart(c *gin.Context, sessionID string, cart *models.Cart) {
	snapshot := cc.inventory.Snapshot(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"items":    models.EnrichLines(cart.Items, snapshot),
		"subtotal": models.PriceLines(cart.Items, snapshot),
	})
}

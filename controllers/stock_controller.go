package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockhub/storefront-service/clients"
)

// StockController proxies catalog reads so the storefront has a single
// origin. Stock browsing needs no session.
type StockController struct {
	backend clients.API
}

func NewStockController(backend clients.API) *StockController {
	return &StockController{backend: backend}
}

func (sc *StockController) ListStock(c *gin.Context) {
	records, err := sc.backend.ListStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (sc *StockController) GetStock(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	record, err := sc.backend.GetStock(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/stockhub/storefront-service/controllers"
	"github.com/stockhub/storefront-service/middleware"
)

// Register wires every endpoint. Catalog reads are public; everything
// touching a session's cart, checkout or orders requires the bearer
// credential from the auth layer.
func Register(
	r *gin.Engine,
	jwtSecret []byte,
	stock *controllers.StockController,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	orders *controllers.OrderController,
) {
	api := r.Group("/api")

	api.GET("/stock", stock.ListStock)
	api.GET("/stock/:item_id", stock.GetStock)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtSecret))

	authed.GET("/cart", cart.GetCart)
	authed.POST("/cart/items", cart.AddItem)
	authed.PUT("/cart/items/:item_id", cart.SetQuantity)
	authed.DELETE("/cart/items/:item_id", cart.RemoveItem)
	authed.DELETE("/cart", cart.ClearCart)

	authed.GET("/checkout", checkout.Summary)
	authed.POST("/checkout/place-order", checkout.PlaceOrder)
	authed.GET("/session/invoice", checkout.LatestInvoice)

	authed.GET("/orders/my-orders", orders.MyOrders)
	authed.GET("/orders/all", middleware.RequireRole("ADMIN"), orders.AllOrders)
	authed.GET("/orders/:order_id/timeline", orders.Timeline)
	authed.POST("/orders/:order_id/transition", orders.RequestTransition)
	authed.GET("/orders/transition", orders.StagedTransition)
	authed.POST("/orders/transition/confirm", orders.ConfirmTransition)
	authed.DELETE("/orders/transition", orders.CancelTransition)
}

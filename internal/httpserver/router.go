package httpserver

import (
	"log"

	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
	wishlistsvc "storefront/internal/service/wishlist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps bundles the services the router needs.
type Deps struct {
	AuthSvc    *authsvc.Service
	CatalogSvc *catalogsvc.Service
	Carts      *cartsvc.Manager
	Wishlists  *wishlistsvc.Manager
	OrderSvc   *ordersvc.Service
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Session-ID")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/stream", streamProductsHandler(deps.CatalogSvc, logger))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc))
	router.GET("/categories/:name/products", listCategoryProductsHandler(deps.CatalogSvc))

	router.POST("/sessions", openSessionHandler(deps.Carts))
	router.DELETE("/sessions", closeSessionHandler(deps.Carts))

	cart := router.Group("/cart", cartSessionMiddleware(deps.Carts))
	{
		cart.GET("", getCartHandler())
		cart.POST("/items", addCartItemHandler())
		cart.PATCH("/items/:index", updateCartItemHandler())
		cart.DELETE("/items/:index", removeCartItemHandler())
		cart.DELETE("", clearCartHandler())
	}

	authed := router.Group("/", authMiddleware(deps.AuthSvc))
	{
		authed.POST("/logout", logoutHandler(deps.AuthSvc, deps.Wishlists))

		authed.GET("/wishlist", getWishlistHandler(deps.Wishlists))
		authed.POST("/wishlist/toggle", toggleWishlistHandler(deps.Wishlists))
		authed.GET("/wishlist/stream", streamWishlistHandler(deps.Wishlists, logger))

		authed.POST("/orders", cartSessionMiddleware(deps.Carts), submitOrderHandler(deps.OrderSvc))
		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
		authed.GET("/orders/stream", streamOrdersHandler(deps.OrderSvc, logger))
		authed.GET("/orders/:key", getOrderHandler(deps.OrderSvc))
		authed.GET("/orders/:key/tracking", trackOrderHandler(deps.OrderSvc))
		authed.DELETE("/orders/:key", cancelOrderHandler(deps.OrderSvc))
	}

	// Fulfillment systems advance order status; the route is expected to be
	// reachable only from the trusted network.
	router.POST("/internal/orders/:key/status", advanceOrderStatusHandler(deps.OrderSvc))

	return router
}

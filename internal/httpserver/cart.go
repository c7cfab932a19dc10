package httpserver

import (
	"net/http"
	"strconv"

	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

const cartCtxKey = "cart"

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type updateItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func openSessionHandler(carts *cartsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"sessionId": carts.Open()})
	}
}

// closeSessionHandler discards the session's cart. Closing an unknown session
// is a no-op so clients can retry on flaky networks.
func closeSessionHandler(carts *cartsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
			return
		}
		carts.Close(sessionID)
		c.Status(http.StatusNoContent)
	}
}

// cartSessionMiddleware resolves the X-Session-ID header to the session's
// cart.
func cartSessionMiddleware(carts *cartsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
			return
		}
		cart := carts.Get(sessionID)
		if cart == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown session"})
			return
		}
		c.Set(cartCtxKey, cart)
		c.Next()
	}
}

func sessionCart(c *gin.Context) *cartsvc.Cart {
	cart, _ := c.MustGet(cartCtxKey).(*cartsvc.Cart)
	return cart
}

func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := sessionCart(c)
		c.JSON(http.StatusOK, gin.H{"lines": cart.Lines(), "totals": cart.Totals()})
	}
}

func addCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		cart := sessionCart(c)
		if err := cart.AddItem(c.Request.Context(), in.ProductID, in.Quantity); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": cart.Lines(), "totals": cart.Totals()})
	}
}

func updateCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
			return
		}
		var in updateItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		cart := sessionCart(c)
		if err := cart.UpdateQuantity(index, in.Delta); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": cart.Lines(), "totals": cart.Totals()})
	}
}

func removeCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
			return
		}
		cart := sessionCart(c)
		if err := cart.RemoveLine(index); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": cart.Lines(), "totals": cart.Totals()})
	}
}

func clearCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := sessionCart(c)
		cart.Clear()
		c.JSON(http.StatusOK, gin.H{"lines": cart.Lines(), "totals": cart.Totals()})
	}
}

package httpserver

import (
	"log"
	"net/http"

	wishlistsvc "storefront/internal/service/wishlist"

	"github.com/gin-gonic/gin"
)

type toggleRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func getWishlistHandler(wishlists *wishlistsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, err := wishlists.ForUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"productIds": svc.ProductIDs()})
	}
}

func toggleWishlistHandler(wishlists *wishlistsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in toggleRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		svc, err := wishlists.ForUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.Toggle(c.Request.Context(), in.ProductID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// streamWishlistHandler pushes the wishlisted product id set as server-sent
// events on every membership change.
func streamWishlistHandler(wishlists *wishlistsvc.Manager, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, err := wishlists.ForUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			logger.Printf("wishlist stream: subscribe error=%v", err)
			respondError(c, err)
			return
		}

		updates := make(chan []string, 1)
		unsubscribe := svc.Watch(func(ids []string) {
			sendLatest(updates, ids)
		})
		defer unsubscribe()

		streamSSE(c, func() (string, any, bool) {
			ids, ok := recvLatest(c.Request.Context(), updates)
			if !ok {
				return "", nil, false
			}
			return "wishlist", gin.H{"productIds": ids}, true
		})
	}
}

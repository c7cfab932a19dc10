package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

type submitOrderRequest struct {
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type advanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func submitOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in submitOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.Submit(c.Request.Context(), currentUser(c), sessionCart(c), in.Address, in.Phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListByUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), currentUser(c).ID, c.Param("key"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func trackOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, steps, err := svc.Track(c.Request.Context(), currentUser(c).ID, c.Param("key"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transactionId": order.TransactionID,
			"status":        order.Status,
			"steps":         steps,
		})
	}
}

func cancelOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Cancel(c.Request.Context(), currentUser(c).ID, c.Param("key")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func advanceOrderStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in advanceStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.AdvanceStatus(c.Request.Context(), c.Param("key"), in.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// streamOrdersHandler pushes the user's order list as server-sent events on
// every order change.
func streamOrdersHandler(svc *ordersvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		updates := make(chan []domain.Order, 1)
		unsubscribe, err := svc.SubscribeByUser(c.Request.Context(), currentUser(c).ID, func(orders []domain.Order) {
			sendLatest(updates, orders)
		})
		if err != nil {
			logger.Printf("order stream: subscribe error=%v", err)
			respondError(c, err)
			return
		}
		defer unsubscribe()

		streamSSE(c, func() (string, any, bool) {
			orders, ok := recvLatest(c.Request.Context(), updates)
			if !ok {
				return "", nil, false
			}
			return "orders", gin.H{"orders": orders}, true
		})
	}
}

package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func listCategoriesHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func listCategoryProductsHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListByCategory(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// streamProductsHandler pushes the product list as server-sent events, one
// event per catalog change. A category query parameter narrows the stream.
func streamProductsHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		updates := make(chan []domain.Product, 1)
		push := func(products []domain.Product) {
			sendLatest(updates, products)
		}

		var unsubscribe func()
		var err error
		if category := c.Query("category"); category != "" {
			unsubscribe, err = svc.SubscribeByCategory(c.Request.Context(), category, push)
		} else {
			unsubscribe, err = svc.SubscribeAll(c.Request.Context(), push)
		}
		if err != nil {
			logger.Printf("product stream: subscribe error=%v", err)
			respondError(c, err)
			return
		}
		defer unsubscribe()

		streamSSE(c, func() (string, any, bool) {
			products, ok := recvLatest(c.Request.Context(), updates)
			if !ok {
				return "", nil, false
			}
			return "products", gin.H{"products": products}, true
		})
	}
}

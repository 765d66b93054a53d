package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/app/service"
	"github.com/qkart/storefront/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// ListProducts returns the full catalog snapshot.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products := ctrl.catalogService.Snapshot()
	if !ctrl.catalogService.Loaded() {
		// Cold cache: fetch synchronously once instead of serving an
		// empty page.
		if err := ctrl.catalogService.Refresh(c.Request.Context()); err != nil {
			respondBackendError(c, err)
			return
		}
		products = ctrl.catalogService.Snapshot()
	}

	log.Debug("Serving product catalog", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

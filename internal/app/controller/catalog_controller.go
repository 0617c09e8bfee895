package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendamx/tienda-engine/internal/app/catalog"
	"github.com/tiendamx/tienda-engine/internal/app/service"
	apperrors "github.com/tiendamx/tienda-engine/internal/errors"
	"github.com/tiendamx/tienda-engine/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// List returns the unfiltered catalog
// GET /api/v1/catalog
func (ctrl *CatalogController) List(c *gin.Context) {
	products := ctrl.catalogService.All()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ByCategory filters by category name; "ofertas"/"offers" is the
// reserved promotions pseudo-category
// GET /api/v1/catalog/category/:name
func (ctrl *CatalogController) ByCategory(c *gin.Context) {
	products := ctrl.catalogService.ByCategory(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Search matches the query against name and category
// GET /api/v1/catalog/search?q=
func (ctrl *CatalogController) Search(c *gin.Context) {
	products := ctrl.catalogService.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Categories returns the distinct category labels
// GET /api/v1/catalog/categories
func (ctrl *CatalogController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": ctrl.catalogService.DistinctCategories(),
	})
}

// ProductByID resolves one product for the details dialog
// GET /api/v1/catalog/products/:id
func (ctrl *CatalogController) ProductByID(c *gin.Context) {
	product, ok := ctrl.catalogService.ProductByID(c.Param("id"))
	if !ok {
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Producto no encontrado.")
		return
	}
	c.JSON(http.StatusOK, product)
}

// Refresh reloads the feed. On failure the previous catalog is kept
// and the classified failure is returned for inline display.
// POST /api/v1/catalog/refresh
func (ctrl *CatalogController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.Load(c.Request.Context())
	if err != nil {
		log.Warn("Catalog refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
		switch {
		case errors.Is(err, catalog.ErrHTMLResponse):
			apperrors.BadGateway(c, apperrors.FeedHTMLResponse, "La API devolvió HTML (¿redirección a login?).")
		case errors.Is(err, catalog.ErrEmptyFeed):
			apperrors.NotFound(c, apperrors.FeedEmpty, "No llegaron productos.")
		default:
			apperrors.BadGateway(c, apperrors.FeedUnavailable, "Error cargando productos.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendamx/tienda-engine/internal/app/service"
	apperrors "github.com/tiendamx/tienda-engine/internal/errors"
	"github.com/tiendamx/tienda-engine/internal/middleware"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
}

func NewCartController(cartService service.CartService, catalogService service.CatalogService) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

type AddItemRequest struct {
	SKU   string  `json:"sku" binding:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty" binding:"required"`
}

type QuoteRequest struct {
	Price float64 `json:"price"`
	Qty   int     `json:"qty" binding:"required"`
}

// GetCart returns the current cart snapshot
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.cartService.Snapshot())
}

// AddItem adds a line to the cart. The ledger trusts its input, so
// the positive-quantity and non-negative-price checks live here.
// POST /api/v1/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-to-cart payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos del producto no son válidos")
		return
	}

	if req.Qty <= 0 {
		apperrors.BadRequest(c, apperrors.CartInvalidQty, "Cantidad no válida.")
		return
	}
	if req.Price < 0 {
		apperrors.BadRequest(c, apperrors.CartInvalidPrice, "Precio no válido.")
		return
	}

	name := req.Name
	if name == "" {
		// The grid sends the name along with the sku; fall back to
		// the catalog when a caller omits it. The sku on an add
		// action is the product slug.
		if p, ok := ctrl.catalogService.ProductBySlug(req.SKU); ok {
			name = p.Name
		}
	}

	cart := ctrl.cartService.AddItem(c.Request.Context(), req.SKU, name, req.Price, req.Qty)

	log.Info("Cart line added", map[string]interface{}{
		"sku":   req.SKU,
		"qty":   req.Qty,
		"count": cart.Count,
	})
	c.JSON(http.StatusOK, cart)
}

// Quote computes unit price times quantity for the confirmation
// dialog. Read-only, mutates nothing.
// POST /api/v1/cart/quote
func (ctrl *CartController) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos no son válidos")
		return
	}
	if req.Qty <= 0 {
		apperrors.BadRequest(c, apperrors.CartInvalidQty, "Cantidad no válida.")
		return
	}
	if req.Price < 0 {
		apperrors.BadRequest(c, apperrors.CartInvalidPrice, "Precio no válido.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unit":  req.Price,
		"qty":   req.Qty,
		"total": ctrl.catalogService.UnitTotal(req.Price, req.Qty),
	})
}

// RemoveItem removes every line with the sku, at any price
// DELETE /api/v1/cart/:sku
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		apperrors.BadRequest(c, apperrors.CartInvalidSKU, "Producto no válido.")
		return
	}

	cart := ctrl.cartService.RemoveItem(c.Request.Context(), sku)
	c.JSON(http.StatusOK, cart)
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.cartService.Clear(c.Request.Context()))
}

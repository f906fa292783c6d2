package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-service/internal/cart"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
	"storefront-service/internal/translation"
)

// CartHandler serves the visitor's shopping cart
type CartHandler struct {
	catalog *services.CatalogService
	carts   *cart.Sessions
}

func NewCartHandler(catalog *services.CatalogService, carts *cart.Sessions) *CartHandler {
	return &CartHandler{catalog: catalog, carts: carts}
}

// visitorSession returns the X-Cart-Session id, issuing one when absent.
func visitorSession(c *gin.Context) string {
	id := c.GetHeader(middleware.CartSessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Header(middleware.CartSessionHeader, id)
	return id
}

// cart returns the visitor's cart, answering 404 when the merchant has no
// storefront.
func (h *CartHandler) cart(c *gin.Context) (*cart.Cart, bool) {
	if _, ok := h.catalog.Storefront(c.Request.Context(), merchantID(c), requestLocale(c)); !ok {
		respondError(c, http.StatusNotFound, "STORE_NOT_FOUND", "No storefront exists for this merchant")
		return nil, false
	}
	return h.carts.Get(merchantID(c), visitorSession(c)), true
}

func cartResponse(items *cart.Cart, locale translation.Locale) models.CartResponse {
	sum := items.Summary()
	return models.CartResponse{
		Items:             items.Items(),
		ItemCount:         items.ItemCount(),
		Subtotal:          sum.Subtotal,
		FormattedSubtotal: translation.FormatAmount(sum.Subtotal, locale),
		TaxRate:           cart.TaxRate,
		Tax:               sum.Tax,
		FormattedTax:      translation.FormatAmount(sum.Tax, locale),
		Total:             sum.Total,
		FormattedTotal:    translation.FormatAmount(sum.Total, locale),
	}
}

// GetCart returns the cart
// @Summary Get cart
// @Tags cart
// @Produce json
// @Param X-Merchant-ID header string true "Merchant ID"
// @Param X-Cart-Session header string false "Cart session"
// @Success 200 {object} models.CartResponse
// @Router /storefront/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	items, ok := h.cart(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, cartResponse(items, requestLocale(c)))
}

// AddItem adds an active product in a chosen size and color
// @Summary Add to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Merchant-ID header string true "Merchant ID"
// @Param item body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.CartResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	locale := requestLocale(c)
	front, ok := h.catalog.Storefront(c.Request.Context(), merchantID(c), locale)
	if !ok {
		respondError(c, http.StatusNotFound, "STORE_NOT_FOUND", "No storefront exists for this merchant")
		return
	}
	product, ok := front.Product(req.ProductID)
	if !ok {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	if len(product.Sizes) > 0 && !slices.Contains(product.Sizes, req.Size) {
		respondError(c, http.StatusBadRequest, "INVALID_SIZE", "Size is not offered for this product")
		return
	}
	if len(product.Colors) > 0 && !slices.Contains(product.Colors, req.Color) {
		respondError(c, http.StatusBadRequest, "INVALID_COLOR", "Color is not offered for this product")
		return
	}

	items := h.carts.Get(merchantID(c), visitorSession(c))
	err := items.Add(models.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Size:     req.Size,
		Color:    req.Color,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cartResponse(items, locale))
}

// UpdateItem sets a row's quantity; zero or less removes it
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	items, ok := h.cart(c)
	if !ok {
		return
	}
	if err := items.UpdateQuantity(req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cartResponse(items, requestLocale(c)))
}

// RemoveItem deletes a row
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req models.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	items, ok := h.cart(c)
	if !ok {
		return
	}
	if err := items.Remove(req.ProductID, req.Size, req.Color); err != nil {
		respondCartError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cartResponse(items, requestLocale(c)))
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	items, ok := h.cart(c)
	if !ok {
		return
	}
	items.Clear()
	respondOK(c, http.StatusOK, cartResponse(items, requestLocale(c)))
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be positive")
	case errors.Is(err, cart.ErrQuantityLimit):
		respondError(c, http.StatusBadRequest, "QUANTITY_LIMIT", fmt.Sprintf("Quantity per item cannot exceed %d", cart.MaxQuantity))
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Item is not in the cart")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/services"
)

// StorefrontHandler serves the public, read-only catalog
type StorefrontHandler struct {
	service *services.CatalogService
}

func NewStorefrontHandler(service *services.CatalogService) *StorefrontHandler {
	return &StorefrontHandler{service: service}
}

func (h *StorefrontHandler) storefront(c *gin.Context) (*services.Storefront, bool) {
	front, ok := h.service.Storefront(c.Request.Context(), merchantID(c), requestLocale(c))
	if !ok {
		respondError(c, http.StatusNotFound, "STORE_NOT_FOUND", "No storefront exists for this merchant")
		return nil, false
	}
	return front, true
}

// GetCategories lists the active categories
// @Summary Storefront categories
// @Tags storefront
// @Produce json
// @Param X-Merchant-ID header string true "Merchant ID"
// @Param lang query string false "Locale (en or ar)"
// @Success 200 {array} models.StorefrontCategory
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/categories [get]
func (h *StorefrontHandler) GetCategories(c *gin.Context) {
	front, ok := h.storefront(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, front.Categories())
}

// GetSubCategories lists the active subcategories of an active category
func (h *StorefrontHandler) GetSubCategories(c *gin.Context) {
	front, ok := h.storefront(c)
	if !ok {
		return
	}
	categoryID := c.Param("id")
	if _, ok := front.ActiveCategory(categoryID); !ok {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}
	respondOK(c, http.StatusOK, front.SubCategories(categoryID))
}

// GetProducts lists active products of a category, narrowed by ?subCategory=
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	front, ok := h.storefront(c)
	if !ok {
		return
	}
	categoryID := c.Param("id")
	if _, ok := front.ActiveCategory(categoryID); !ok {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}
	respondOK(c, http.StatusOK, front.Products(categoryID, c.Query("subCategory")))
}

// GetProduct returns one active product
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	front, ok := h.storefront(c)
	if !ok {
		return
	}
	product, ok := front.Product(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	respondOK(c, http.StatusOK, product)
}

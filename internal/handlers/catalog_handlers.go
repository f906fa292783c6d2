package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// CatalogHandler serves the merchant catalog administration API
type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListCategories returns every category of the merchant
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.CategoryView
// @Security BearerAuth
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	respondOK(c, http.StatusOK, h.service.ListCategories(c.Request.Context(), merchantID(c)))
}

// CreateCategory creates a category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryInput true "Category"
// @Success 201 {object} models.CategoryView
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.service.CreateCategory(c.Request.Context(), merchantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, view)
}

// UpdateCategory applies a partial update
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.CategoryPatch true "Fields to change"
// @Success 200 {object} models.CategoryView
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req models.CategoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.service.UpdateCategory(c.Request.Context(), merchantID(c), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// DeleteCategory removes a category and everything that depends on it
// @Summary Delete category
// @Description Also removes subcategories left without a parent and their products
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.DeleteResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	res, err := h.service.DeleteCategory(c.Request.Context(), merchantID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// ListSubCategories returns subcategories, optionally by ?categoryId=
func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	respondOK(c, http.StatusOK, h.service.ListSubCategories(c.Request.Context(), merchantID(c), c.Query("categoryId")))
}

func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req models.SubCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.service.CreateSubCategory(c.Request.Context(), merchantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, view)
}

func (h *CatalogHandler) UpdateSubCategory(c *gin.Context) {
	var req models.SubCategoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.service.UpdateSubCategory(c.Request.Context(), merchantID(c), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

func (h *CatalogHandler) DeleteSubCategory(c *gin.Context) {
	res, err := h.service.DeleteSubCategory(c.Request.Context(), merchantID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// ListProducts returns products, optionally by ?category= and ?subCategory=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := h.service.ListProducts(c.Request.Context(), merchantID(c), c.Query("category"), c.Query("subCategory"))
	respondOK(c, http.StatusOK, products)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.service.CreateProduct(c.Request.Context(), merchantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, view)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req models.ProductPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.service.UpdateProduct(c.Request.Context(), merchantID(c), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteProduct(c.Request.Context(), merchantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, models.DeleteResponse{ID: id, RemovedSubCategoryIDs: []string{}, RemovedProductIDs: []string{id}, RemovedProductCount: 1})
}

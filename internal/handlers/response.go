package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
	"storefront-service/internal/translation"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: message},
	})
}

func respondErrorField(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: message, Field: field},
	})
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}

// respondServiceError maps catalog service errors onto the envelope.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondErrorField(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, verr.Field)
	case errors.Is(err, services.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	case errors.Is(err, services.ErrSubCategoryNotFound):
		respondError(c, http.StatusNotFound, "SUBCATEGORY_NOT_FOUND", "Subcategory not found")
	case errors.Is(err, services.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// requestLocale picks the display locale from ?lang= or Accept-Language.
func requestLocale(c *gin.Context) translation.Locale {
	if lang := c.Query("lang"); lang != "" {
		return translation.ParseLocale(lang)
	}
	return translation.ParseLocale(c.GetHeader("Accept-Language"))
}

func merchantID(c *gin.Context) string {
	return c.GetString("merchant_id")
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Headers understood by the storefront API.
const (
	MerchantHeader    = "X-Merchant-ID"
	CartSessionHeader = "X-Cart-Session"
)

// MerchantMiddleware scopes storefront requests to the merchant named in
// the X-Merchant-ID header. Requests without one are rejected.
func MerchantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID := c.GetHeader(MerchantHeader)
		if merchantID == "" {
			merchantID = c.Query("merchantId")
		}
		if merchantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MERCHANT_REQUIRED",
					"message": "Merchant ID is required. Include the X-Merchant-ID header.",
				},
			})
			c.Abort()
			return
		}
		c.Set("merchant_id", merchantID)
		c.Next()
	}
}

// GetMerchantID retrieves the merchant ID from gin context
func GetMerchantID(c *gin.Context) string {
	return c.GetString("merchant_id")
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront-service/internal/services"
)

type stubParser struct{}

func (stubParser) ParseToken(token string) (*services.SessionClaims, error) {
	if token == "good" {
		return &services.SessionClaims{MerchantID: "m1", Email: "a@example.com"}, nil
	}
	return nil, errors.New("bad token")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func echoMerchant(c *gin.Context) {
	c.String(http.StatusOK, GetMerchantID(c))
}

func TestAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/p", AuthMiddleware(stubParser{}), echoMerchant)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "INVALID_TOKEN_FORMAT"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"ok", "Bearer good", http.StatusOK, "m1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestMerchantMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/s", MerchantMiddleware(), echoMerchant)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MERCHANT_REQUIRED")

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.Header.Set(MerchantHeader, "m7")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "m7", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s?merchantId=m8", nil))
	assert.Equal(t, "m8", w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 2)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	assert.True(t, limiter.Allow("10.0.0.2"), "budgets are per client")
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS("https://shop.example.com"))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

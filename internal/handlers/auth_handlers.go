package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// AuthHandler handles merchant signup, login and profile requests
type AuthHandler struct {
	auth     *services.AuthService
	catalogs *catalog.Manager
	logger   *logrus.Entry
}

func NewAuthHandler(auth *services.AuthService, catalogs *catalog.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		catalogs: catalogs,
		logger:   logger.WithField("component", "auth_handler"),
	}
}

// Signup registers a merchant
// @Summary Register a merchant
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Merchant details"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.auth.Signup(c.Request.Context(), req)
	if errors.Is(err, services.ErrEmailTaken) {
		respondError(c, http.StatusConflict, "EMAIL_TAKEN", "A merchant with this email already exists")
		return
	}
	if errors.Is(err, services.ErrPasswordTooLong) {
		respondErrorField(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "password")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Signup failed")
		respondError(c, http.StatusInternalServerError, "SIGNUP_FAILED", "Failed to register merchant")
		return
	}

	// first authenticated session seeds the catalog
	h.catalogs.ForMerchant(c.Request.Context(), resp.Merchant.ID)
	respondOK(c, http.StatusCreated, resp)
}

// Login authenticates a merchant
// @Summary Merchant login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Login failed")
		respondError(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	h.catalogs.ForMerchant(c.Request.Context(), resp.Merchant.ID)
	respondOK(c, http.StatusOK, resp)
}

// GetProfile returns the authenticated merchant
func (h *AuthHandler) GetProfile(c *gin.Context) {
	merchant, err := h.auth.GetMerchant(c.Request.Context(), merchantID(c))
	if errors.Is(err, services.ErrMerchantNotFound) {
		respondError(c, http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}
	respondOK(c, http.StatusOK, merchant)
}

// UpdateProfile applies a partial profile update
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	merchant, err := h.auth.UpdateMerchant(c.Request.Context(), merchantID(c), req)
	switch {
	case errors.Is(err, services.ErrMerchantNotFound):
		respondError(c, http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not found")
	case errors.Is(err, services.ErrEmailTaken):
		respondError(c, http.StatusConflict, "EMAIL_TAKEN", "A merchant with this email already exists")
	case err != nil:
		h.logger.WithError(err).Error("Profile update failed")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
	default:
		respondOK(c, http.StatusOK, merchant)
	}
}

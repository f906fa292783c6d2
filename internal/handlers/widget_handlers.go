package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/widget"
)

// WidgetHandler manages the embeddable voice widget settings
type WidgetHandler struct {
	repo      *widget.Repository
	scriptURL string
	logger    *logrus.Entry
}

func NewWidgetHandler(repo *widget.Repository, scriptURL string, logger *logrus.Logger) *WidgetHandler {
	if scriptURL == "" {
		scriptURL = widget.DefaultScriptURL
	}
	return &WidgetHandler{
		repo:      repo,
		scriptURL: scriptURL,
		logger:    logger.WithField("component", "widget_handler"),
	}
}

// SnippetResponse carries the embed code
type SnippetResponse struct {
	Snippet string        `json:"snippet"`
	Config  widget.Config `json:"config"`
}

// GetConfig returns the merchant's widget configuration
// @Summary Get widget configuration
// @Tags widget
// @Produce json
// @Success 200 {object} widget.Config
// @Security BearerAuth
// @Router /widget [get]
func (h *WidgetHandler) GetConfig(c *gin.Context) {
	cfg, err := h.repo.Get(c.Request.Context(), merchantID(c))
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load widget config, serving defaults")
	}
	respondOK(c, http.StatusOK, cfg)
}

// UpdateConfig replaces the widget configuration
// @Summary Update widget configuration
// @Tags widget
// @Accept json
// @Produce json
// @Param config body widget.Config true "Widget configuration"
// @Success 200 {object} widget.Config
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /widget [put]
func (h *WidgetHandler) UpdateConfig(c *gin.Context) {
	cfg := widget.DefaultConfig()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBindError(c, err)
		return
	}
	err := h.repo.Save(c.Request.Context(), merchantID(c), cfg)
	var verr *widget.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: verr.Message, Field: verr.Field},
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to save widget config")
		respondError(c, http.StatusInternalServerError, "WIDGET_SAVE_FAILED", "Failed to save widget configuration")
		return
	}
	respondOK(c, http.StatusOK, cfg)
}

// GetSnippet renders the embed code for the saved configuration
func (h *WidgetHandler) GetSnippet(c *gin.Context) {
	id := merchantID(c)
	cfg, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load widget config, serving defaults")
	}
	snippet, err := widget.Snippet(id, cfg, h.scriptURL)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render widget snippet")
		respondError(c, http.StatusInternalServerError, "SNIPPET_FAILED", "Failed to render snippet")
		return
	}
	respondOK(c, http.StatusOK, SnippetResponse{Snippet: snippet, Config: cfg})
}

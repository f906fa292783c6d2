package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
	"storefront-service/internal/translation"
	"storefront-service/internal/voice"
)

// VoiceHandler drives a visitor's voice shopping session
type VoiceHandler struct {
	catalog      *services.CatalogService
	hub          *voice.Hub
	pollInterval time.Duration
	logger       *logrus.Entry
}

func NewVoiceHandler(catalog *services.CatalogService, hub *voice.Hub, pollInterval time.Duration, logger *logrus.Logger) *VoiceHandler {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &VoiceHandler{
		catalog:      catalog,
		hub:          hub,
		pollInterval: pollInterval,
		logger:       logger.WithField("component", "voice_handler"),
	}
}

// StartVoiceRequest optionally overrides the request locale
type StartVoiceRequest struct {
	Locale string `json:"locale"`
}

// VoiceResponse pairs the client start parameters with the session status
type VoiceResponse struct {
	Start  *voice.StartParams `json:"start,omitempty"`
	Status voice.Status       `json:"status"`
}

// menu lists every active category with its active subcategories.
func menu(front *services.Storefront, lookup voice.LookupFunc) string {
	store := front.Catalog()
	categories := store.ActiveCategories()
	seen := make(map[string]bool)
	var subs []models.SubCategory
	for _, c := range categories {
		for _, sub := range store.ActiveSubCategories(c.ID) {
			if !seen[sub.ID] {
				seen[sub.ID] = true
				subs = append(subs, sub)
			}
		}
	}
	return voice.BuildMenu(categories, subs, lookup)
}

// Start begins a conversation with the merchant's menu
// @Summary Start voice agent
// @Tags voice
// @Accept json
// @Produce json
// @Param X-Merchant-ID header string true "Merchant ID"
// @Param request body StartVoiceRequest false "Locale override"
// @Success 200 {object} VoiceResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/voice/start [post]
func (h *VoiceHandler) Start(c *gin.Context) {
	var req StartVoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	locale := requestLocale(c)
	if req.Locale != "" {
		locale = translation.ParseLocale(req.Locale)
	}

	front, ok := h.catalog.Storefront(c.Request.Context(), merchantID(c), locale)
	if !ok {
		respondError(c, http.StatusNotFound, "STORE_NOT_FOUND", "No storefront exists for this merchant")
		return
	}

	session := h.hub.Session(merchantID(c), visitorSession(c))
	params, err := session.Start(c.Request.Context(), locale, voice.StartParams{
		Params: map[string]any{voice.MenuParam: menu(front, h.catalog.Lookup)},
		Tools:  voice.NavigationTools(),
	})
	if err != nil {
		h.logger.WithError(err).WithField("merchant_id", merchantID(c)).Error("Failed to start voice agent")
		respondError(c, http.StatusBadGateway, "VOICE_START_FAILED", "Failed to start voice agent")
		return
	}
	respondOK(c, http.StatusOK, VoiceResponse{Start: &params, Status: session.Status()})
}

// Stop ends the conversation
func (h *VoiceHandler) Stop(c *gin.Context) {
	session, ok := h.hub.Lookup(merchantID(c), visitorSession(c))
	if !ok {
		respondOK(c, http.StatusOK, VoiceResponse{Status: voice.Status{State: "inactive"}})
		return
	}
	if err := session.Stop(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Failed to stop voice agent")
		respondError(c, http.StatusBadGateway, "VOICE_STOP_FAILED", "Failed to stop voice agent")
		return
	}
	respondOK(c, http.StatusOK, VoiceResponse{Status: session.Status()})
}

// Refresh restarts the conversation in its current locale
func (h *VoiceHandler) Refresh(c *gin.Context) {
	session, ok := h.hub.Lookup(merchantID(c), visitorSession(c))
	if !ok {
		respondError(c, http.StatusConflict, "NO_ACTIVE_SESSION", "No voice conversation to refresh")
		return
	}
	params, err := session.Refresh(c.Request.Context())
	if errors.Is(err, voice.ErrNothingToRefresh) {
		respondError(c, http.StatusConflict, "NO_ACTIVE_SESSION", "No voice conversation to refresh")
		return
	}
	if err != nil {
		h.logger.WithError(err).Warn("Failed to refresh voice agent")
		respondError(c, http.StatusBadGateway, "VOICE_REFRESH_FAILED", "Failed to refresh voice agent")
		return
	}
	respondOK(c, http.StatusOK, VoiceResponse{Start: &params, Status: session.Status()})
}

// Status reports whether a conversation is running
func (h *VoiceHandler) Status(c *gin.Context) {
	session, ok := h.hub.Lookup(merchantID(c), visitorSession(c))
	if !ok {
		respondOK(c, http.StatusOK, voice.Status{State: "inactive"})
		return
	}
	respondOK(c, http.StatusOK, session.Status())
}

// StatusStream pushes the session status as server-sent events until the
// client disconnects.
func (h *VoiceHandler) StatusStream(c *gin.Context) {
	if _, ok := h.catalog.Storefront(c.Request.Context(), merchantID(c), requestLocale(c)); !ok {
		respondError(c, http.StatusNotFound, "STORE_NOT_FOUND", "No storefront exists for this merchant")
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	var last *voice.Status
	h.hub.Watch(c.Request.Context(), merchantID(c), visitorSession(c), h.pollInterval, func(st voice.Status) {
		if last != nil && *last == st {
			return
		}
		last = &st
		c.SSEvent("status", st)
		c.Writer.Flush()
	})
}

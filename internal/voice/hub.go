package voice

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AgentFactory creates one agent per session.
type AgentFactory func() Agent

type hubKey struct {
	merchantID string
	visitorID  string
}

// Hub owns the voice sessions of storefront visitors.
type Hub struct {
	mu       sync.Mutex
	sessions map[hubKey]*Session
	factory  AgentFactory
	cfg      Config
	idleTTL  time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

// NewHub creates an empty hub. Inactive sessions idle for longer than
// idleTTL are dropped by Sweep.
func NewHub(factory AgentFactory, cfg Config, idleTTL time.Duration, logger *logrus.Logger) *Hub {
	return &Hub{
		sessions: make(map[hubKey]*Session),
		factory:  factory,
		cfg:      cfg,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Session returns the visitor's session, creating it on first use.
func (h *Hub) Session(merchantID, visitorID string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := hubKey{merchantID, visitorID}
	if s, ok := h.sessions[key]; ok {
		return s
	}
	entry := h.logger.WithFields(logrus.Fields{
		"component":   "voice.session",
		"merchant_id": merchantID,
		"visitor_id":  visitorID,
	})
	s := NewSession(h.factory(), h.cfg, entry)
	s.now = h.now
	s.lastUsed = h.now()
	h.sessions[key] = s
	return s
}

// Lookup returns an existing session without creating one.
func (h *Hub) Lookup(merchantID, visitorID string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[hubKey{merchantID, visitorID}]
	return s, ok
}

// Watch calls fn with the visitor's status immediately and then on every
// tick until ctx is cancelled. The session is resolved again on each tick,
// so a session replaced after a sweep is followed, and a missing one
// reports inactive without being created. Watching keeps a session from
// being swept.
func (h *Hub) Watch(ctx context.Context, merchantID, visitorID string, interval time.Duration, fn func(Status)) {
	report := func() {
		s, ok := h.Lookup(merchantID, visitorID)
		if !ok {
			fn(Status{State: "inactive", Demo: h.cfg.Demo})
			return
		}
		s.touch()
		fn(s.Status())
	}

	report()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report()
		}
	}
}

// Len is the number of tracked sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Sweep drops inactive sessions idle longer than the hub's TTL.
func (h *Hub) Sweep() int {
	if h.idleTTL <= 0 {
		return 0
	}
	cutoff := h.now().Add(-h.idleTTL)

	h.mu.Lock()
	defer h.mu.Unlock()
	removed := 0
	for key, s := range h.sessions {
		lastUsed, active := s.idleSince()
		if !active && lastUsed.Before(cutoff) {
			delete(h.sessions, key)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.Sweep(); n > 0 {
				h.logger.WithField("removed", n).Debug("Swept idle voice sessions")
			}
		}
	}
}

// Close stops every session and empties the hub.
func (h *Hub) Close(ctx context.Context) {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[hubKey]*Session)
	h.mu.Unlock()

	for key, s := range sessions {
		if err := s.Stop(ctx); err != nil {
			h.logger.WithError(err).WithField("merchant_id", key.merchantID).Warn("Failed to stop voice session")
		}
	}
}

package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type sessionKey struct {
	merchantID string
	sessionID  string
}

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// Sessions holds one cart per (merchant, visitor session), dropping carts
// that have been idle longer than the configured TTL.
type Sessions struct {
	mu      sync.Mutex
	carts   map[sessionKey]*entry
	idleTTL time.Duration
	logger  *logrus.Entry
	now     func() time.Time
}

// NewSessions creates an empty session table.
func NewSessions(idleTTL time.Duration, logger *logrus.Logger) *Sessions {
	return &Sessions{
		carts:   make(map[sessionKey]*entry),
		idleTTL: idleTTL,
		logger:  logger.WithField("component", "cart.sessions"),
		now:     time.Now,
	}
}

// Get returns the visitor's cart, creating an empty one when needed.
func (s *Sessions) Get(merchantID, sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{merchantID, sessionID}
	e, ok := s.carts[key]
	if !ok {
		e = &entry{cart: New()}
		s.carts[key] = e
	}
	e.lastSeen = s.now()
	return e.cart
}

// Drop discards the visitor's cart.
func (s *Sessions) Drop(merchantID, sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionKey{merchantID, sessionID})
	s.mu.Unlock()
}

// Len is the number of live carts.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Sweep removes idle carts and returns how many were dropped.
func (s *Sessions) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for key, e := range s.carts {
		if e.lastSeen.Before(cutoff) {
			delete(s.carts, key)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.WithField("removed", n).Debug("Swept idle carts")
			}
		}
	}
}

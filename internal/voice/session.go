package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/translation"
)

// DefaultRestartDelay is the pause between ending and restarting a
// conversation on Refresh.
const DefaultRestartDelay = 500 * time.Millisecond

// Config selects the agent per locale.
type Config struct {
	EnglishAgentID string
	ArabicAgentID  string
	Demo           bool
	RestartDelay   time.Duration
}

// AgentID returns the agent configured for locale.
func (c Config) AgentID(locale translation.Locale) string {
	if locale == translation.Arabic {
		return c.ArabicAgentID
	}
	return c.EnglishAgentID
}

// Status is a point-in-time view of a session.
type Status struct {
	Active bool               `json:"active"`
	State  string             `json:"state"`
	Locale translation.Locale `json:"locale,omitempty"`
	Demo   bool               `json:"demo"`
}

// Session tracks one visitor's conversation. Start, Stop and Refresh are
// serialized; agent events may arrive from any goroutine.
type Session struct {
	op     sync.Mutex
	mu     sync.Mutex
	agent  Agent
	cfg    Config
	logger *logrus.Entry

	active   bool
	locale   translation.Locale
	params   StartParams
	lastUsed time.Time
	now      func() time.Time
}

// NewSession binds a session to agent and subscribes to its events.
func NewSession(agent Agent, cfg Config, logger *logrus.Entry) *Session {
	if cfg.RestartDelay <= 0 {
		cfg.RestartDelay = DefaultRestartDelay
	}
	s := &Session{agent: agent, cfg: cfg, logger: logger, now: time.Now}
	s.lastUsed = s.now()

	agent.On(EventCallStarted, func(any) {
		s.setActive(true)
		s.logger.Debug("Voice conversation started")
	})
	agent.On(EventCallEnded, func(any) {
		s.setActive(false)
		s.logger.Debug("Voice conversation ended")
	})
	agent.On(EventError, func(payload any) {
		s.setActive(false)
		entry := s.logger
		if err, ok := payload.(error); ok {
			entry = entry.WithError(err)
		}
		entry.Error("Voice agent error")
	})
	agent.On(EventTranscriptionReceived, func(payload any) {
		s.logger.WithField("text", payload).Debug("Transcription received")
	})
	agent.On(EventAnswerReceived, func(payload any) {
		s.logger.WithField("text", payload).Debug("Agent answer received")
	})
	return s
}

func (s *Session) setActive(active bool) {
	s.mu.Lock()
	s.active = active
	s.mu.Unlock()
}

// Start begins a conversation in locale, ending any running one first.
func (s *Session) Start(ctx context.Context, locale translation.Locale, params StartParams) (StartParams, error) {
	s.op.Lock()
	defer s.op.Unlock()
	return s.start(ctx, locale, params)
}

func (s *Session) start(ctx context.Context, locale translation.Locale, params StartParams) (StartParams, error) {
	s.mu.Lock()
	running := s.active
	s.mu.Unlock()
	if running {
		if err := s.agent.End(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to end previous conversation")
		}
		s.setActive(false)
	}

	params.AgentID = s.cfg.AgentID(locale)
	params.VoiceEnablement = true
	if params.Tools == nil {
		params.Tools = []Tool{}
	}

	s.mu.Lock()
	s.locale = locale
	s.params = params
	s.lastUsed = s.now()
	s.mu.Unlock()

	if err := s.agent.Start(ctx, params); err != nil {
		s.setActive(false)
		return StartParams{}, fmt.Errorf("failed to start voice agent: %w", err)
	}
	s.logger.WithField("locale", locale).Info("Voice agent started")
	return params, nil
}

// Stop ends the conversation and forgets the locale.
func (s *Session) Stop(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	running := s.active
	s.active = false
	s.locale = ""
	s.lastUsed = s.now()
	s.mu.Unlock()

	if !running {
		return nil
	}
	if err := s.agent.End(ctx); err != nil {
		return fmt.Errorf("failed to end voice agent: %w", err)
	}
	return nil
}

// ErrNothingToRefresh is returned by Refresh when no conversation was
// ever started or the last one was stopped.
var ErrNothingToRefresh = errors.New("no conversation to refresh")

// Refresh ends the conversation and restarts it in the same locale after
// the configured delay.
func (s *Session) Refresh(ctx context.Context) (StartParams, error) {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	locale := s.locale
	params := s.params
	running := s.active
	s.mu.Unlock()

	if running {
		if err := s.agent.End(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to end conversation for refresh")
		}
		s.setActive(false)
	}
	if locale == "" {
		return StartParams{}, ErrNothingToRefresh
	}

	timer := time.NewTimer(s.cfg.RestartDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return StartParams{}, ctx.Err()
	case <-timer.C:
	}
	return s.start(ctx, locale, params)
}

// Status reports whether a conversation is running.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := "inactive"
	if s.active {
		state = "active"
	}
	return Status{Active: s.active, State: state, Locale: s.locale, Demo: s.cfg.Demo}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = s.now()
	s.mu.Unlock()
}

func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed, s.active
}

package voice

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/translation"
)

// recordingAgent wraps DemoAgent and counts calls.
type recordingAgent struct {
	*DemoAgent
	mu       sync.Mutex
	starts   []StartParams
	ends     int
	startErr error
}

func newRecordingAgent() *recordingAgent {
	return &recordingAgent{DemoAgent: NewDemoAgent()}
}

func (a *recordingAgent) Start(ctx context.Context, params StartParams) error {
	a.mu.Lock()
	a.starts = append(a.starts, params)
	err := a.startErr
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.DemoAgent.Start(ctx, params)
}

func (a *recordingAgent) End(ctx context.Context) error {
	a.mu.Lock()
	a.ends++
	a.mu.Unlock()
	return a.DemoAgent.End(ctx)
}

func (a *recordingAgent) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.starts), a.ends
}

func testEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

var testConfig = Config{EnglishAgentID: "agent-en", ArabicAgentID: "agent-ar", RestartDelay: time.Millisecond}

func TestSession_StartPicksAgentPerLocale(t *testing.T) {
	ctx := context.Background()
	agent := newRecordingAgent()
	s := NewSession(agent, testConfig, testEntry())

	params, err := s.Start(ctx, translation.Arabic, StartParams{})
	require.NoError(t, err)
	assert.Equal(t, "agent-ar", params.AgentID)
	assert.True(t, params.VoiceEnablement)

	status := s.Status()
	assert.True(t, status.Active)
	assert.Equal(t, "active", status.State)
	assert.Equal(t, translation.Arabic, status.Locale)

	params, err = s.Start(ctx, translation.English, StartParams{})
	require.NoError(t, err)
	assert.Equal(t, "agent-en", params.AgentID)

	starts, ends := agent.counts()
	assert.Equal(t, 2, starts)
	assert.Equal(t, 1, ends, "running conversation is ended before a new one starts")
}

func TestSession_StartFailureLeavesInactive(t *testing.T) {
	agent := newRecordingAgent()
	agent.startErr = errors.New("boom")
	s := NewSession(agent, testConfig, testEntry())

	_, err := s.Start(context.Background(), translation.English, StartParams{})
	assert.Error(t, err)
	assert.False(t, s.Status().Active)
}

func TestSession_Stop(t *testing.T) {
	ctx := context.Background()
	agent := newRecordingAgent()
	s := NewSession(agent, testConfig, testEntry())

	require.NoError(t, s.Stop(ctx))
	_, ends := agent.counts()
	assert.Zero(t, ends, "stopping an idle session does not touch the agent")

	_, err := s.Start(ctx, translation.English, StartParams{})
	require.NoError(t, err)
	require.NoError(t, s.Stop(ctx))

	status := s.Status()
	assert.False(t, status.Active)
	assert.Equal(t, "inactive", status.State)
	assert.Empty(t, status.Locale)
}

func TestSession_RefreshRestartsSameLocale(t *testing.T) {
	ctx := context.Background()
	agent := newRecordingAgent()
	s := NewSession(agent, testConfig, testEntry())

	_, err := s.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNothingToRefresh)

	_, err = s.Start(ctx, translation.Arabic, StartParams{Params: map[string]any{MenuParam: "menu"}})
	require.NoError(t, err)

	params, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "agent-ar", params.AgentID)
	assert.Equal(t, "menu", params.Params[MenuParam])
	assert.True(t, s.Status().Active)

	starts, ends := agent.counts()
	assert.Equal(t, 2, starts)
	assert.Equal(t, 1, ends)
}

func TestSession_RefreshHonoursCancel(t *testing.T) {
	agent := newRecordingAgent()
	cfg := testConfig
	cfg.RestartDelay = time.Hour
	s := NewSession(agent, cfg, testEntry())

	_, err := s.Start(context.Background(), translation.English, StartParams{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Status().Active)
}

func TestSession_AgentErrorDeactivates(t *testing.T) {
	agent := newRecordingAgent()
	s := NewSession(agent, testConfig, testEntry())
	_, err := s.Start(context.Background(), translation.English, StartParams{})
	require.NoError(t, err)

	agent.emit(EventError, errors.New("network"))
	assert.False(t, s.Status().Active)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type statusLog struct {
	mu   sync.Mutex
	seen []Status
}

func (l *statusLog) add(st Status) {
	l.mu.Lock()
	l.seen = append(l.seen, st)
	l.mu.Unlock()
}

func (l *statusLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

func (l *statusLog) last() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen[len(l.seen)-1]
}

func TestHub_WatchKeepsSessionAlive(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	clock := &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	h := NewHub(func() Agent { return NewDemoAgent() }, testConfig, time.Minute, logger)
	h.now = clock.Now
	watched := h.Session("m1", "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var log statusLog
	go h.Watch(ctx, "m1", "v1", time.Millisecond, log.add)

	require.Eventually(t, func() bool { return log.len() >= 1 }, time.Second, time.Millisecond)
	clock.Advance(2 * time.Minute)
	seen := log.len()
	require.Eventually(t, func() bool { return log.len() >= seen+2 }, time.Second, time.Millisecond)

	assert.Zero(t, h.Sweep(), "a watched session is not idle")
	current, ok := h.Lookup("m1", "v1")
	require.True(t, ok)
	assert.Same(t, watched, current)
}

func TestHub_WatchFollowsLaterSession(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewHub(func() Agent { return NewDemoAgent() }, testConfig, time.Minute, logger)

	ctx, cancel := context.WithCancel(context.Background())
	var log statusLog
	done := make(chan struct{})
	go func() {
		h.Watch(ctx, "m1", "v1", time.Millisecond, log.add)
		close(done)
	}()

	require.Eventually(t, func() bool { return log.len() >= 2 }, time.Second, time.Millisecond)
	assert.Equal(t, "inactive", log.last().State)
	assert.Zero(t, h.Len(), "watching never creates a session")

	_, err := h.Session("m1", "v1").Start(context.Background(), translation.Arabic, StartParams{})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return log.last().Active }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestHub_SessionsAndSweep(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h := NewHub(func() Agent { return NewDemoAgent() }, testConfig, time.Minute, logger)
	h.now = func() time.Time { return now }

	a := h.Session("m1", "v1")
	assert.Same(t, a, h.Session("m1", "v1"))
	b := h.Session("m1", "v2")
	_, err := b.Start(context.Background(), translation.English, StartParams{})
	require.NoError(t, err)

	_, ok := h.Lookup("m1", "v3")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, h.Sweep(), "only the inactive session is dropped")
	_, ok = h.Lookup("m1", "v2")
	assert.True(t, ok)

	h.Close(context.Background())
	assert.Zero(t, h.Len())
	assert.False(t, b.Status().Active)
}

func TestBuildMenu(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", NameKey: "categories.mensApparel"},
		{ID: "c2", NameKey: "categories.sale"},
	}
	subs := []models.SubCategory{
		{ID: "s1", CategoryIDs: []string{"c1"}, NameKey: "subcategories.tshirts"},
		{ID: "s2", CategoryIDs: []string{"c1", "c2"}, NameKey: "subcategories.jeans"},
		{ID: "s3", CategoryIDs: []string{"other"}, NameKey: "subcategories.jackets"},
	}
	registry := translation.NewRegistry(nil, logrus.New())

	menu := BuildMenu(categories, subs, registry.Lookup)

	assert.Contains(t, menu, "**Men's Apparel (الملابس الرجالية)** (categoryId: c1)")
	assert.Contains(t, menu, "  - T-Shirts (تي شيرت) (itemId: s1)")
	assert.Equal(t, 2, strings.Count(menu, "(itemId: s2)"), "shared subcategory listed under each parent")
	assert.NotContains(t, menu, "s3")
	assert.True(t, strings.HasSuffix(menu, "navigate to the appropriate category.\n"))
}

// Package voice manages voice shopping conversations for storefront
// visitors on top of an external voice agent.
package voice

import (
	"context"
	"sync"
)

// Event names emitted by an Agent.
type Event string

const (
	EventCallStarted           Event = "callStarted"
	EventCallEnded             Event = "callEnded"
	EventError                 Event = "error"
	EventTranscriptionReceived Event = "transcriptionReceived"
	EventAnswerReceived        Event = "answerReceived"
)

// Handler receives an event payload: a string for transcriptions and
// answers, an error for EventError, nil otherwise.
type Handler func(payload any)

// ToolParameter describes one argument of a client tool.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Tool is a client-side function the agent may call.
type Tool struct {
	FunctionName string          `json:"function_name"`
	Description  string          `json:"description"`
	Parameters   []ToolParameter `json:"parameters"`
	Required     []string        `json:"required"`
}

// StartParams configures a conversation.
type StartParams struct {
	AgentID         string         `json:"agentId"`
	VoiceEnablement bool           `json:"voiceEnablement"`
	Params          map[string]any `json:"params,omitempty"`
	Tools           []Tool         `json:"tools"`
}

// Agent is the voice agent SDK as seen by the service.
type Agent interface {
	Start(ctx context.Context, params StartParams) error
	End(ctx context.Context) error
	On(event Event, handler Handler)
}

// DemoAgent stands in for the real agent when no API key is configured.
// It reports call start and end synchronously and never speaks.
type DemoAgent struct {
	mu       sync.Mutex
	handlers map[Event][]Handler
	running  bool
}

// NewDemoAgent creates an idle demo agent.
func NewDemoAgent() *DemoAgent {
	return &DemoAgent{handlers: make(map[Event][]Handler)}
}

func (a *DemoAgent) On(event Event, handler Handler) {
	a.mu.Lock()
	a.handlers[event] = append(a.handlers[event], handler)
	a.mu.Unlock()
}

func (a *DemoAgent) Start(_ context.Context, _ StartParams) error {
	a.mu.Lock()
	a.running = true
	a.mu.Unlock()
	a.emit(EventCallStarted, nil)
	return nil
}

func (a *DemoAgent) End(_ context.Context) error {
	a.mu.Lock()
	wasRunning := a.running
	a.running = false
	a.mu.Unlock()
	if wasRunning {
		a.emit(EventCallEnded, nil)
	}
	return nil
}

func (a *DemoAgent) emit(event Event, payload any) {
	a.mu.Lock()
	handlers := append([]Handler(nil), a.handlers[event]...)
	a.mu.Unlock()
	for _, h := range handlers {
		h(payload)
	}
}

// Package core provides shared application state and event handling.
package core

import (
	"context"
	"sync"
	"time"
)

// DefaultQueryTimeout is the default timeout for database queries.
const DefaultQueryTimeout = 30 * time.Second

// DefaultConnectTimeout is the default timeout for connection attempts.
const DefaultConnectTimeout = 10 * time.Second

// DefaultReadyTimeout bounds the wait for the background worker before a
// submission is rejected.
const DefaultReadyTimeout = 5 * time.Second

// DefaultShutdownTimeout bounds the wait for the shutdown cleanup task.
const DefaultShutdownTimeout = 5 * time.Second

// AppState holds the shared application state.
type AppState struct {
	ConfigDir     string          // Config directory path
	Ctx           context.Context // Wails context
	DisableEvents bool            // Disable event emission (for tests)
	Emitter       EventEmitter    // Event emitter for UI notifications
	Mu            sync.RWMutex
}

// NewAppState creates a new AppState.
func NewAppState() *AppState {
	return &AppState{}
}

// EmitEvent safely emits an event through the emitter.
func (s *AppState) EmitEvent(eventName string, data interface{}) {
	s.Mu.RLock()
	disabled, emitter := s.DisableEvents, s.Emitter
	s.Mu.RUnlock()
	if disabled || emitter == nil {
		return
	}
	emitter.Emit(eventName, data)
}

// SetEmitter swaps the event emitter. Used at startup and by tests.
func (s *AppState) SetEmitter(e EventEmitter) {
	s.Mu.Lock()
	s.Emitter = e
	s.Mu.Unlock()
}

// ContextWithTimeout creates a context with the default query timeout.
func ContextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultQueryTimeout)
}

// ContextWithConnectTimeout creates a context with the default connect timeout.
func ContextWithConnectTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultConnectTimeout)
}

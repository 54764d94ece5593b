package main

import (
	"testing"
)

// Helper function to create a minimal App instance for testing
func newTestApp() *App {
	return NewApp()
}

func TestNewAppConstructsCoreServices(t *testing.T) {
	app := newTestApp()

	if app.state == nil {
		t.Error("state is nil")
	}
	if app.credential == nil {
		t.Error("credential service is nil")
	}
	if app.worker == nil {
		t.Error("worker is nil")
	}
	// Store, bridge and export are wired during startup once the Wails
	// context exists.
	if app.store != nil || app.bridge != nil || app.export != nil {
		t.Error("connection-dependent services must not exist before startup")
	}
}

func TestShutdownBeforeStartupDoesNotPanic(t *testing.T) {
	app := newTestApp()
	app.shutdown(nil)
}

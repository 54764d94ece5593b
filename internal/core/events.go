package core

import (
	"context"
	"fmt"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Event tags observed by the GUI. Successful operations re-emit their tag
// with the result payload; failures carry "<tag>: <message>" on EventError.
const (
	EventConnected = "connected"
	EventError     = "error_occurred"

	EventCollectors          = "collectors"
	EventCollections         = "collections"
	EventCatalog             = "catalog"
	EventCountries           = "countries"
	EventCollectionTypeList  = "collection_types_list"
	EventCollectionTypeStats = "collection_types"
	EventCountryStats        = "country_stats"
	EventStatistics          = "statistics"

	EventCollectorAdded      = "collector_added"
	EventCollectorUpdated    = "collector_updated"
	EventCollectorDeleted    = "collector_deleted"
	EventCollectionAdded     = "collection_added"
	EventCollectionUpdated   = "collection_updated"
	EventCollectionDeleted   = "collection_deleted"
	EventCollectionItemAdded = "collection_item_added"
	EventCatalogItemAdded    = "catalog_item_added"
	EventCatalogItemUpdated  = "catalog_item_updated"
	EventCatalogItemDeleted  = "catalog_item_deleted"
)

// EventEmitter defines the interface for emitting events to the UI.
type EventEmitter interface {
	Emit(eventName string, data interface{})
}

// WailsEventEmitter emits events using the Wails runtime.
type WailsEventEmitter struct {
	Ctx context.Context
}

// Emit sends an event to the frontend via Wails runtime.
func (e *WailsEventEmitter) Emit(eventName string, data interface{}) {
	if e.Ctx != nil {
		runtime.EventsEmit(e.Ctx, eventName, data)
	}
}

// NoopEventEmitter is a no-op event emitter for testing.
type NoopEventEmitter struct{}

// Emit does nothing (used for tests).
func (e *NoopEventEmitter) Emit(eventName string, data interface{}) {}

// =============================================================================
// Custom Error Types
// =============================================================================

// NotConnectedError indicates the database pool is not established.
type NotConnectedError struct{}

func (e *NotConnectedError) Error() string {
	return "database not connected"
}

// RuntimeNotReadyError indicates the background worker did not signal
// readiness within the bounded wait.
type RuntimeNotReadyError struct {
	Timeout time.Duration
}

func (e *RuntimeNotReadyError) Error() string {
	if e.Timeout <= 0 {
		return "worker not ready"
	}
	return fmt.Sprintf("worker not ready after %s", e.Timeout)
}

// RuntimeStoppedError indicates a submission after the worker shut down.
type RuntimeStoppedError struct{}

func (e *RuntimeStoppedError) Error() string {
	return "worker stopped"
}

package bridge

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dnikolaeva/collectdesk/internal/core"
	"github.com/dnikolaeva/collectdesk/internal/worker"
)

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
	notify chan struct{}
}

type recordedEvent struct {
	name string
	data interface{}
}

func newRecordingEmitter() *recordingEmitter {
	return &recordingEmitter{notify: make(chan struct{}, 16)}
}

func (e *recordingEmitter) Emit(eventName string, data interface{}) {
	e.mu.Lock()
	e.events = append(e.events, recordedEvent{name: eventName, data: data})
	e.mu.Unlock()
	select {
	case e.notify <- struct{}{}:
	default:
	}
}

func (e *recordingEmitter) waitForEvent(t *testing.T) recordedEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		e.mu.Lock()
		if len(e.events) > 0 {
			ev := e.events[0]
			e.events = e.events[1:]
			e.mu.Unlock()
			return ev
		}
		e.mu.Unlock()
		select {
		case <-e.notify:
		case <-deadline:
			t.Fatal("no event emitted in time")
		}
	}
}

func (e *recordingEmitter) eventCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

type stubGuard struct{ ready bool }

func (g *stubGuard) Ready() bool { return g.ready }

func newTestBridge(t *testing.T, guard ConnectionGuard) (*Bridge, *recordingEmitter) {
	t.Helper()
	w := worker.New()
	w.Start()
	t.Cleanup(func() { w.Stop(nil) })
	if err := w.WaitReady(time.Second); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}

	state := core.NewAppState()
	emitter := newRecordingEmitter()
	state.SetEmitter(emitter)

	return New(w, state, guard), emitter
}

func TestSubmitEmitsResultUnderTag(t *testing.T) {
	b, emitter := newTestBridge(t, &stubGuard{ready: true})

	b.Submit("collectors", func(ctx context.Context) (interface{}, error) {
		return []string{"one", "two"}, nil
	})

	ev := emitter.waitForEvent(t)
	if ev.name != "collectors" {
		t.Errorf("event name = %q, want %q", ev.name, "collectors")
	}
	payload, ok := ev.data.([]string)
	if !ok || len(payload) != 2 {
		t.Errorf("event payload = %v, want the operation result", ev.data)
	}
}

func TestSubmitEmitsFailureAsErrorEvent(t *testing.T) {
	b, emitter := newTestBridge(t, &stubGuard{ready: true})

	b.Submit("catalog", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("relation does not exist")
	})

	ev := emitter.waitForEvent(t)
	if ev.name != core.EventError {
		t.Fatalf("event name = %q, want %q", ev.name, core.EventError)
	}
	msg, ok := ev.data.(string)
	if !ok {
		t.Fatalf("error payload = %T, want string", ev.data)
	}
	if !strings.HasPrefix(msg, "catalog: ") || !strings.Contains(msg, "relation does not exist") {
		t.Errorf("error payload = %q, want tag prefix and cause", msg)
	}
}

func TestSubmitSkippedWhenPoolNotEstablished(t *testing.T) {
	b, emitter := newTestBridge(t, &stubGuard{ready: false})

	ran := make(chan struct{})
	b.Submit("collectors", func(ctx context.Context) (interface{}, error) {
		close(ran)
		return nil, nil
	})

	select {
	case <-ran:
		t.Fatal("operation ran despite unestablished pool")
	case <-time.After(100 * time.Millisecond):
	}
	if n := emitter.eventCount(); n != 0 {
		t.Errorf("emitted %d events, want none for a skipped submission", n)
	}
}

func TestSubmitUnguardedRunsWithoutPool(t *testing.T) {
	b, emitter := newTestBridge(t, &stubGuard{ready: false})

	b.SubmitUnguarded("connect", func(ctx context.Context) (interface{}, error) {
		return "ok", nil
	})

	ev := emitter.waitForEvent(t)
	if ev.name != "connect" {
		t.Errorf("event name = %q, want %q", ev.name, "connect")
	}
}

func TestSubmitSilentEmitsOnlyFailures(t *testing.T) {
	b, emitter := newTestBridge(t, &stubGuard{ready: false})

	done := make(chan struct{})
	b.SubmitSilent("connect", func(ctx context.Context) (interface{}, error) {
		defer close(done)
		return nil, nil
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation did not run")
	}
	time.Sleep(50 * time.Millisecond)
	if n := emitter.eventCount(); n != 0 {
		t.Errorf("emitted %d events on silent success, want none", n)
	}

	b.SubmitSilent("connect", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("connection refused")
	})
	ev := emitter.waitForEvent(t)
	if ev.name != core.EventError {
		t.Errorf("event name = %q, want %q", ev.name, core.EventError)
	}
}

func TestSubmitDropsOperationWhenWorkerNotReady(t *testing.T) {
	w := worker.New() // never started

	state := core.NewAppState()
	emitter := newRecordingEmitter()
	state.SetEmitter(emitter)

	b := New(w, state, &stubGuard{ready: true})
	b.readyTimeout = 20 * time.Millisecond

	b.Submit("collectors", func(ctx context.Context) (interface{}, error) {
		t.Error("operation must not run on an unready worker")
		return nil, nil
	})

	ev := emitter.waitForEvent(t)
	if ev.name != core.EventError {
		t.Errorf("event name = %q, want %q", ev.name, core.EventError)
	}
	msg, _ := ev.data.(string)
	if !strings.HasPrefix(msg, "collectors: ") {
		t.Errorf("error payload = %q, want tag prefix", msg)
	}
}

// Package worker hosts the single background task runner that executes all
// database operations. Exactly one goroutine consumes the queue; tasks run
// serialized, never in parallel with each other.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dnikolaeva/collectdesk/internal/core"
	"github.com/dnikolaeva/collectdesk/internal/debug"
)

// queueSize bounds the number of tasks waiting on the worker. The GUI thread
// never blocks on Submit under normal load.
const queueSize = 64

// Task is one unit of work scheduled on the worker goroutine.
type Task struct {
	ID   string
	Run  func(ctx context.Context) (interface{}, error)
	Done func(result interface{}, err error)
}

// Worker runs tasks one at a time on a dedicated goroutine. Start must be
// called exactly once; it is not internally guarded against double start.
type Worker struct {
	tasks    chan Task
	ready    chan struct{}
	stop     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// New creates a Worker. It does nothing until Start is called.
func New() *Worker {
	return &Worker{
		tasks:    make(chan Task, queueSize),
		ready:    make(chan struct{}),
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start spawns the worker goroutine. The goroutine flips the ready signal
// before it begins draining the queue.
func (w *Worker) Start() {
	go w.run()
}

func (w *Worker) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer close(w.finished)

	close(w.ready)
	debug.LogWorker("worker started", nil)

	for {
		select {
		case <-w.stop:
			return
		case t := <-w.tasks:
			w.execute(ctx, t)
		}
	}
}

// execute runs a single task and delivers its outcome to the completion
// callback. A panic inside a task is converted to an error so that failures
// only ever cross the worker boundary as data.
func (w *Worker) execute(ctx context.Context, t Task) {
	var (
		result interface{}
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %s panicked: %v", t.ID, r)
			}
		}()
		result, err = t.Run(ctx)
	}()
	if t.Done != nil {
		t.Done(result, err)
	}
}

// WaitReady blocks until the worker goroutine has signalled readiness, up to
// the given timeout.
func (w *Worker) WaitReady(timeout time.Duration) error {
	select {
	case <-w.ready:
		return nil
	case <-time.After(timeout):
		return &core.RuntimeNotReadyError{Timeout: timeout}
	}
}

// Ready reports whether the worker goroutine has signalled readiness.
func (w *Worker) Ready() bool {
	select {
	case <-w.ready:
		return true
	default:
		return false
	}
}

// Submit hands a task to the worker. It fails immediately when the worker has
// not signalled readiness or has already stopped; tasks are never queued for
// later delivery or retried.
func (w *Worker) Submit(t Task) error {
	select {
	case <-w.stop:
		return &core.RuntimeStoppedError{}
	default:
	}
	if !w.Ready() {
		return &core.RuntimeNotReadyError{}
	}
	select {
	case <-w.stop:
		return &core.RuntimeStoppedError{}
	case w.tasks <- t:
		return nil
	}
}

// Stop schedules cleanup as a final task, waits for it up to the shutdown
// timeout, then stops the worker goroutine. Cleanup failure is logged, never
// fatal: shutdown always proceeds.
func (w *Worker) Stop(cleanup func(ctx context.Context) error) {
	w.stopOnce.Do(func() {
		if cleanup != nil {
			done := make(chan error, 1)
			err := w.Submit(Task{
				ID: "shutdown-cleanup",
				Run: func(ctx context.Context) (interface{}, error) {
					return nil, cleanup(ctx)
				},
				Done: func(_ interface{}, err error) {
					done <- err
				},
			})
			if err != nil {
				debug.LogWorker("shutdown cleanup not scheduled", map[string]interface{}{"error": err.Error()})
			} else {
				select {
				case err := <-done:
					if err != nil {
						debug.LogWorker("shutdown cleanup failed", map[string]interface{}{"error": err.Error()})
					}
				case <-time.After(core.DefaultShutdownTimeout):
					debug.LogWorker("shutdown cleanup timed out", nil)
				}
			}
		}

		close(w.stop)
		select {
		case <-w.finished:
		case <-time.After(time.Second):
			// Start was never called or the goroutine is wedged in a task;
			// shutdown proceeds regardless.
		}
	})
}

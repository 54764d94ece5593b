// Package bridge crosses from the GUI thread into the background worker and
// back. Submissions are fire-and-forget: the result of each operation is
// re-emitted as a tagged event on the GUI's event dispatch, success under the
// operation's own tag, failure under the error event.
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dnikolaeva/collectdesk/internal/core"
	"github.com/dnikolaeva/collectdesk/internal/debug"
	"github.com/dnikolaeva/collectdesk/internal/worker"
)

// Operation is the unit of work submitted through the bridge. It runs on the
// worker goroutine.
type Operation func(ctx context.Context) (interface{}, error)

// ConnectionGuard is the readiness check consulted before a guarded
// submission. The store satisfies it.
type ConnectionGuard interface {
	Ready() bool
}

// Bridge schedules operations on the worker and routes their outcome back to
// the GUI as events.
type Bridge struct {
	worker       *worker.Worker
	state        *core.AppState
	guard        ConnectionGuard
	readyTimeout time.Duration
}

// New creates a Bridge using the default worker readiness timeout.
func New(w *worker.Worker, state *core.AppState, guard ConnectionGuard) *Bridge {
	return &Bridge{
		worker:       w,
		state:        state,
		guard:        guard,
		readyTimeout: core.DefaultReadyTimeout,
	}
}

// Submit schedules op on the worker. When the database pool is not
// established the submission is silently skipped: callers rely on the
// separate not-connected event path instead of per-call errors. A worker
// that is not ready within the bounded wait drops the operation with an
// error event; nothing is ever queued for later delivery or retried.
func (b *Bridge) Submit(tag string, op Operation) {
	if b.guard != nil && !b.guard.Ready() {
		return
	}
	b.dispatch(tag, op, false)
}

// SubmitUnguarded schedules op without the pool guard. Used for operations
// that must run while no pool exists yet.
func (b *Bridge) SubmitUnguarded(tag string, op Operation) {
	b.dispatch(tag, op, false)
}

// SubmitSilent is SubmitUnguarded without the success event: only failures
// are reported. The connect operation uses it because the store announces a
// successful connection itself.
func (b *Bridge) SubmitSilent(tag string, op Operation) {
	b.dispatch(tag, op, true)
}

func (b *Bridge) dispatch(tag string, op Operation, silent bool) {
	opID := uuid.NewString()

	if err := b.worker.WaitReady(b.readyTimeout); err != nil {
		debug.LogWorker("submission rejected", map[string]interface{}{
			"op": opID, "tag": tag, "error": err.Error(),
		})
		b.emitError(tag, err)
		return
	}

	err := b.worker.Submit(worker.Task{
		ID:  opID,
		Run: op,
		Done: func(result interface{}, err error) {
			if err != nil {
				b.emitError(tag, err)
				return
			}
			if !silent {
				b.state.EmitEvent(tag, result)
			}
		},
	})
	if err != nil {
		debug.LogWorker("submission rejected", map[string]interface{}{
			"op": opID, "tag": tag, "error": err.Error(),
		})
		b.emitError(tag, err)
	}
}

// emitError converts a failure into data before it reaches the GUI thread.
func (b *Bridge) emitError(tag string, err error) {
	b.state.EmitEvent(core.EventError, fmt.Sprintf("%s: %s", tag, err))
}

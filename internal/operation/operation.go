package operation

import (
	"context"
	"sync"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is a point-in-time copy of the slot. Exactly one of Result and
// Error is set when Status is success or error; both are empty otherwise.
type Snapshot[T any] struct {
	Status Status
	Result *T
	Error  string
}

// Runner performs the remote call for one invocation.
type Runner[T any] func(ctx context.Context) (*T, error)

// Operation is a single owned slot of remote-derived state. Components
// drive it through Begin/Complete (or the Run convenience) and Reset, and
// render from Snapshot. A completion is applied only when its sequence tag
// is still the latest one issued, so an overlapping re-run or a reset can
// never be overwritten by an older response.
type Operation[T any] struct {
	mu     sync.Mutex
	seq    uint64
	status Status
	result *T
	errMsg string
}

func New[T any]() *Operation[T] {
	return &Operation[T]{status: StatusIdle}
}

// Begin moves the slot to loading, clears any prior outcome, and returns
// the sequence tag the eventual completion must present.
func (o *Operation[T]) Begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++
	o.status = StatusLoading
	o.result = nil
	o.errMsg = ""
	return o.seq
}

// Complete applies the outcome of the invocation tagged seq. It reports
// whether the outcome was applied; a stale tag is discarded silently.
func (o *Operation[T]) Complete(seq uint64, result *T, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if seq != o.seq || o.status != StatusLoading {
		return false
	}
	if err != nil {
		o.status = StatusError
		o.errMsg = err.Error()
		o.result = nil
		return true
	}
	o.status = StatusSuccess
	o.result = result
	o.errMsg = ""
	return true
}

// Reset synchronously returns the slot to its idle defaults. The sequence
// is bumped so an in-flight completion resolves into a discard.
func (o *Operation[T]) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++
	o.status = StatusIdle
	o.result = nil
	o.errMsg = ""
}

// Run begins a new invocation and resolves it on its own goroutine. The
// returned channel receives the snapshot taken after the completion was
// offered, whether or not it was applied.
func (o *Operation[T]) Run(ctx context.Context, fn Runner[T]) <-chan Snapshot[T] {
	seq := o.Begin()
	done := make(chan Snapshot[T], 1)
	go func() {
		result, err := fn(ctx)
		o.Complete(seq, result, err)
		done <- o.Snapshot()
	}()
	return done
}

func (o *Operation[T]) Snapshot() Snapshot[T] {
	o.mu.Lock()
	defer o.mu.Unlock()

	return Snapshot[T]{
		Status: o.status,
		Result: o.result,
		Error:  o.errMsg,
	}
}

func (o *Operation[T]) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Package flight guards an action so that at most one run is pending at a
// time. Extra invocations are rejected, never queued or run in parallel.
package flight

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrInFlight is returned by Do while a previous run is still pending.
var ErrInFlight = errors.New("action already in progress")

// State is the guard's lifecycle.
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Guard is a single-flight latch around one named action.
type Guard struct {
	name string
	sem  *semaphore.Weighted

	mu    sync.Mutex
	state State
	err   error
}

func New(name string) *Guard {
	return &Guard{name: name, sem: semaphore.NewWeighted(1)}
}

func (g *Guard) Name() string { return g.name }

// State returns the current state and the error of the last failed run.
func (g *Guard) State() (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, g.err
}

// Do runs fn unless a run is already pending. fn runs to completion; ctx is
// handed to it but the guard itself never cancels.
func (g *Guard) Do(ctx context.Context, fn func(context.Context) error) error {
	if !g.sem.TryAcquire(1) {
		return ErrInFlight
	}
	defer g.sem.Release(1)

	g.set(Pending, nil)
	if err := fn(ctx); err != nil {
		g.set(Failed, err)
		return err
	}
	g.set(Succeeded, nil)
	return nil
}

func (g *Guard) set(s State, err error) {
	g.mu.Lock()
	g.state = s
	g.err = err
	g.mu.Unlock()
}

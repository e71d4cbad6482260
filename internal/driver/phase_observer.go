package driver

import (
	"context"
	"time"

	"basedef/internal/trace"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a driver phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Compile.
type PhaseObserver func(PhaseEvent)

// runPhase wraps fn with the timer, a pass span and observer notifications.
func (r *run) runPhase(ctx context.Context, name string, fn func(context.Context) error) error {
	if r.opts.Observer != nil {
		r.opts.Observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, name)
	started := time.Now()
	err := r.timer.Measure(name, func() error { return fn(ctx) })
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	if r.opts.Observer != nil {
		r.opts.Observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
	}
	return err
}

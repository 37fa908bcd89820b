package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	// ErrLoopClosed is returned when posting to a stopped loop.
	ErrLoopClosed = errors.New("render: loop closed")

	// ErrLoopRunning is returned by Run when the loop is already running.
	ErrLoopRunning = errors.New("render: loop already running")
)

// Loop runs functions one at a time on a single goroutine. It serves as the
// UI thread for surfaces whose input arrives from other goroutines.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	running atomic.Bool
	logger  *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopLogger sets the logger.
func WithLoopLogger(l *slog.Logger) LoopOption {
	return func(lp *Loop) { lp.logger = l }
}

// WithQueueSize sets how many posted functions may wait before Post blocks.
func WithQueueSize(n int) LoopOption {
	return func(lp *Loop) {
		if n > 0 {
			lp.tasks = make(chan func(), n)
		}
	}
}

// NewLoop creates a loop. It does nothing until Run or Start.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		tasks:   make(chan func(), 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  slog.Default().With("component", "render"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes posted functions until ctx is done or Stop is called. A
// panicking function is logged and the loop continues.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	return l.run(ctx)
}

// Start runs the loop on a new goroutine.
func (l *Loop) Start(ctx context.Context) {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	go l.run(ctx) //nolint:errcheck
}

func (l *Loop) run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			l.close()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("ui task panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

// Post queues fn without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case <-l.done:
		return ErrLoopClosed
	case l.tasks <- fn:
		return nil
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	}
}

// Stop ends the loop and waits for the running function, if any, to return.
// Functions still queued are dropped.
func (l *Loop) Stop() {
	l.close()
	if l.running.Load() {
		<-l.stopped
	}
}

// Done is closed once the loop has exited.
func (l *Loop) Done() <-chan struct{} { return l.stopped }

func (l *Loop) close() {
	l.once.Do(func() { close(l.done) })
}

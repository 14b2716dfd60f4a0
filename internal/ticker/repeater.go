package ticker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ticker is the subset of *time.Ticker a Repeater needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Factory creates a ticker firing every d.
type Factory func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// System returns tickers backed by time.NewTicker.
func System(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} }

// Repeater calls fn once per interval until stopped. At most one loop runs
// at a time: Start stops the previous loop before launching a new one.
type Repeater struct {
	name      string
	interval  time.Duration
	fn        func(ctx context.Context)
	newTicker Factory
	logger    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped repeater. A nil factory uses System.
func New(name string, interval time.Duration, fn func(ctx context.Context), factory Factory, logger *zap.Logger) *Repeater {
	if factory == nil {
		factory = System
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repeater{
		name:      name,
		interval:  interval,
		fn:        fn,
		newTicker: factory,
		logger:    logger,
	}
}

// Start (re)starts the loop. fn receives a context that is cancelled when
// the loop is stopped, so a blocked fn never outlives Stop.
func (r *Repeater) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	t := r.newTicker(r.interval)

	go r.run(ctx, t, done)
	r.logger.Debug("repeater started", zap.String("name", r.name), zap.Duration("interval", r.interval))
}

// Stop cancels the loop and waits for it to exit. Safe to call when stopped.
func (r *Repeater) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopLocked() {
		r.logger.Debug("repeater stopped", zap.String("name", r.name))
	}
}

// Running reports whether a loop is active.
func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

func (r *Repeater) stopLocked() bool {
	if r.cancel == nil {
		return false
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
	return true
}

func (r *Repeater) run(ctx context.Context, t Ticker, done chan struct{}) {
	defer close(done)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			r.fn(ctx)
		}
	}
}

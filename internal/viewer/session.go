package viewer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slidedeck/internal/ticker"
)

// ErrStopped is returned when the session loop is no longer running.
var ErrStopped = errors.New("session stopped")

// Publisher delivers frames to the page(s).
type Publisher interface {
	Publish(f Frame)
}

// SessionOptions configures the two recurring timers.
type SessionOptions struct {
	TickInterval     time.Duration
	AutoplayInterval time.Duration
	// Tickers overrides time.NewTicker, for tests.
	Tickers ticker.Factory
}

type call struct {
	fn   func(*Viewer)
	done chan struct{}
}

// Session runs a Viewer on a single goroutine. Page input, clock ticks and
// autoplay advances are all funnelled through Run, and each handled event
// publishes its frame before the next event is read.
type Session struct {
	id     string
	v      *Viewer
	pub    Publisher
	logger *zap.Logger

	events chan Event
	calls  chan call
	done   chan struct{}

	clockTick *ticker.Repeater
	autoplay  *ticker.Repeater

	seq uint64
}

// NewSession wraps v. Call Run to start it.
func NewSession(v *Viewer, pub Publisher, opts SessionOptions, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 250 * time.Millisecond
	}
	if opts.AutoplayInterval <= 0 {
		opts.AutoplayInterval = 18 * time.Second
	}
	s := &Session{
		id:     uuid.NewString(),
		v:      v,
		pub:    pub,
		logger: logger,
		events: make(chan Event, 256),
		calls:  make(chan call),
		done:   make(chan struct{}),
	}
	s.clockTick = ticker.New("clock", opts.TickInterval, s.post(EvTick), opts.Tickers, logger)
	s.autoplay = ticker.New("autoplay", opts.AutoplayInterval, s.post(EvAdvance), opts.Tickers, logger)
	return s
}

// ID changes on every process start; pages reload when it does.
func (s *Session) ID() string { return s.id }

func (s *Session) post(typ string) func(ctx context.Context) {
	return func(ctx context.Context) {
		select {
		case s.events <- Event{Type: typ}:
		case <-ctx.Done():
		case <-s.done:
		}
	}
}

// Run processes events until ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	s.clockTick.Start()
	defer s.clockTick.Stop()
	defer s.autoplay.Stop()

	s.logger.Info("presentation session started",
		zap.String("session", s.id),
		zap.Int("slides", s.v.Deck().Len()),
	)
	s.publish()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("presentation session stopped", zap.String("session", s.id))
			return
		case ev := <-s.events:
			s.handle(ev)
		case c := <-s.calls:
			c.fn(s.v)
			close(c.done)
		}
	}
}

// Submit queues a page event. It returns false once the session has stopped.
func (s *Session) Submit(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// Do runs fn on the session goroutine and waits for it. Use it to read
// viewer state from other goroutines.
func (s *Session) Do(ctx context.Context, fn func(*Viewer)) error {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case s.calls <- c:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.done:
		return nil
	case <-s.done:
		return ErrStopped
	}
}

// Snapshot returns the current frame without draining one-shot output.
func (s *Session) Snapshot(ctx context.Context) (Frame, error) {
	var f Frame
	err := s.Do(ctx, func(v *Viewer) { f = v.Snapshot() })
	f.Session = s.id
	return f, err
}

func (s *Session) handle(ev Event) {
	if ev.Type == EvCapabilities {
		s.logger.Info("client capabilities", zap.String("session", s.id), zap.Any("caps", ev.Caps))
		return
	}
	if !s.v.Handle(ev) {
		switch ev.Type {
		case EvTick, EvAdvance, EvPointerMove:
			// Fired continuously; a no-op is the common case.
		default:
			s.logger.Debug("event ignored", zap.String("type", ev.Type), zap.String("key", ev.Key), zap.String("command", ev.Command))
		}
		return
	}
	if on, ok := s.v.TakeAutoplayRequest(); ok {
		if on {
			s.autoplay.Start()
		} else {
			s.autoplay.Stop()
		}
	}
	s.publish()
}

func (s *Session) publish() {
	f := s.v.Render()
	s.seq++
	f.Session = s.id
	f.Seq = s.seq
	if s.pub != nil {
		s.pub.Publish(f)
	}
}

package viewer

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"slidedeck/internal/ticker"
)

type chanPublisher struct{ frames chan Frame }

func (p *chanPublisher) Publish(f Frame) { p.frames <- f }

type manualTicker struct {
	interval time.Duration
	c        chan time.Time
	mu       sync.Mutex
	stopped  bool
}

func (m *manualTicker) C() <-chan time.Time { return m.c }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

type manualFactory struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (f *manualFactory) New(d time.Duration) ticker.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{interval: d, c: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *manualFactory) with(d time.Duration) []*manualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*manualTicker
	for _, t := range f.tickers {
		if t.interval == d {
			out = append(out, t)
		}
	}
	return out
}

const testAutoplay = 18 * time.Second

func startSession(t *testing.T) (*Session, *chanPublisher, *manualFactory, context.CancelFunc) {
	t.Helper()
	return startSessionWithLogger(t, nil)
}

func startSessionWithLogger(t *testing.T, logger *zap.Logger) (*Session, *chanPublisher, *manualFactory, context.CancelFunc) {
	t.Helper()
	v, _ := newTestViewer(t)
	pub := &chanPublisher{frames: make(chan Frame, 64)}
	ff := &manualFactory{}
	s := NewSession(v, pub, SessionOptions{
		TickInterval:     250 * time.Millisecond,
		AutoplayInterval: testAutoplay,
		Tickers:          ff.New,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	waitFrame(t, pub)
	return s, pub, ff, cancel
}

func waitFrame(t *testing.T, pub *chanPublisher) Frame {
	t.Helper()
	select {
	case f := <-pub.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame published")
		return Frame{}
	}
}

func TestSessionPublishesPerEvent(t *testing.T) {
	s, pub, _, _ := startSession(t)
	s.Submit(key("ArrowRight"))
	f := waitFrame(t, pub)
	if f.Slide != 2 || f.Session != s.ID() || f.Seq != 2 {
		t.Errorf("frame = slide %d session %q seq %d", f.Slide, f.Session, f.Seq)
	}

	// Ignored events publish nothing.
	s.Submit(key("x"))
	s.Submit(key("ArrowRight"))
	if f = waitFrame(t, pub); f.Slide != 3 {
		t.Errorf("slide = %d, want 3", f.Slide)
	}
}

func TestSessionAutoplayStartTwiceKeepsOneTimer(t *testing.T) {
	s, pub, ff, _ := startSession(t)

	s.Submit(cmd(CmdAutoplayStart))
	waitFrame(t, pub)
	s.Submit(cmd(CmdAutoplayStart))
	waitFrame(t, pub)

	timers := ff.with(testAutoplay)
	if len(timers) != 2 {
		t.Fatalf("autoplay tickers created = %d, want 2", len(timers))
	}
	if !timers[0].isStopped() {
		t.Fatal("first autoplay ticker still running")
	}

	timers[1].c <- time.Now()
	if f := waitFrame(t, pub); f.Slide != 2 {
		t.Fatalf("after one advance slide = %d, want 2", f.Slide)
	}
	select {
	case f := <-pub.frames:
		t.Fatalf("extra frame after a single advance: slide %d", f.Slide)
	case <-time.After(50 * time.Millisecond):
	}

	s.Submit(cmd(CmdAutoplayStop))
	if f := waitFrame(t, pub); f.Autoplay {
		t.Error("autoplay still on")
	}
	if !timers[1].isStopped() {
		t.Error("autoplay ticker not stopped")
	}
}

func TestSessionClockTickPublishesOnChange(t *testing.T) {
	s, pub, ff, _ := startSession(t)
	clocks := ff.with(250 * time.Millisecond)
	if len(clocks) != 1 {
		t.Fatalf("clock tickers = %d", len(clocks))
	}

	// The fake clock has not moved, so the tick changes nothing visible.
	clocks[0].c <- time.Now()
	select {
	case <-pub.frames:
		t.Fatal("tick without change published a frame")
	case <-time.After(50 * time.Millisecond):
	}

	var slide int
	if err := s.Do(context.Background(), func(v *Viewer) { slide = v.Navigator().Current() }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if slide != 1 {
		t.Errorf("slide = %d", slide)
	}
}

func TestSessionStoppedRejectsWork(t *testing.T) {
	s, _, _, cancel := startSession(t)
	cancel()
	deadline := time.After(2 * time.Second)
	for {
		if err := s.Do(context.Background(), func(*Viewer) {}); err == ErrStopped {
			break
		}
		select {
		case <-deadline:
			t.Fatal("session did not stop")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if s.Submit(key("ArrowRight")) {
		t.Error("Submit accepted an event after stop")
	}
}

func TestSessionDoesNotLogIdlePointerMoves(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, pub, _, _ := startSessionWithLogger(t, zap.New(core))

	for i := 0; i < 10; i++ {
		s.Submit(Event{Type: EvPointerMove, X: float64(i), Y: 5})
	}
	s.Submit(key("x"))
	s.Submit(key("ArrowRight"))
	waitFrame(t, pub)

	ignored := logs.FilterMessage("event ignored").All()
	if len(ignored) != 1 {
		t.Fatalf("ignored-event lines = %d, want 1", len(ignored))
	}
	if got := ignored[0].ContextMap()["key"]; got != "x" {
		t.Errorf("logged key = %v", got)
	}
}

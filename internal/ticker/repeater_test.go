package ticker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type fakeFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *fakeFactory) New(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *fakeFactory) all() []*fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fakeTicker(nil), f.tickers...)
}

func TestStartTwiceLeavesOneLoop(t *testing.T) {
	ff := &fakeFactory{}
	fired := make(chan struct{}, 10)
	r := New("autoplay", time.Second, func(context.Context) { fired <- struct{}{} }, ff.New, nil)

	r.Start()
	r.Start()
	defer r.Stop()

	ts := ff.all()
	if len(ts) != 2 {
		t.Fatalf("expected 2 tickers created, got %d", len(ts))
	}
	if !ts[0].stopped.Load() {
		t.Error("first ticker should be stopped after restart")
	}
	if ts[1].stopped.Load() {
		t.Error("second ticker should still be running")
	}

	ts[1].c <- time.Now()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("tick did not fire")
	}
	select {
	case <-fired:
		t.Fatal("a single tick fired twice")
	case <-time.After(20 * time.Millisecond):
	}

	// Nobody reads the first ticker any more.
	select {
	case ts[0].c <- time.Now():
		t.Fatal("stale loop still receiving ticks")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	ff := &fakeFactory{}
	r := New("clock", time.Second, func(context.Context) {}, ff.New, nil)
	r.Stop()
	r.Start()
	if !r.Running() {
		t.Fatal("expected running")
	}
	r.Stop()
	r.Stop()
	if r.Running() {
		t.Fatal("expected stopped")
	}
	if !ff.all()[0].stopped.Load() {
		t.Error("ticker not stopped")
	}
}

func TestStopUnblocksPendingCallback(t *testing.T) {
	ff := &fakeFactory{}
	block := make(chan struct{})
	entered := make(chan struct{})
	r := New("blocking", time.Second, func(ctx context.Context) {
		close(entered)
		select {
		case <-block:
		case <-ctx.Done():
		}
	}, ff.New, nil)
	r.Start()
	ff.all()[0].c <- time.Now()
	<-entered

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a pending callback")
	}
}

package viewer

import (
	"testing"
	"time"
)

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		d      time.Duration
		want   Swipe
	}{
		{"fast horizontal left", 60, 10, 300 * time.Millisecond, SwipeNext},
		{"fast horizontal right", -60, 10, 300 * time.Millisecond, SwipePrev},
		{"too diagonal", 60, 30, 300 * time.Millisecond, SwipeNone},
		{"too short", 40, 0, 100 * time.Millisecond, SwipeNone},
		{"too slow", 200, 0, 500 * time.Millisecond, SwipeNone},
		{"vertical", 5, 200, 100 * time.Millisecond, SwipeNone},
	}
	for _, tt := range tests {
		if got := ClassifySwipe(tt.dx, tt.dy, tt.d); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func touch(typ string, x, y float64, at int64) Event {
	return Event{Type: typ, X: x, Y: y, At: at, Touch: true}
}

func TestSwipeNavigates(t *testing.T) {
	v, _ := newTestViewer(t)
	v.Handle(touch(EvTouchStart, 300, 200, 1000))
	if !v.Handle(touch(EvTouchEnd, 240, 190, 1300)) {
		t.Fatal("swipe not registered")
	}
	if v.Navigator().Current() != 2 {
		t.Fatalf("slide = %d, want 2", v.Navigator().Current())
	}

	v.Handle(touch(EvTouchStart, 240, 200, 2000))
	v.Handle(touch(EvTouchEnd, 300, 170, 2300))
	if v.Navigator().Current() != 2 {
		t.Errorf("diagonal swipe navigated to %d", v.Navigator().Current())
	}

	v.Handle(touch(EvTouchStart, 240, 200, 3000))
	v.Handle(touch(EvTouchEnd, 300, 200, 3100))
	if v.Navigator().Current() != 1 {
		t.Errorf("right swipe: slide = %d, want 1", v.Navigator().Current())
	}
}

func TestSwipeBlockedByPenAndOverlays(t *testing.T) {
	v, _ := newTestViewer(t)
	v.Handle(cmd(CmdPen))
	v.Handle(touch(EvTouchStart, 300, 200, 0))
	v.Handle(touch(EvTouchEnd, 200, 200, 100))
	if v.Navigator().Current() != 1 {
		t.Fatal("swipe navigated while pen is on")
	}
	v.Handle(cmd(CmdPen))

	v.Handle(cmd(CmdHelp))
	v.Handle(touch(EvTouchStart, 300, 200, 0))
	v.Handle(touch(EvTouchEnd, 200, 200, 100))
	if v.Navigator().Current() != 1 {
		t.Fatal("swipe navigated under help overlay")
	}
	v.Handle(cmd(CmdCloseHelp))

	// A touch that started under an overlay does not count once it closes.
	v.Handle(touch(EvTouchEnd, 200, 200, 100))
	if v.Navigator().Current() != 1 {
		t.Error("stale touch start navigated")
	}
}

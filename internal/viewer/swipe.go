package viewer

import (
	"math"
	"time"
)

const (
	swipeMinDistance = 40.0
	swipeMaxDuration = 500 * time.Millisecond
	// swipeRatio is how much larger the horizontal travel must be than the vertical.
	swipeRatio = 2.0
)

// Swipe is the navigation a gesture maps to.
type Swipe int

const (
	SwipeNone Swipe = iota
	SwipeNext
	SwipePrev
)

// ClassifySwipe maps a finished touch to navigation. dx and dy are
// start minus end, so dragging the finger left gives a positive dx and
// advances.
func ClassifySwipe(dx, dy float64, d time.Duration) Swipe {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax <= ay*swipeRatio || ax <= swipeMinDistance || d >= swipeMaxDuration {
		return SwipeNone
	}
	if dx > 0 {
		return SwipeNext
	}
	return SwipePrev
}

// swipeTracker remembers where the current touch started.
type swipeTracker struct {
	armed  bool
	x, y   float64
	atMsec int64
}

func (s *swipeTracker) begin(x, y float64, at int64) {
	s.armed = true
	s.x, s.y, s.atMsec = x, y, at
}

func (s *swipeTracker) end(x, y float64, at int64) Swipe {
	if !s.armed {
		return SwipeNone
	}
	s.armed = false
	return ClassifySwipe(s.x-x, s.y-y, time.Duration(at-s.atMsec)*time.Millisecond)
}

func (s *swipeTracker) cancel() { s.armed = false }

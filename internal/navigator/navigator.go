// Package navigator owns the current slide index and its URL-fragment locator.
package navigator

import (
	"fmt"
	"strconv"
	"strings"
)

// DebugLocator turns on the one-time capability dump.
const DebugLocator = "#debug"

// Navigator keeps the 1-based slide index within [1, total].
type Navigator struct {
	total   int
	current int
	// writeLocator is set when the last move should be mirrored into the
	// fragment. Moves that came from the fragment leave it cleared.
	writeLocator bool
}

// New returns a navigator positioned on slide 1. total below 1 is treated as 1.
func New(total int) *Navigator {
	if total < 1 {
		total = 1
	}
	return &Navigator{total: total, current: 1}
}

func (n *Navigator) Total() int   { return n.total }
func (n *Navigator) Current() int { return n.current }

func (n *Navigator) AtFirst() bool { return n.current == 1 }
func (n *Navigator) AtLast() bool  { return n.current == n.total }

// GoTo clamps i into range, moves there and requests a locator write.
func (n *Navigator) GoTo(i int) {
	n.current = clamp(i, 1, n.total)
	n.writeLocator = true
}

// GoToSilently moves like GoTo but leaves the locator alone.
func (n *Navigator) GoToSilently(i int) {
	n.current = clamp(i, 1, n.total)
	n.writeLocator = false
}

// Next advances one slide, wrapping from the last back to the first.
func (n *Navigator) Next() {
	if n.current < n.total {
		n.GoTo(n.current + 1)
		return
	}
	n.GoTo(1)
}

// Prev goes back one slide; no-op on the first.
func (n *Navigator) Prev() {
	if n.current > 1 {
		n.GoTo(n.current - 1)
	}
}

// ApplyLocator jumps to the slide named by an external fragment without
// writing it back. Unparseable or out-of-range values are ignored.
func (n *Navigator) ApplyLocator(s string) bool {
	i, ok := ParseLocator(s)
	if !ok || i < 1 || i > n.total {
		return false
	}
	n.GoToSilently(i)
	return true
}

// Locator is the fragment for the current slide.
func (n *Navigator) Locator() string { return "#" + strconv.Itoa(n.current) }

// TakeLocatorWrite reports whether the page should rewrite its fragment and
// clears the request.
func (n *Navigator) TakeLocatorWrite() bool {
	w := n.writeLocator
	n.writeLocator = false
	return w
}

// Progress is (current-1)/(total-1), or 0 for a single-slide deck.
func (n *Navigator) Progress() float64 {
	if n.total <= 1 {
		return 0
	}
	return float64(n.current-1) / float64(n.total-1)
}

// Counter renders "current / total".
func (n *Navigator) Counter() string { return fmt.Sprintf("%d / %d", n.current, n.total) }

// ParseLocator reads a decimal slide number from "#3", "3" or " #3 ".
func ParseLocator(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if s == "" {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// IsDebugLocator reports whether s asks for the capability dump.
func IsDebugLocator(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), DebugLocator)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

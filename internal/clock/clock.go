// Package clock measures elapsed talk time against a target duration.
package clock

import (
	"fmt"
	"time"
)

// Status is the color hint shown next to the elapsed time.
type Status string

const (
	StatusNominal Status = "nominal"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// warnRatio is the share of the target after which the timer turns amber.
const warnRatio = 0.85

// Clock tracks elapsed presentation time against a fixed target.
// Elapsed time is always derived from the start timestamp.
type Clock struct {
	start  time.Time
	target time.Duration
	now    func() time.Time
}

// New starts a clock at now(). A nil now uses time.Now.
func New(target time.Duration, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{start: now(), target: target, now: now}
}

// Reset restarts the clock from the current time.
func (c *Clock) Reset() { c.start = c.now() }

func (c *Clock) Target() time.Duration { return c.target }

func (c *Clock) Elapsed() time.Duration {
	d := c.now().Sub(c.start)
	if d < 0 {
		return 0
	}
	return d
}

// Status compares elapsed time with the target.
func (c *Clock) Status() Status {
	return StatusFor(c.Elapsed(), c.target)
}

// StatusFor is Status for explicit values.
func StatusFor(elapsed, target time.Duration) Status {
	switch {
	case elapsed > target:
		return StatusOver
	case float64(elapsed) > float64(target)*warnRatio:
		return StatusWarning
	default:
		return StatusNominal
	}
}

// Display renders "MM:SS / MM:SS".
func (c *Clock) Display() string {
	return Format(c.Elapsed()) + " / " + Format(c.target)
}

// Format renders d as MM:SS, flooring to whole seconds.
func Format(d time.Duration) string {
	sec := int64(d / time.Second)
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

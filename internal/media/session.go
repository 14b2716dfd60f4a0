// Package media is the modal viewer for figures and embedded documents.
package media

import "math"

// Kind is what the modal currently shows.
type Kind string

const (
	KindNone        Kind = ""
	KindImage       Kind = "image"
	KindDocument    Kind = "document"
	KindPlaceholder Kind = "placeholder"
)

const (
	MinScale = 0.25
	MaxScale = 6.0

	stepFactor      = 1.15
	wheelInFactor   = 1.08
	wheelOutFactor  = 0.92
	defaultHintText = "Put an image here (image: ...) to get a real zoom."
)

// Offset is a pan offset in CSS pixels.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Session is the state of the media modal. The zero value is closed.
type Session struct {
	kind  Kind
	title string
	src   string
	text  string

	scale float64
	pan   Offset

	panning  bool
	dragFrom Offset
	panFrom  Offset
}

// OpenImage shows src with pan and zoom. An empty src shows placeholder text
// instead and disables pan and zoom.
func (s *Session) OpenImage(title, src, placeholderText string) {
	s.reset()
	if title == "" {
		title = "Viewer"
	}
	if src == "" {
		s.kind = KindPlaceholder
		s.title = title + " (placeholder)"
		s.text = placeholderText
		if s.text == "" {
			s.text = defaultHintText
		}
		return
	}
	s.kind = KindImage
	s.title = title
	s.src = src
}

// OpenDocument embeds url. Paging and zoom belong to the embedded viewer.
func (s *Session) OpenDocument(title, url string) {
	s.reset()
	if title == "" {
		title = "Document"
	}
	s.kind = KindDocument
	s.title = title
	s.src = url
}

// Close discards the session.
func (s *Session) Close() { s.reset() }

func (s *Session) reset() {
	*s = Session{scale: 1}
}

func (s *Session) Open() bool     { return s.kind != KindNone }
func (s *Session) Kind() Kind     { return s.kind }
func (s *Session) Title() string  { return s.title }
func (s *Session) Source() string { return s.src }
func (s *Session) Text() string   { return s.text }
func (s *Session) Offset() Offset { return s.pan }
func (s *Session) Panning() bool  { return s.panning }

// Scale is the current zoom factor, 1 when nothing is zoomed.
func (s *Session) Scale() float64 {
	if s.scale == 0 {
		return 1
	}
	return s.scale
}

// ZoomIn multiplies the scale by one step.
func (s *Session) ZoomIn() bool { return s.zoom(stepFactor) }

// ZoomOut divides the scale by one step.
func (s *Session) ZoomOut() bool { return s.zoom(1 / stepFactor) }

// Wheel zooms by one notch: scrolling down zooms out, up zooms in.
func (s *Session) Wheel(deltaY float64) bool {
	switch {
	case deltaY > 0:
		return s.zoom(wheelOutFactor)
	case deltaY < 0:
		return s.zoom(wheelInFactor)
	}
	return false
}

// ResetZoom restores scale 1 and no pan.
func (s *Session) ResetZoom() {
	s.scale = 1
	s.pan = Offset{}
}

func (s *Session) zoom(f float64) bool {
	if s.kind != KindImage {
		return false
	}
	s.scale = clamp(s.Scale()*f, MinScale, MaxScale)
	return true
}

// BeginPan captures the drag origin.
func (s *Session) BeginPan(x, y float64) bool {
	if s.kind != KindImage {
		return false
	}
	s.panning = true
	s.dragFrom = Offset{X: x, Y: y}
	s.panFrom = s.pan
	return true
}

// MovePan sets the pan to the offset at drag start plus the drag delta.
func (s *Session) MovePan(x, y float64) bool {
	if !s.panning || s.kind != KindImage {
		return false
	}
	s.pan = Offset{
		X: s.panFrom.X + (x - s.dragFrom.X),
		Y: s.panFrom.Y + (y - s.dragFrom.Y),
	}
	return true
}

// EndPan releases the drag.
func (s *Session) EndPan() bool {
	if !s.panning {
		return false
	}
	s.panning = false
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

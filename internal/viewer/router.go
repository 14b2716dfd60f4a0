package viewer

import (
	"slidedeck/internal/annotate"
	"slidedeck/internal/modes"
)

// Handle applies one event and reports whether the page needs a new frame.
func (v *Viewer) Handle(ev Event) bool {
	switch ev.Type {
	case EvKey:
		return v.handleKey(ev.Key, ev.Editable)
	case EvCommand:
		return v.handleCommand(ev)
	case EvPointerDown, EvPointerMove, EvPointerUp, EvPointerLeave:
		return v.handlePointer(ev)
	case EvTouchStart:
		if v.swipeBlocked() {
			v.swipe.cancel()
			return false
		}
		v.swipe.begin(ev.X, ev.Y, ev.At)
		return false
	case EvTouchEnd:
		return v.handleTouchEnd(ev)
	case EvWheel:
		return v.media.Wheel(ev.DeltaY)
	case EvResize:
		return v.surface.Resize(ev.Width, ev.Height, ev.DPR)
	case EvLocator:
		v.ApplyLocator(ev.Hash)
		return true
	case EvTheme:
		v.dark = ev.Dark
		return true
	case EvHello:
		return true
	case EvTick:
		return v.timerChanged()
	case EvAdvance:
		return v.Advance()
	}
	return false
}

// handleKey maps a KeyboardEvent.key value. Keys typed into form controls
// are left alone.
func (v *Viewer) handleKey(key string, editable bool) bool {
	if editable {
		return false
	}
	switch key {
	case "Escape":
		v.Escape()
	case "ArrowLeft", "a", "A", "PageUp":
		v.Prev()
	case "ArrowRight", "d", "D", " ", "PageDown":
		v.Next()
	case "Home":
		v.GoTo(1)
	case "End":
		v.GoTo(v.nav.Total())
	case "o", "O":
		v.ToggleOverview()
	case "p", "P":
		v.ToggleNotes()
	case "l", "L":
		v.SetLaser(!v.modes.Has(modes.Laser))
	case "r", "R":
		v.SetPen(!v.modes.Has(modes.Pen))
	case "c", "C":
		v.ClearInk()
	case "f", "F":
		v.effect(EffectFullscreen)
	case "t", "T":
		v.ToggleAutoplay()
	case "h", "H":
		v.toolbarHidden = !v.toolbarHidden
	case "?":
		v.ToggleHelp()
	case "+", "=":
		return v.media.ZoomIn()
	case "-", "_":
		return v.media.ZoomOut()
	default:
		return false
	}
	return true
}

func (v *Viewer) handleCommand(ev Event) bool {
	switch ev.Command {
	case CmdPrev:
		v.Prev()
	case CmdNext:
		v.Next()
	case CmdJump:
		v.GoTo(ev.Slide)
	case CmdHelp:
		v.ToggleHelp()
	case CmdCloseHelp:
		v.CloseHelp()
	case CmdOverview:
		v.ToggleOverview()
	case CmdCloseOverview:
		v.CloseOverview()
	case CmdSelectSlide:
		v.SelectOverview(ev.Slide)
	case CmdNotes:
		v.ToggleNotes()
	case CmdLaser:
		v.SetLaser(!v.modes.Has(modes.Laser))
	case CmdPen:
		v.SetPen(!v.modes.Has(modes.Pen))
	case CmdClear:
		v.ClearInk()
	case CmdAutoplay:
		v.ToggleAutoplay()
	case CmdAutoplayStart:
		v.SetAutoplay(true)
	case CmdAutoplayStop:
		v.SetAutoplay(false)
	case CmdFullscreen:
		v.effect(EffectFullscreen)
	case CmdPrint:
		v.effect(EffectPrint)
	case CmdToolbar:
		v.toolbarHidden = !v.toolbarHidden
	case CmdOpenFigure:
		return v.OpenFigure(ev.Slide, ev.Index)
	case CmdOpenDocument:
		return v.OpenDocument(ev.Index)
	case CmdCloseMedia:
		v.CloseMedia()
	case CmdZoomIn:
		return v.media.ZoomIn()
	case CmdZoomOut:
		return v.media.ZoomOut()
	case CmdResetZoom:
		v.media.ResetZoom()
	case CmdResetTimer:
		v.clock.Reset()
	default:
		return false
	}
	return true
}

// handlePointer routes pointer input: a press on an open image pans it, a
// press elsewhere draws when the pen is on, and plain movement drives the
// laser marker.
func (v *Viewer) handlePointer(ev Event) bool {
	p := annotate.Point{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case EvPointerDown:
		if ev.Target == TargetMedia {
			return v.media.BeginPan(ev.X, ev.Y)
		}
		if v.media.Open() {
			return false
		}
		return v.surface.PointerDown(p)
	case EvPointerMove:
		if v.media.Panning() {
			return v.media.MovePan(ev.X, ev.Y)
		}
		drew := v.surface.PointerMove(p)
		moved := v.surface.Hover(p, ev.Touch)
		return drew || moved
	case EvPointerUp:
		panned := v.media.EndPan()
		wasDrawing := v.surface.Drawing()
		v.surface.PointerUp()
		return panned || wasDrawing
	case EvPointerLeave:
		_, shown := v.surface.Marker()
		v.surface.Leave()
		return shown
	}
	return false
}

// swipeBlocked is true while drawing or while any overlay is open, so ink
// strokes and modal drags are not read as navigation.
func (v *Viewer) swipeBlocked() bool {
	return v.modes.Has(modes.Pen) || v.overlayOpen()
}

func (v *Viewer) handleTouchEnd(ev Event) bool {
	if v.swipeBlocked() {
		v.swipe.cancel()
		return false
	}
	switch v.swipe.end(ev.X, ev.Y, ev.At) {
	case SwipeNext:
		v.Next()
	case SwipePrev:
		v.Prev()
	default:
		return false
	}
	return true
}

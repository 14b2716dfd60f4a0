// Package viewer is the presenter's view-state machine. A Viewer owns every
// component (navigator, modes, ink surface, media modal, clock) and is
// mutated only through Handle and its operation methods; Render turns the
// state into a Frame for the page. A Session runs a Viewer on one goroutine.
package viewer

import (
	"strings"
	"time"

	"slidedeck/internal/annotate"
	"slidedeck/internal/clock"
	"slidedeck/internal/deck"
	"slidedeck/internal/media"
	"slidedeck/internal/modes"
	"slidedeck/internal/navigator"
)

// Effects the page performs itself when the browser supports them.
const (
	EffectFullscreen = "fullscreen"
	EffectPrint      = "print"
)

// Options configures a Viewer.
type Options struct {
	Target   time.Duration
	PenWidth float64
	Now      func() time.Time
	// AssetURL maps a deck-relative media path to a URL the page can load.
	AssetURL func(path string) string
}

type autoplayRequest struct {
	pending bool
	on      bool
}

// Viewer is the presenter state. It is not safe for concurrent use.
type Viewer struct {
	deck     *deck.Deck
	assetURL func(string) string

	nav     *navigator.Navigator
	modes   modes.Set
	surface *annotate.Surface
	media   media.Session
	clock   *clock.Clock
	swipe   swipeTracker

	dark          bool
	toolbarHidden bool
	debug         bool

	effects  []string
	autoplay autoplayRequest

	lastTimer  string
	lastStatus clock.Status
}

// New builds a viewer positioned on the first slide.
func New(d *deck.Deck, opts Options) *Viewer {
	if opts.Target <= 0 {
		opts.Target = 12 * time.Minute
	}
	if opts.AssetURL == nil {
		opts.AssetURL = func(p string) string { return p }
	}
	v := &Viewer{
		deck:     d,
		assetURL: opts.AssetURL,
		nav:      navigator.New(d.Len()),
		surface:  annotate.New(opts.PenWidth),
		clock:    clock.New(opts.Target, opts.Now),
	}
	v.media.Close()
	return v
}

func (v *Viewer) Deck() *deck.Deck                { return v.deck }
func (v *Viewer) Navigator() *navigator.Navigator { return v.nav }
func (v *Viewer) Modes() modes.Set                { return v.modes }
func (v *Viewer) Surface() *annotate.Surface      { return v.surface }
func (v *Viewer) Media() *media.Session           { return &v.media }
func (v *Viewer) Clock() *clock.Clock             { return v.clock }

// setMode is the only place flags change. The ink surface follows the
// laser and pen flags after every change.
func (v *Viewer) setMode(f modes.Flag, on bool) {
	v.modes = v.modes.With(f, on)
	v.surface.EnablePen(v.modes.Has(modes.Pen))
	v.surface.EnableLaser(v.modes.Has(modes.Laser))
}

// overlayOpen reports whether help, overview or the media modal is showing.
func (v *Viewer) overlayOpen() bool {
	return v.modes.Has(modes.Help) || v.modes.Has(modes.Overview) || v.media.Open()
}

func (v *Viewer) Next()      { v.nav.Next() }
func (v *Viewer) Prev()      { v.nav.Prev() }
func (v *Viewer) GoTo(n int) { v.nav.GoTo(n) }

// ApplyLocator reacts to a fragment change on the page. "#debug" asks the
// page for a capability report; anything unparseable is ignored.
func (v *Viewer) ApplyLocator(hash string) {
	if navigator.IsDebugLocator(hash) {
		v.debug = true
		return
	}
	v.nav.ApplyLocator(hash)
}

func (v *Viewer) ToggleNotes() { v.setMode(modes.Notes, !v.modes.Has(modes.Notes)) }
func (v *Viewer) ToggleHelp()  { v.setMode(modes.Help, !v.modes.Has(modes.Help)) }
func (v *Viewer) CloseHelp()   { v.setMode(modes.Help, false) }

func (v *Viewer) ToggleOverview() { v.setMode(modes.Overview, !v.modes.Has(modes.Overview)) }
func (v *Viewer) CloseOverview()  { v.setMode(modes.Overview, false) }

// SelectOverview closes the overview and jumps to slide n.
func (v *Viewer) SelectOverview(n int) {
	v.CloseOverview()
	v.GoTo(n)
}

func (v *Viewer) SetLaser(on bool) { v.setMode(modes.Laser, on) }
func (v *Viewer) SetPen(on bool)   { v.setMode(modes.Pen, on) }
func (v *Viewer) ClearInk()        { v.surface.Clear() }

// SetAutoplay records the flag and asks the session to (re)schedule the
// advance timer, even when the flag did not change.
func (v *Viewer) SetAutoplay(on bool) {
	v.setMode(modes.Autoplay, on)
	v.autoplay = autoplayRequest{pending: true, on: on}
}

func (v *Viewer) ToggleAutoplay() { v.SetAutoplay(!v.modes.Has(modes.Autoplay)) }

// TakeAutoplayRequest returns a pending schedule change and clears it.
func (v *Viewer) TakeAutoplayRequest() (on, ok bool) {
	r := v.autoplay
	v.autoplay = autoplayRequest{}
	return r.on, r.pending
}

// Advance is one autoplay step.
func (v *Viewer) Advance() bool {
	if !v.modes.Has(modes.Autoplay) {
		return false
	}
	v.Next()
	return true
}

// OpenFigure opens the index-th figure (0-based) of slide n.
func (v *Viewer) OpenFigure(n, index int) bool {
	s, ok := v.deck.Slide(n)
	if !ok || index < 0 || index >= len(s.Media) {
		return false
	}
	f := s.Media[index]
	src := ""
	if strings.TrimSpace(f.Image) != "" {
		src = v.assetURL(f.Image)
	}
	v.media.OpenImage(f.Title, src, f.Text)
	return true
}

// OpenDocument embeds the index-th deck document (0-based).
func (v *Viewer) OpenDocument(index int) bool {
	if index < 0 || index >= len(v.deck.Documents) {
		return false
	}
	doc := v.deck.Documents[index]
	v.media.OpenDocument(doc.Title, v.assetURL(doc.URL))
	return true
}

func (v *Viewer) CloseMedia() { v.media.Close() }

// Escape closes the topmost overlay (help, then overview, then media). With
// nothing open it puts the laser and pen away.
func (v *Viewer) Escape() {
	switch {
	case v.modes.Has(modes.Help):
		v.CloseHelp()
	case v.modes.Has(modes.Overview):
		v.CloseOverview()
	case v.media.Open():
		v.CloseMedia()
	default:
		v.SetLaser(false)
		v.SetPen(false)
	}
}

func (v *Viewer) effect(name string) { v.effects = append(v.effects, name) }

// timerChanged reports whether the clock display moved since the last frame.
func (v *Viewer) timerChanged() bool {
	return v.clock.Display() != v.lastTimer || v.clock.Status() != v.lastStatus
}

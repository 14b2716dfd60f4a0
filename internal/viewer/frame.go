package viewer

import (
	"slidedeck/internal/annotate"
	"slidedeck/internal/clock"
	"slidedeck/internal/media"
	"slidedeck/internal/modes"
)

// Frame is everything the page needs to draw the current state. The page
// applies it as-is and keeps no state of its own.
type Frame struct {
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`

	Slide        int     `json:"slide"`
	Total        int     `json:"total"`
	Title        string  `json:"title"`
	Locator      string  `json:"locator"`
	WriteLocator bool    `json:"write_locator"`
	Progress     float64 `json:"progress"`
	Counter      string  `json:"counter"`
	PrevDisabled bool    `json:"prev_disabled"`
	NextLabel    string  `json:"next_label"`

	Notes NotesView `json:"notes"`
	Mode  string    `json:"mode"`
	Timer TimerView `json:"timer"`

	Autoplay      bool           `json:"autoplay"`
	Help          bool           `json:"help"`
	Overview      []OverviewTile `json:"overview,omitempty"`
	ToolbarHidden bool           `json:"toolbar_hidden"`

	Media *MediaView      `json:"media,omitempty"`
	Laser *annotate.Point `json:"laser,omitempty"`
	Pen   bool            `json:"pen"`
	Ink   InkView         `json:"ink"`

	Effects             []string `json:"effects,omitempty"`
	RequestCapabilities bool     `json:"request_capabilities,omitempty"`
}

type NotesView struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

type TimerView struct {
	Text   string       `json:"text"`
	Status clock.Status `json:"status"`
}

type OverviewTile struct {
	Slide   int    `json:"slide"`
	Heading string `json:"heading"`
	Sub     string `json:"sub"`
	Active  bool   `json:"active"`
}

type MediaView struct {
	Kind  media.Kind   `json:"kind"`
	Title string       `json:"title"`
	Src   string       `json:"src,omitempty"`
	Text  string       `json:"text,omitempty"`
	Scale float64      `json:"scale"`
	Pan   media.Offset `json:"pan"`
}

// InkView carries ink drawn since the previous frame. Reset tells the page
// to wipe its canvas (and fetch /ink.png when Revision is new to it).
type InkView struct {
	Revision int                `json:"revision"`
	Reset    bool               `json:"reset,omitempty"`
	Segments []annotate.Segment `json:"segments,omitempty"`
}

// nextLabelEnd is shown on the next button of the last slide.
const nextLabelEnd = "End"

// Render builds the frame for the current state and drains one-shot output:
// pending ink segments, effects, the locator write request and the
// capability request.
func (v *Viewer) Render() Frame {
	f := v.snapshot()

	f.WriteLocator = v.nav.TakeLocatorWrite()
	segs, reset := v.surface.TakeSegments()
	f.Ink.Segments, f.Ink.Reset = segs, reset
	f.Effects, v.effects = v.effects, nil
	f.RequestCapabilities, v.debug = v.debug, false

	v.lastTimer, v.lastStatus = f.Timer.Text, f.Timer.Status
	return f
}

// Snapshot builds the frame without draining anything.
func (v *Viewer) Snapshot() Frame { return v.snapshot() }

func (v *Viewer) snapshot() Frame {
	cur := v.nav.Current()
	slide, _ := v.deck.Slide(cur)

	f := Frame{
		Slide:        cur,
		Total:        v.nav.Total(),
		Title:        slide.Title,
		Locator:      v.nav.Locator(),
		Progress:     v.nav.Progress() * 100,
		Counter:      v.nav.Counter(),
		PrevDisabled: v.nav.AtFirst(),
		NextLabel:    "▶",
		Notes: NotesView{
			Visible: v.modes.Has(modes.Notes),
			Text:    slide.NotesText(),
		},
		Mode: "Mode: " + v.modes.Label(v.dark),
		Timer: TimerView{
			Text:   v.clock.Display(),
			Status: v.clock.Status(),
		},
		Autoplay:      v.modes.Has(modes.Autoplay),
		Help:          v.modes.Has(modes.Help),
		ToolbarHidden: v.toolbarHidden,
		Pen:           v.modes.Has(modes.Pen),
		Ink:           InkView{Revision: v.surface.Revision()},
	}
	if v.nav.AtLast() {
		f.NextLabel = nextLabelEnd
	}

	if v.modes.Has(modes.Overview) {
		f.Overview = make([]OverviewTile, 0, v.deck.Len())
		for _, s := range v.deck.Slides {
			heading, sub := s.OverviewCaption()
			f.Overview = append(f.Overview, OverviewTile{
				Slide:   s.Index,
				Heading: heading,
				Sub:     sub,
				Active:  s.Index == cur,
			})
		}
	}

	if v.media.Open() {
		f.Media = &MediaView{
			Kind:  v.media.Kind(),
			Title: v.media.Title(),
			Src:   v.media.Source(),
			Text:  v.media.Text(),
			Scale: v.media.Scale(),
			Pan:   v.media.Offset(),
		}
	}

	if p, ok := v.surface.Marker(); ok {
		f.Laser = &p
	}
	return f
}

package viewer

// Event types sent by the presenter page.
const (
	EvKey          = "key"
	EvCommand      = "command"
	EvPointerDown  = "pointer_down"
	EvPointerMove  = "pointer_move"
	EvPointerUp    = "pointer_up"
	EvPointerLeave = "pointer_leave"
	EvTouchStart   = "touch_start"
	EvTouchEnd     = "touch_end"
	EvWheel        = "wheel"
	EvResize       = "resize"
	EvLocator      = "locator"
	EvTheme        = "theme"
	EvCapabilities = "capabilities"
	EvHello        = "hello"
)

// Event types produced inside the process.
const (
	EvTick    = "tick"
	EvAdvance = "advance"
)

// Commands carried by EvCommand, one per toolbar control.
const (
	CmdPrev          = "prev"
	CmdNext          = "next"
	CmdJump          = "jump"
	CmdHelp          = "help"
	CmdCloseHelp     = "close_help"
	CmdOverview      = "overview"
	CmdCloseOverview = "close_overview"
	CmdSelectSlide   = "select_overview"
	CmdNotes         = "notes"
	CmdLaser         = "laser"
	CmdPen           = "pen"
	CmdClear         = "clear"
	CmdAutoplay      = "autoplay"
	CmdAutoplayStart = "autoplay_start"
	CmdAutoplayStop  = "autoplay_stop"
	CmdFullscreen    = "fullscreen"
	CmdPrint         = "print"
	CmdToolbar       = "toolbar"
	CmdOpenFigure    = "open_figure"
	CmdOpenDocument  = "open_document"
	CmdCloseMedia    = "close_media"
	CmdZoomIn        = "zoom_in"
	CmdZoomOut       = "zoom_out"
	CmdResetZoom     = "reset_zoom"
	CmdResetTimer    = "reset_timer"
)

// Pointer targets.
const (
	TargetStage = "stage"
	TargetMedia = "media"
)

// Event is one input from the page or an internal timer. Only the fields
// relevant to Type are set.
type Event struct {
	Type string `json:"type"`

	// key
	Key      string `json:"key,omitempty"`
	Editable bool   `json:"editable,omitempty"`

	// command
	Command string `json:"command,omitempty"`
	Slide   int    `json:"slide,omitempty"`
	Index   int    `json:"index,omitempty"`

	// pointer, touch, wheel
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Touch  bool    `json:"touch,omitempty"`
	Target string  `json:"target,omitempty"`
	DeltaY float64 `json:"delta_y,omitempty"`
	// At is the page's event timestamp in milliseconds.
	At int64 `json:"at,omitempty"`

	// resize
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	DPR    float64 `json:"dpr,omitempty"`

	// locator
	Hash string `json:"hash,omitempty"`

	// theme
	Dark bool `json:"dark,omitempty"`

	// capabilities
	Caps map[string]any `json:"caps,omitempty"`
}

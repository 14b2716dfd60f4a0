package app

import (
	_ "embed"
	"net/http"
)

//go:embed web/present.html
var presentPage []byte

// GET /present -> presenter UI: slide stage, ink canvas, toolbar and overlays.
// The page keeps no state; it forwards input on /ws and applies frames.
func (s *Server) handlePresent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(presentPage)
}

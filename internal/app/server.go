package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"slidedeck/internal/config"
	"slidedeck/internal/deck"
	"slidedeck/internal/hub"
	"slidedeck/internal/util"
	"slidedeck/internal/viewer"
)

// AssetPrefix is where files next to the deck manifest are served.
const AssetPrefix = "/assets/"

// AssetURL maps a deck-relative path to its URL under AssetPrefix. Absolute
// URLs are returned unchanged.
func AssetURL(p string) string {
	if strings.Contains(p, "://") || strings.HasPrefix(p, "//") {
		return p
	}
	return AssetPrefix + strings.TrimLeft(p, "/")
}

// Server exposes one presentation session over HTTP and websocket.
type Server struct {
	deck     *deck.Deck
	session  *viewer.Session
	hub      *hub.Hub
	logger   *zap.Logger
	cfg      config.ServerConfig
	upgrader websocket.Upgrader
	router   chi.Router
}

func NewServer(d *deck.Deck, session *viewer.Session, h *hub.Hub, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		deck:    d,
		session: session,
		hub:     h,
		logger:  logger,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return originAllowed(cfg.AllowedOrigins, r) },
		},
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// originAllowed applies server.allowed_origins to websocket upgrades.
// Requests without an Origin header and same-origin pages always pass, and
// an empty list allows everything as the CORS middleware does. A pattern may
// hold one "*" wildcard.
func originAllowed(allowed []string, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(allowed) == 0 {
		return true
	}
	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	origin = strings.ToLower(origin)
	for _, pattern := range allowed {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "*" || pattern == origin {
			return true
		}
		if prefix, suffix, ok := strings.Cut(pattern, "*"); ok &&
			len(origin) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(util.Logging(s.logger))
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/present", http.StatusFound)
	})
	r.Get("/present", s.handlePresent)
	r.Get("/ws", s.handleWS)
	r.Get("/deck", s.handleDeck)
	r.Get("/state", s.handleState)
	r.Get("/ink.png", s.handleInk)
	r.Get("/qr.png", s.handleQR)

	if s.deck.Dir != "" {
		files := http.StripPrefix(AssetPrefix, http.FileServer(http.Dir(s.deck.Dir)))
		r.Handle(AssetPrefix+"*", files)
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type outlineSlide struct {
	Index     int           `json:"index"`
	Title     string        `json:"title"`
	Section   string        `json:"section,omitempty"`
	JumpLabel string        `json:"jump_label"`
	HTML      string        `json:"html"`
	Media     []deck.Figure `json:"media,omitempty"`
	HasNotes  bool          `json:"has_notes"`
}

type outline struct {
	Title     string          `json:"title"`
	Slides    []outlineSlide  `json:"slides"`
	Documents []deck.Document `json:"documents,omitempty"`
}

// GET /deck -> slide bodies and captions; the page builds its stage from it.
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	out := outline{Title: s.deck.Title, Slides: make([]outlineSlide, 0, s.deck.Len())}
	for _, sl := range s.deck.Slides {
		out.Slides = append(out.Slides, outlineSlide{
			Index:     sl.Index,
			Title:     sl.Title,
			Section:   sl.Section,
			JumpLabel: sl.JumpLabel(),
			HTML:      sl.HTML,
			Media:     sl.Media,
			HasNotes:  strings.TrimSpace(sl.Notes) != "",
		})
	}
	for _, doc := range s.deck.Documents {
		doc.URL = AssetURL(doc.URL)
		out.Documents = append(out.Documents, doc)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /state -> the current frame, without consuming pending ink or effects.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	f, err := s.session.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// GET /ink.png -> the whole annotation raster, for pages that join late or
// were told to reset.
func (s *Server) handleInk(w http.ResponseWriter, r *http.Request) {
	var (
		buf    bytes.Buffer
		encErr error
	)
	err := s.session.Do(r.Context(), func(v *viewer.Viewer) {
		encErr = v.Surface().EncodePNG(&buf)
	})
	if err != nil {
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}
	if encErr != nil {
		s.logger.Error("encode ink", zap.Error(encErr))
		http.Error(w, "failed to encode ink", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// GET /qr.png -> QR code of the presenter page, for opening it on a tablet.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	link := util.BaseURL(r) + "/present"
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		s.logger.Error("generate qr", zap.String("url", link), zap.Error(err))
		http.Error(w, "failed to generate QR", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

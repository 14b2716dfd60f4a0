package app

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"slidedeck/internal/hub"
	"slidedeck/internal/viewer"
)

// GET /ws
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade", zap.Error(err))
		return
	}

	client := hub.NewClient(s.hub, conn, s.receive)
	if !s.hub.RegisterClient(client) {
		conn.Close()
		return
	}
	client.Start()
}

// receive decodes one page event and hands it to the session.
func (s *Server) receive(msg []byte) {
	var ev viewer.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		s.logger.Warn("malformed event", zap.Error(err), zap.Int("bytes", len(msg)))
		return
	}
	switch ev.Type {
	case "", viewer.EvTick, viewer.EvAdvance:
		s.logger.Debug("event rejected", zap.String("type", ev.Type))
		return
	}
	if !s.session.Submit(ev) {
		s.logger.Debug("event after session stop", zap.String("type", ev.Type))
	}
}

// Publisher turns frames into websocket messages on a Hub.
type Publisher struct {
	hub    *hub.Hub
	logger *zap.Logger
}

func NewPublisher(h *hub.Hub, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{hub: h, logger: logger}
}

func (p *Publisher) Publish(f viewer.Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		p.logger.Error("encode frame", zap.Uint64("seq", f.Seq), zap.Error(err))
		return
	}
	p.hub.Broadcast(b)
}

package server

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vango"
)

// serveConn mounts a session for conn and processes its events until the
// connection closes. Events of one connection are handled one at a time on
// this goroutine, in arrival order.
func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	defer vango.ReleaseGoroutine()
	defer conn.Close()

	session := NewSession(s.app, s.logger, s.docOpts...)
	defer session.Close()

	s.metrics.activeSessions.Inc()
	defer s.metrics.activeSessions.Dec()

	s.logger.Info("session connected", "session_id", session.ID)
	defer s.logger.Info("session disconnected", "session_id", session.ID)

	conn.SetReadLimit(s.config.MaxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go s.heartbeat(conn, session.ID, done)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
			s.logger.Error("set read deadline", "session_id", session.ID, "error", err)
			s.metrics.wsErrors.WithLabelValues("deadline").Inc()
			return
		}

		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "session_id", session.ID, "error", err)
				s.metrics.wsErrors.WithLabelValues("read").Inc()
			}
			return
		}

		if msgType != websocket.BinaryMessage {
			s.logger.Warn("ignoring non-binary message", "session_id", session.ID, "type", msgType)
			s.metrics.wsErrors.WithLabelValues("message_type").Inc()
			continue
		}

		ev, err := protocol.DecodeEvent(msg)
		if err != nil {
			s.logger.Warn("event decode error", "session_id", session.ID, "error", err)
			s.metrics.wsErrors.WithLabelValues("decode").Inc()
			continue
		}

		if err := session.HandleEvent(ctx, *ev); err != nil {
			if errors.Is(err, ErrSessionClosed) {
				return
			}
			s.metrics.wsErrors.WithLabelValues("handler").Inc()
		}
	}
}

// heartbeat pings the client every HeartbeatInterval until done is closed or
// a ping cannot be written. Pongs are handled by the read loop.
func (s *Server) heartbeat(conn *websocket.Conn, sessionID string, done <-chan struct{}) {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.config.HeartbeatInterval)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("ping failed", "session_id", sessionID, "error", err)
				return
			}

		case <-done:
			return
		}
	}
}

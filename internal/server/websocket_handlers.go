package server

import (
	"log/slog"
	"time"

	"minisocial/internal/middleware"
	"minisocial/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	streamBuffer = 32
	writeWait    = 10 * time.Second
)

// snapshotMessage is the first frame of every feed stream.
type snapshotMessage struct {
	Type string           `json:"type"`
	Feed service.FeedView `json:"feed"`
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// FeedStreamHandler streams view-state events (feedback, highlights, feed
// changes) to the client, starting with a full snapshot of the feed.
func (s *Server) FeedStreamHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		sub := s.feed.Hub().Subscribe(streamBuffer)
		defer sub.Close()

		// The stream is one-way; reading only detects the client going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(snapshotMessage{Type: "feed.snapshot", Feed: s.feed.View()}); err != nil {
			middleware.Logger.Warn("feed stream: snapshot write failed", slog.String("error", err.Error()))
			return
		}

		for {
			select {
			case <-done:
				return
			case ev, ok := <-sub.C:
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					middleware.Logger.Warn("feed stream: write failed", slog.String("error", err.Error()))
					return
				}
			}
		}
	})
}

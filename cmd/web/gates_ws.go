package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/views"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// serveGates pushes the rendered gates fragment on every applied poll until
// the browser goes away or the registry shuts down.
func serveGates(w http.ResponseWriter, r *http.Request, gates *gate.Registry, tournamentID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "tournament_id", tournamentID, "error", err)
		return
	}
	defer conn.Close()

	states, stop := gates.Watch(tournamentID)
	defer stop()

	// The browser never sends anything; reading only detects close and pongs.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case state, ok := <-states:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
				return
			}
			html, err := views.RenderString(r.Context(), views.GatesFragment(state))
			if err != nil {
				slog.Error("failed to render gates", "tournament_id", tournamentID, "error", err)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(html)); err != nil {
				slog.Debug("gates websocket write failed", "tournament_id", tournamentID, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package api

import (
	"net/http"
	"time"

	xlogger "PriceScout/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	progressWriteWait = 10 * time.Second
	progressPingEvery = 30 * time.Second
)

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Progress upgrades the connection and streams analysis lifecycle events
// until the client disconnects.
func (h *PricingHandler) Progress(c echo.Context) error {
	if h.hub == nil {
		return c.NoContent(http.StatusNotImplemented)
	}

	conn, err := progressUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("progress upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(events)

	// drain the read side so close frames are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, rerr := conn.ReadMessage(); rerr != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(progressPingEvery)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
			if werr := conn.WriteJSON(ev); werr != nil {
				return nil
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
			if werr := conn.WriteMessage(websocket.PingMessage, nil); werr != nil {
				return nil
			}
		}
	}
}

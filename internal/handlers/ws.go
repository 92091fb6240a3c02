package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storefront/internal/logging"
	"storefront/internal/orders"
)

const (
	feedWriteWait    = 10 * time.Second
	feedPingInterval = 30 * time.Second
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard SPA is served from a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderFeed streams order change events to the admin dashboard over a
// websocket. Each connection gets its own change-stream subscription; the
// subscription dies with the connection.
func OrderFeed(store *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logging.From(c)

		conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error("feed upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		sub, err := store.Watch(c.Request.Context())
		if err != nil {
			log.Error("order feed watch failed", "err", err)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "feed unavailable"),
				time.Now().Add(feedWriteWait))
			return
		}
		defer sub.Cancel()

		// Reader exists only to notice the client going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					sub.Cancel()
					return
				}
			}
		}()

		ping := time.NewTicker(feedPingInterval)
		defer ping.Stop()

		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
				if err := conn.WriteJSON(ev); err != nil {
					log.Info("feed client write failed", "err", err)
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

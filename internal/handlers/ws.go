package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gradewise-dev/gradewise/internal/realtime"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/gradewise-dev/gradewise/internal/utils"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocket upgrades an authenticated request and streams refresh events for the caller.
func WebSocket(allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	return func(ctx *gin.Context) {
		userID, err := utils.GetCurrentUserID(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		log := utils.Log(ctx)

		ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.WithError(err).Warn("WebSocket upgrade failed")
			return
		}

		conn := realtime.NewConn(ws)

		ws.SetReadLimit(maxMessageSize)
		if err := ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.WithError(err).Warn("Failed to set initial read deadline")
			ws.Close()
			return
		}
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})

		realtime.Default.Register(userID, conn)

		done := make(chan struct{})
		defer func() {
			close(done)
			realtime.Default.Unregister(userID, conn)
			conn.Close()
			log.Info("WebSocket connection closed")
		}()

		err = conn.WriteJSON(realtime.Message{
			Type:    types.MessageConnected,
			Message: "WebSocket connection established",
			UserID:  userID,
		})

		if err != nil {
			log.WithError(err).Warn("Failed to send welcome message")
			return
		}

		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()

			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := conn.WritePing(); err != nil {
						log.WithError(err).Debug("Ping failed")
						return
					}
				}
			}
		}()

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.WithError(err).Warn("WebSocket error")
				}
				break
			}
		}
	}
}

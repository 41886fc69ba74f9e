package controllers

import (
	"net/http"
	"pupshare/backend/app/socket"
	"pupshare/backend/global"

	"github.com/gorilla/websocket"
)

type SocketController struct {
	Hub      *socket.Hub
	upgrader websocket.Upgrader
}

func NewSocketController(h *socket.Hub, allowedOrigin string) *SocketController {
	return &SocketController{
		Hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
	}
}

// Serve upgrades an authenticated request and streams moderation events for
// the caller until the connection closes.
func (c *SocketController) Serve(w http.ResponseWriter, r *http.Request) {
	userID := actor(r).ID
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		global.Logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	client := c.Hub.Register(userID, conn)
	global.Logger.Info().Str("user", userID).Msg("socket connected")
	go client.WritePump()
	client.ReadPump()
	global.Logger.Info().Str("user", userID).Msg("socket disconnected")
}

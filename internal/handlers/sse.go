package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Stream subscribes the caller to their personal event channel and
// holds the connection open until the client disconnects.
func (sh *SSEHandler) Stream(c *gin.Context) {
	userID := callerID(c)
	client := sh.hub.NewSSEClient(userID)
	sh.hub.AddChannel(client, sse.UserChannel(userID))
	defer sh.hub.CloseClient(client)

	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}

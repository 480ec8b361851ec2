package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) StartSession(c *gin.Context) {
	var req struct {
		Persona string                  `json:"persona"`
		Context services.PersonaContext `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := ch.chatService.StartSession(c.Request.Context(), callerID(c), req.Persona, req.Context)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (ch *ChatHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return
	}
	session, err := ch.chatService.GetSession(c.Request.Context(), callerID(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := ch.chatService.SendMessage(c.Request.Context(), callerID(c), sessionID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ch *ChatHandler) RequestChanges(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return
	}
	session, err := ch.chatService.RequestChanges(c.Request.Context(), callerID(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

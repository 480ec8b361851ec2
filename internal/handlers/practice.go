package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type PracticeHandler struct {
	practiceService services.PracticeService
}

func NewPracticeHandler(practiceService services.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

func (ph *PracticeHandler) Start(c *gin.Context) {
	var req struct {
		MeditationID uuid.UUID `json:"meditation_id"`
		Minutes      int       `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MeditationID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	state, err := ph.practiceService.Start(c.Request.Context(), callerID(c), req.MeditationID, req.Minutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (ph *PracticeHandler) StartTimer(c *gin.Context) {
	state, err := ph.practiceService.StartTimer(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ph *PracticeHandler) PauseTimer(c *gin.Context) {
	state, err := ph.practiceService.PauseTimer(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ph *PracticeHandler) ResetTimer(c *gin.Context) {
	state, err := ph.practiceService.ResetTimer(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ph *PracticeHandler) SetDuration(c *gin.Context) {
	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	state, err := ph.practiceService.SetDuration(c.Request.Context(), callerID(c), req.Minutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ph *PracticeHandler) State(c *gin.Context) {
	state, err := ph.practiceService.State(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ph *PracticeHandler) EndEarly(c *gin.Context) {
	session, err := ph.practiceService.EndEarly(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ph *PracticeHandler) SendDebriefMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := ph.practiceService.SendDebriefMessage(c.Request.Context(), callerID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ph *PracticeHandler) CompleteDebrief(c *gin.Context) {
	session, err := ph.practiceService.CompleteDebrief(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ph *PracticeHandler) ListSessions(c *gin.Context) {
	sessions, err := ph.practiceService.ListSessions(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

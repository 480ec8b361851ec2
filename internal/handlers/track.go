package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type TrackHandler struct {
	trackService services.TrackService
}

func NewTrackHandler(trackService services.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

func (th *TrackHandler) ListStages(c *gin.Context) {
	stages, err := th.trackService.ActiveStages(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stages": stages})
}

func (th *TrackHandler) CurrentStage(c *gin.Context) {
	stage, err := th.trackService.CurrentStage(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stage)
}

func (th *TrackHandler) AdvanceStage(c *gin.Context) {
	user, err := th.trackService.AdvanceStage(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (th *TrackHandler) SelectTrack(c *gin.Context) {
	var req struct {
		Track string `json:"track"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := th.trackService.SelectTrack(c.Request.Context(), callerID(c), req.Track)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (th *TrackHandler) ActiveCustomTrack(c *gin.Context) {
	track, err := th.trackService.ActiveCustomTrack(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if track == nil {
		c.JSON(http.StatusOK, gin.H{"custom_track": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"custom_track": track})
}

// FinalizeSession applies a generated track payload to the caller's
// profile and closes the chat session.
func (th *TrackHandler) FinalizeSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return
	}
	track, err := th.trackService.FinalizeTrackSession(c.Request.Context(), callerID(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

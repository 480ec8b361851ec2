package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type TrainingPathHandler struct {
	pathService services.TrainingPathService
}

func NewTrainingPathHandler(pathService services.TrainingPathService) *TrainingPathHandler {
	return &TrainingPathHandler{pathService: pathService}
}

func (th *TrainingPathHandler) Get(c *gin.Context) {
	path, err := th.pathService.Get(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func (th *TrainingPathHandler) AddMeditation(c *gin.Context) {
	var req struct {
		MeditationID uuid.UUID `json:"meditation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MeditationID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	path, err := th.pathService.AddMeditation(c.Request.Context(), callerID(c), req.MeditationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func (th *TrainingPathHandler) CompleteMeditation(c *gin.Context) {
	var req struct {
		MeditationID uuid.UUID `json:"meditation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MeditationID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	path, err := th.pathService.CompleteMeditation(c.Request.Context(), callerID(c), req.MeditationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func (th *TrainingPathHandler) ListCompleted(c *gin.Context) {
	completed, err := th.pathService.ListCompleted(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

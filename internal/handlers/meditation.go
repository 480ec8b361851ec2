package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type MeditationHandler struct {
	meditationService services.MeditationService
}

func NewMeditationHandler(meditationService services.MeditationService) *MeditationHandler {
	return &MeditationHandler{meditationService: meditationService}
}

func (mh *MeditationHandler) List(c *gin.Context) {
	meditations, err := mh.meditationService.List(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meditations": meditations})
}

func (mh *MeditationHandler) Get(c *gin.Context) {
	meditationID, ok := parseIDParam(c, "meditationID")
	if !ok {
		return
	}
	meditation, err := mh.meditationService.Get(c.Request.Context(), meditationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meditation)
}

func (mh *MeditationHandler) CreateCustom(c *gin.Context) {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Instructions string `json:"instructions"`
		Level        string `json:"level"`
		Duration     string `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	meditation, err := mh.meditationService.CreateCustom(c.Request.Context(), callerID(c), req.Title, req.Description, req.Instructions, req.Level, req.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meditation)
}

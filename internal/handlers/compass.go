package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type CompassHandler struct {
	compassService services.CompassService
}

func NewCompassHandler(compassService services.CompassService) *CompassHandler {
	return &CompassHandler{compassService: compassService}
}

func (ch *CompassHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": ch.compassService.Questions()})
}

func (ch *CompassHandler) Submit(c *gin.Context) {
	var req struct {
		Answers []int `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	submission, err := ch.compassService.SubmitQuestionnaire(c.Request.Context(), callerID(c), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (ch *CompassHandler) ListSubmissions(c *gin.Context) {
	submissions, err := ch.compassService.ListSubmissions(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

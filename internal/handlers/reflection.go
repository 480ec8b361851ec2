package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type ReflectionHandler struct {
	reflectionService services.ReflectionService
}

func NewReflectionHandler(reflectionService services.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

func (rh *ReflectionHandler) Generate(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	// Body is optional; an empty prompt yields the default reflection.
	_ = c.ShouldBindJSON(&req)
	reflection, err := rh.reflectionService.Generate(c.Request.Context(), callerID(c), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reflection": reflection})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

const defaultEntryListLimit = 30

type DailyHandler struct {
	dailyService services.DailyService
}

func NewDailyHandler(dailyService services.DailyService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService}
}

func (dh *DailyHandler) List(c *gin.Context) {
	limit := defaultEntryListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := dh.dailyService.List(c.Request.Context(), callerID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (dh *DailyHandler) Create(c *gin.Context) {
	var req struct {
		StageNumber int            `json:"stage_number"`
		TaskRatings map[string]int `json:"task_ratings"`
		DailyRating int            `json:"daily_rating"`
		Notes       string         `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := dh.dailyService.Submit(c.Request.Context(), callerID(c), req.StageNumber, req.TaskRatings, req.DailyRating, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (dh *DailyHandler) Today(c *gin.Context) {
	logged, err := dh.dailyService.HasLoggedToday(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_today": logged})
}

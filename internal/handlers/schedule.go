package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

const defaultUpcomingLimit = 10

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (sh *ScheduleHandler) List(c *gin.Context) {
	schedules, err := sh.scheduleService.List(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (sh *ScheduleHandler) Upcoming(c *gin.Context) {
	limit := defaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	schedules, err := sh.scheduleService.Upcoming(c.Request.Context(), callerID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (sh *ScheduleHandler) Create(c *gin.Context) {
	var req struct {
		Title              string     `json:"title"`
		SourceBookID       *uuid.UUID `json:"source_book_id"`
		ScheduledAt        time.Time  `json:"scheduled_at"`
		Recurrence         string     `json:"recurrence"`
		AIInteractionLevel int        `json:"ai_interaction_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	schedule, err := sh.scheduleService.Create(c.Request.Context(), callerID(c), req.Title, req.SourceBookID, req.ScheduledAt, req.Recurrence, req.AIInteractionLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (sh *ScheduleHandler) Delete(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "scheduleID")
	if !ok {
		return
	}
	if err := sh.scheduleService.Delete(c.Request.Context(), callerID(c), scheduleID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}

func (sh *ScheduleHandler) StartStudySession(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "scheduleID")
	if !ok {
		return
	}
	session, err := sh.scheduleService.StartStudySession(c.Request.Context(), callerID(c), scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (sh *ScheduleHandler) FinishStudySession(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "scheduleID")
	if !ok {
		return
	}
	var req struct {
		SessionID uuid.UUID `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := sh.scheduleService.FinishStudySession(c.Request.Context(), callerID(c), scheduleID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (sh *ScheduleHandler) ListSessions(c *gin.Context) {
	sessions, err := sh.scheduleService.ListSessions(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type JournalHandler struct {
	journalService services.JournalService
}

func NewJournalHandler(journalService services.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

func (jh *JournalHandler) List(c *gin.Context) {
	kind := c.DefaultQuery("kind", types.JournalKindPersonal)
	entries, err := jh.journalService.List(c.Request.Context(), callerID(c), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (jh *JournalHandler) Create(c *gin.Context) {
	var req struct {
		Kind    string `json:"kind"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := jh.journalService.Create(c.Request.Context(), callerID(c), req.Kind, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (jh *JournalHandler) Update(c *gin.Context) {
	entryID, ok := parseIDParam(c, "entryID")
	if !ok {
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := jh.journalService.Update(c.Request.Context(), callerID(c), entryID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (jh *JournalHandler) Delete(c *gin.Context) {
	entryID, ok := parseIDParam(c, "entryID")
	if !ok {
		return
	}
	if err := jh.journalService.Delete(c.Request.Context(), callerID(c), entryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// Analyze returns the AI reading of the entry; dream entries get an
// interpretation, personal entries a supportive analysis.
func (jh *JournalHandler) Analyze(c *gin.Context) {
	entryID, ok := parseIDParam(c, "entryID")
	if !ok {
		return
	}
	entry, err := jh.journalService.AnalyzeEntry(c.Request.Context(), callerID(c), entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

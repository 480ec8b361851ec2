package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/services"
)

type BookHandler struct {
	libraryService services.LibraryService
}

func NewBookHandler(libraryService services.LibraryService) *BookHandler {
	return &BookHandler{libraryService: libraryService}
}

func (bh *BookHandler) List(c *gin.Context) {
	books, err := bh.libraryService.ListBooks(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

func (bh *BookHandler) Add(c *gin.Context) {
	var req struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	book, err := bh.libraryService.AddBook(c.Request.Context(), callerID(c), req.Title, req.Author)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (bh *BookHandler) UpdateStatus(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookID")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	book, err := bh.libraryService.UpdateStatus(c.Request.Context(), callerID(c), bookID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bh *BookHandler) Remove(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookID")
	if !ok {
		return
	}
	if err := bh.libraryService.RemoveBook(c.Request.Context(), callerID(c), bookID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book removed"})
}

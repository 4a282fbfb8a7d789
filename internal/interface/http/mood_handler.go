package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-studio/internal/domain/mood"
)

// CreateMood stores a mood board.
func (h *Handler) CreateMood(c *gin.Context) {
	var req mood.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	m, err := h.moodSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListMoods lists moods newest first.
func (h *Handler) ListMoods(c *gin.Context) {
	moods, err := h.moodSvc.List(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": moods})
}

// GetMood fetches one mood.
func (h *Handler) GetMood(c *gin.Context) {
	m, err := h.moodSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMood replaces a mood's fields.
func (h *Handler) UpdateMood(c *gin.Context) {
	var req mood.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	m, err := h.moodSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMood removes a mood.
func (h *Handler) DeleteMood(c *gin.Context) {
	if err := h.moodSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MoodStats summarizes stored moods.
func (h *Handler) MoodStats(c *gin.Context) {
	stats, err := h.moodSvc.Stats(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-studio/internal/domain/outfit"
)

// GenerateOutfits returns a ranked batch of outfits.
func (h *Handler) GenerateOutfits(c *gin.Context) {
	var req outfit.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	resp, err := h.outfitSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateMoodOutfit returns the outfit closest to a mood.
func (h *Handler) GenerateMoodOutfit(c *gin.Context) {
	var req outfit.MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	resp, err := h.outfitSvc.GenerateForMood(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GeneratedOutfit fetches a recently generated outfit.
func (h *Handler) GeneratedOutfit(c *gin.Context) {
	o, err := h.outfitSvc.Generated(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// TrendingVibes lists the most generated vibes.
func (h *Handler) TrendingVibes(c *gin.Context) {
	vibes, err := h.outfitSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vibes": vibes})
}

// ValidateOutfit checks an item set against the category rules.
func (h *Handler) ValidateOutfit(c *gin.Context) {
	var req outfit.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	resp, err := h.outfitSvc.Validate(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveOutfit keeps a generated or explicit outfit.
func (h *Handler) SaveOutfit(c *gin.Context) {
	var req outfit.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	saved, err := h.outfitSvc.Save(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	h.logger.Info("outfit saved", "id", saved.ID, "subject", subjectOf(c))
	c.JSON(http.StatusCreated, saved)
}

// ListSavedOutfits lists saved outfits, optionally favorites only.
func (h *Handler) ListSavedOutfits(c *gin.Context) {
	var filter outfit.SavedFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abortWithBindError(c, err)
		return
	}
	list, err := h.outfitSvc.ListSaved(c.Request.Context(), filter)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outfits": list})
}

// UpdateSavedOutfit patches name, notes, rating or favorite.
func (h *Handler) UpdateSavedOutfit(c *gin.Context) {
	var req outfit.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	saved, err := h.outfitSvc.UpdateSaved(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// MarkOutfitWorn records that a saved outfit was worn.
func (h *Handler) MarkOutfitWorn(c *gin.Context) {
	saved, err := h.outfitSvc.MarkWorn(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ToggleFavoriteOutfit flips the favorite flag.
func (h *Handler) ToggleFavoriteOutfit(c *gin.Context) {
	saved, err := h.outfitSvc.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteSavedOutfit removes a saved outfit.
func (h *Handler) DeleteSavedOutfit(c *gin.Context) {
	if err := h.outfitSvc.DeleteSaved(c.Request.Context(), c.Param("id")); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SimilarSavedOutfits lists saved outfits with the closest palettes.
func (h *Handler) SimilarSavedOutfits(c *gin.Context) {
	matches, err := h.outfitSvc.SimilarSaved(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

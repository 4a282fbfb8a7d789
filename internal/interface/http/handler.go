package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-studio/internal/domain/color"
	"github.com/yanqian/outfit-studio/internal/domain/mood"
	"github.com/yanqian/outfit-studio/internal/domain/outfit"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	outfitSvc   outfit.Service
	wardrobeSvc wardrobe.Service
	moodSvc     mood.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(outfitSvc outfit.Service, wardrobeSvc wardrobe.Service, moodSvc mood.Service, logger *slog.Logger) *Handler {
	return &Handler{
		outfitSvc:   outfitSvc,
		wardrobeSvc: wardrobeSvc,
		moodSvc:     moodSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type compatibilityRequest struct {
	A string `json:"a" binding:"required"`
	B string `json:"b" binding:"required"`
}

type compatibilityResponse struct {
	Score int           `json:"score"`
	A     color.Profile `json:"a"`
	B     color.Profile `json:"b"`
}

// ColorCompatibility scores a pair of colors.
func (h *Handler) ColorCompatibility(c *gin.Context) {
	var req compatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	c.JSON(http.StatusOK, compatibilityResponse{
		Score: color.Compatibility(req.A, req.B),
		A:     color.Analyze(req.A),
		B:     color.Analyze(req.B),
	})
}

type harmonyRequest struct {
	Colors []string `json:"colors" binding:"required"`
}

type harmonyResponse struct {
	Harmony     float64             `json:"harmony"`
	BestMatches map[string][]string `json:"bestMatches"`
	Suggestions []string            `json:"suggestions"`
}

// ColorHarmony rates a palette, lists each color's best partners within it
// and proposes complementary additions.
func (h *Handler) ColorHarmony(c *gin.Context) {
	var req harmonyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	matches := make(map[string][]string, len(req.Colors))
	for _, target := range req.Colors {
		matches[target] = color.BestMatches(target, req.Colors)
	}
	c.JSON(http.StatusOK, harmonyResponse{
		Harmony:     color.Harmony(req.Colors),
		BestMatches: matches,
		Suggestions: color.Suggest(req.Colors),
	})
}

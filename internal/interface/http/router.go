package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/outfit-studio/internal/domain/auth"
	"github.com/yanqian/outfit-studio/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// A nil auth service leaves the API open.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if media := mediaPath(cfg.Wardrobe.ImageBaseURL); media != "" {
		router.GET(media+"/*key", handler.ServeImage)
	}

	api := router.Group("/api/v1", rateLimitMiddleware(cfg.HTTP.RateLimit, logger), authMiddleware(authSvc))
	{
		api.POST("/colors/compatibility", handler.ColorCompatibility)
		api.POST("/colors/harmony", handler.ColorHarmony)

		api.POST("/outfits/generate", handler.GenerateOutfits)
		api.POST("/outfits/generate/mood", handler.GenerateMoodOutfit)
		api.GET("/outfits/generated/:id", handler.GeneratedOutfit)
		api.GET("/outfits/trending", handler.TrendingVibes)
		api.POST("/outfits/validate", handler.ValidateOutfit)

		api.POST("/outfits/saved", handler.SaveOutfit)
		api.GET("/outfits/saved", handler.ListSavedOutfits)
		api.PATCH("/outfits/saved/:id", handler.UpdateSavedOutfit)
		api.DELETE("/outfits/saved/:id", handler.DeleteSavedOutfit)
		api.POST("/outfits/saved/:id/worn", handler.MarkOutfitWorn)
		api.POST("/outfits/saved/:id/favorite", handler.ToggleFavoriteOutfit)
		api.GET("/outfits/saved/:id/similar", handler.SimilarSavedOutfits)

		api.POST("/items", handler.CreateItem)
		api.GET("/items", handler.ListItems)
		api.GET("/items/stats", handler.ItemStats)
		api.GET("/items/:id", handler.GetItem)
		api.DELETE("/items/:id", handler.DeleteItem)
		api.PUT("/items/:id/image", handler.UploadItemImage)

		api.POST("/moods", handler.CreateMood)
		api.GET("/moods", handler.ListMoods)
		api.GET("/moods/stats", handler.MoodStats)
		api.GET("/moods/:id", handler.GetMood)
		api.PUT("/moods/:id", handler.UpdateMood)
		api.DELETE("/moods/:id", handler.DeleteMood)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

// mediaPath returns the local route prefix for item images, or "" when
// images are served from an absolute URL such as a CDN.
func mediaPath(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if !strings.HasPrefix(base, "/") {
		return ""
	}
	return base
}

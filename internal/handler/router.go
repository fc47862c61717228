package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/config"
	"nuggetube-backend/pkg/logger"
)

type Handlers struct {
	Chat     *ChatHandler
	Drawing  *DrawingHandler
	Flock    *FlockHandler
	Map      *MapHandler
	Adoption *AdoptionHandler
	// MCP is mounted under cfg.MCP.BasePath when set.
	MCP http.Handler
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(logger.GinMiddleware())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	api := router.Group("/api", Identity())
	{
		chat := api.Group("/chat")
		{
			chat.POST("/ask", h.Chat.Ask)
			chat.POST("/send", h.Chat.Send)
			chat.POST("/stream", h.Chat.StreamChat)
			chat.POST("/session", h.Chat.CreateSession)
			chat.POST("/session/list", h.Chat.GetSessionList)
			chat.POST("/session/clear", h.Chat.ClearAllSessions)
			chat.GET("/session/:session_id", h.Chat.GetSession)
			chat.PUT("/session/:session_id", h.Chat.UpdateSessionTitle)
			chat.DELETE("/session/:session_id", h.Chat.DeleteSession)
			chat.GET("/messages/:session_id", h.Chat.GetMessages)
		}

		drawing := api.Group("/drawing")
		{
			drawing.POST("/analyze", h.Drawing.Analyze)
			drawing.POST("/analyze/image", h.Drawing.AnalyzeImage)
		}

		flock := api.Group("/flock")
		{
			flock.GET("", h.Flock.Roster)
			flock.POST("/spawn", h.Flock.Spawn)
			flock.POST("/clear", h.Flock.Clear)
			flock.POST("/birds/:bird_id/toggle", h.Flock.Toggle)
			flock.POST("/birds/:bird_id/care", h.Flock.Care)
		}

		api.GET("/leaderboard", h.Flock.Leaderboard)

		maps := api.Group("/map")
		{
			maps.GET("/markers", h.Map.Markers)
			maps.GET("/viewport", h.Map.Viewport)
			maps.POST("/focus", h.Map.Focus)
		}

		adoption := api.Group("/adoption")
		{
			adoption.GET("/chickens", h.Adoption.List)
			adoption.PUT("/chickens/:id/name", h.Adoption.Rename)
			adoption.POST("/chickens/:id/adopt", h.Adoption.Adopt)
		}
	}

	if h.MCP != nil && cfg.MCP.BasePath != "" {
		base := "/" + strings.Trim(cfg.MCP.BasePath, "/")
		router.Any(base+"/*path", gin.WrapH(h.MCP))
		logger.Infof("MCP endpoint mounted at %s/sse", base)
	}

	return router
}

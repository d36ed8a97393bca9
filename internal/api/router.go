package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/soccerscope/soccerscope/internal/api/handlers"
	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/services"
	"github.com/soccerscope/soccerscope/internal/session"
	"github.com/soccerscope/soccerscope/internal/websocket"
	"github.com/soccerscope/soccerscope/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, pool *dataset.Pool, cache *services.CacheService, sessions *session.Manager, hub *websocket.Hub, cfg *config.Config, logger *logrus.Logger) {
	teamStats := services.NewTeamStatsService(pool, logger)
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second

	teamHandler := handlers.NewTeamHandler(pool, cache, teamStats, cacheTTL)
	playerHandler := handlers.NewPlayerHandler(pool, teamStats)
	categoryHandler := handlers.NewCategoryHandler()
	sessionHandler := handlers.NewSessionHandler(sessions, hub)

	// Team endpoints
	group.GET("/teams/:name/players", teamHandler.GetRoster)
	group.GET("/teams/:name/lineup", teamHandler.GetLineup)
	group.GET("/teams/:name/summary", teamHandler.GetSummary)
	group.GET("/teams/:name/analysis", teamHandler.GetAnalysis)
	group.GET("/teams/:name/heatmap", teamHandler.GetHeatmap)

	// Player endpoints
	group.GET("/players/search", playerHandler.SearchPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)
	group.GET("/players/:id/radar", playerHandler.GetRadar)

	// Category metadata
	group.GET("/categories", categoryHandler.ListCategories)

	// Dashboard session endpoints
	group.POST("/sessions", sessionHandler.CreateSession)
	group.GET("/sessions/:id", sessionHandler.GetSession)
	group.DELETE("/sessions/:id", sessionHandler.DeleteSession)
	group.PUT("/sessions/:id/team", sessionHandler.SetTeam)
	group.POST("/sessions/:id/players", sessionHandler.AddPlayer)
	group.DELETE("/sessions/:id/players/:playerId", sessionHandler.RemovePlayer)
	group.POST("/sessions/:id/categories/:key/toggle", sessionHandler.ToggleCategory)
	group.POST("/sessions/:id/baseline/:key/toggle", sessionHandler.ToggleBaseline)
	group.POST("/sessions/:id/drag", sessionHandler.PickUp)
	group.POST("/sessions/:id/drop", sessionHandler.Drop)
	group.GET("/sessions/:id/chart", sessionHandler.GetChart)
}

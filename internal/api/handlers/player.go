package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/internal/services"
	"github.com/soccerscope/soccerscope/pkg/utils"
)

type PlayerHandler struct {
	pool      *dataset.Pool
	teamStats *services.TeamStatsService
}

func NewPlayerHandler(pool *dataset.Pool, teamStats *services.TeamStatsService) *PlayerHandler {
	return &PlayerHandler{
		pool:      pool,
		teamStats: teamStats,
	}
}

// GetPlayer returns a single player by ID
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	player, ok := h.pool.PlayerByID(playerID)
	if !ok {
		utils.SendNotFound(c, "Player not found")
		return
	}

	utils.SendSuccess(c, player)
}

// SearchPlayers returns players whose name contains the query.
func (h *PlayerHandler) SearchPlayers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.SendValidationError(c, "Query parameter required", "")
		return
	}

	matches := h.pool.Search(query)
	if matches == nil {
		matches = []models.Player{}
	}
	utils.SendSuccess(c, matches)
}

// GetRadar returns the fixed-set radar summary for a player.
func (h *PlayerHandler) GetRadar(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	axes := h.teamStats.Radar(playerID)
	if axes == nil {
		utils.SendNotFound(c, "Player not found")
		return
	}
	utils.SendSuccess(c, axes)
}

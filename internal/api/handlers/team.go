package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/formation"
	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/internal/services"
	"github.com/soccerscope/soccerscope/pkg/utils"
)

type TeamHandler struct {
	pool      *dataset.Pool
	cache     *services.CacheService
	teamStats *services.TeamStatsService
	cacheTTL  time.Duration
}

// NewTeamHandler creates a team handler. cache may be nil when caching is
// disabled.
func NewTeamHandler(pool *dataset.Pool, cache *services.CacheService, teamStats *services.TeamStatsService, cacheTTL time.Duration) *TeamHandler {
	return &TeamHandler{
		pool:      pool,
		cache:     cache,
		teamStats: teamStats,
		cacheTTL:  cacheTTL,
	}
}

// GetRoster returns all players whose squad matches the team name exactly.
func (h *TeamHandler) GetRoster(c *gin.Context) {
	team := c.Param("name")
	ctx := context.Background()

	cacheKey := services.TeamRosterCacheKey(team)
	if h.cache != nil {
		var cached []models.Player
		if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	players := h.pool.GetPlayers(team)
	if len(players) == 0 {
		utils.SendNotice(c, []models.Player{}, "no players found for team")
		return
	}

	if h.cache != nil {
		h.cache.SetWithRetry(ctx, cacheKey, players, h.cacheTTL, 3)
	}
	utils.SendSuccess(c, players)
}

// GetLineup builds the deterministic 4-3-3 starting XI for the team.
func (h *TeamHandler) GetLineup(c *gin.Context) {
	team := c.Param("name")
	ctx := context.Background()

	cacheKey := services.TeamLineupCacheKey(team)
	if h.cache != nil {
		var cached formation.Assignment
		if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	roster := h.pool.GetPlayers(team)
	assignment := formation.BuildLineup(roster)

	if h.cache != nil {
		h.cache.SetWithRetry(ctx, cacheKey, assignment, h.cacheTTL, 3)
	}

	if len(roster) == 0 {
		utils.SendNotice(c, assignment, "no players found for team")
		return
	}
	utils.SendSuccess(c, assignment)
}

// GetSummary returns roster-level aggregates for the team detail panel. Club
// net-transfer metadata comes from the caller as a raw display string and is
// parsed into integer euros; it is applied after the cache so the cached
// aggregate stays metadata-free.
func (h *TeamHandler) GetSummary(c *gin.Context) {
	team := c.Param("name")
	ctx := context.Background()

	cacheKey := services.TeamSummaryCacheKey(team)
	if h.cache != nil {
		var cached services.TeamSummary
		if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
			cached.NetTransfer = services.ParseNetTransfer(c.Query("net_transfer"))
			utils.SendSuccess(c, cached)
			return
		}
	}

	summary := h.teamStats.Summary(team)
	if h.cache != nil {
		h.cache.SetWithRetry(ctx, cacheKey, summary, h.cacheTTL, 3)
	}
	summary.NetTransfer = services.ParseNetTransfer(c.Query("net_transfer"))

	if summary.PlayerCount == 0 {
		utils.SendNotice(c, summary, "no players found for team")
		return
	}
	utils.SendSuccess(c, summary)
}

// GetAnalysis compares the team against the league for one category within a
// position group (DF, MF or FW).
func (h *TeamHandler) GetAnalysis(c *gin.Context) {
	team := c.Param("name")

	category := models.StatCategory(c.Query("category"))
	if !category.Valid() {
		utils.SendValidationError(c, "Invalid category", string(category))
		return
	}

	group := models.RoleBucket(c.DefaultQuery("group", string(models.BucketFW)))
	if _, ok := models.PositionGroups[group]; !ok || group == models.BucketGK {
		utils.SendValidationError(c, "Invalid position group", string(group))
		return
	}

	utils.SendSuccess(c, h.teamStats.Analyze(team, category, group))
}

// GetHeatmap returns the pool ordered by a category value with own-team
// flags for heatmap rendering.
func (h *TeamHandler) GetHeatmap(c *gin.Context) {
	team := c.Param("name")

	category := models.StatCategory(c.Query("category"))
	if !category.Valid() {
		utils.SendValidationError(c, "Invalid category", string(category))
		return
	}

	utils.SendSuccess(c, h.teamStats.Heatmap(team, category))
}

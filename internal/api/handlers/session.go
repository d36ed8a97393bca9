package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/internal/session"
	"github.com/soccerscope/soccerscope/internal/websocket"
	"github.com/soccerscope/soccerscope/pkg/utils"
)

type SessionHandler struct {
	sessions *session.Manager
	hub      *websocket.Hub
}

func NewSessionHandler(sessions *session.Manager, hub *websocket.Hub) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		hub:      hub,
	}
}

// CreateSession starts a dashboard session, optionally seeded with a team.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		Team string `json:"team"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendValidationError(c, "Invalid request body", err.Error())
			return
		}
	}

	s := h.sessions.Create(req.Team)
	utils.SendSuccess(c, s.View())
}

// GetSession returns the current session snapshot.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, s.View())
}

// DeleteSession discards a session.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}
	h.sessions.Delete(c.Param("id"))
	utils.SendSuccess(c, gin.H{"deleted": true})
}

// SetTeam switches the session's team filter and rebuilds the lineup.
func (h *SessionHandler) SetTeam(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Team string `json:"team" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	s.SetTeam(req.Team)
	view := s.View()
	h.hub.BroadcastSession(s.ID(), "lineup", view.Assignment)

	if view.Assignment.OccupiedCount() == 0 {
		utils.SendNotice(c, view, "no players found for team")
		return
	}
	utils.SendSuccess(c, view)
}

// AddPlayer adds a player to the manual selection by display name.
func (h *SessionHandler) AddPlayer(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if _, err := s.AddPlayer(req.Name); err != nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	view := s.View()
	h.hub.BroadcastSession(s.ID(), "selection", view)
	utils.SendSuccess(c, view)
}

// RemovePlayer drops a player from the manual or recommended selection.
func (h *SessionHandler) RemovePlayer(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	playerID, err := strconv.ParseInt(c.Param("playerId"), 10, 64)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	s.RemovePlayer(playerID)
	view := s.View()
	h.hub.BroadcastSession(s.ID(), "selection", view)
	utils.SendSuccess(c, view)
}

// ToggleCategory flips a category in the active set; the sixth selection is
// rejected with a notice and leaves the state unchanged.
func (h *SessionHandler) ToggleCategory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	key := models.StatCategory(c.Param("key"))
	if err := s.ToggleCategory(key); err != nil {
		if errors.Is(err, session.ErrCategoryLimit) {
			utils.SendLimitExceeded(c, "At most 5 categories can be selected")
			return
		}
		utils.SendValidationError(c, "Unknown category", string(key))
		return
	}

	view := s.View()
	h.hub.BroadcastSession(s.ID(), "selection", view)
	utils.SendSuccess(c, view)
}

// ToggleBaseline flips the diverging-chart anchor category.
func (h *SessionHandler) ToggleBaseline(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	key := models.StatCategory(c.Param("key"))
	if err := s.ToggleBaseline(key); err != nil {
		utils.SendValidationError(c, "Unknown category", string(key))
		return
	}
	utils.SendSuccess(c, s.View())
}

// PickUp records the dragged player for the two-phase drag protocol.
func (h *SessionHandler) PickUp(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		PlayerID int64 `json:"player_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	s.PickUp(req.PlayerID)
	utils.SendSuccess(c, gin.H{"dragging": req.PlayerID})
}

// Drop completes the drag gesture. Unresolvable swaps leave the lineup
// unchanged and report no impact.
func (h *SessionHandler) Drop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		TargetID int64 `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	delta, changed := s.Drop(req.TargetID)
	view := s.View()

	if !changed {
		utils.SendNotice(c, view, "swap could not be applied")
		return
	}

	h.hub.BroadcastSession(s.ID(), "lineup", view.Assignment)
	if delta != nil {
		h.hub.BroadcastSession(s.ID(), "impact", delta)
	}

	utils.SendSuccess(c, gin.H{
		"session": view,
		"impact":  delta,
	})
}

// GetChart returns the stacked/diverging chart layout for the session.
func (h *SessionHandler) GetChart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, s.Chart())
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Session not found")
		return nil, false
	}
	return s, true
}

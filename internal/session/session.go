// Package session holds the per-dashboard application state and the
// reducer-style transitions that drive the lineup, recommendation and chart
// engines. Each user-visible gesture maps to exactly one method; every method
// leaves the state fully settled before returning.
package session

import (
	"errors"
	"sync"

	"github.com/soccerscope/soccerscope/internal/chart"
	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/formation"
	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/internal/recommend"
)

var (
	// ErrCategoryLimit signals an attempt to select a sixth category.
	ErrCategoryLimit = errors.New("at most 5 categories can be selected")
	// ErrUnknownCategory signals a category key outside the dataset set.
	ErrUnknownCategory = errors.New("unknown stat category")
	// ErrPlayerNotFound signals a name or id that resolves to no player.
	ErrPlayerNotFound = errors.New("player not found")
)

// Session is one dashboard page session. All state is single-owner: only the
// session mutates it, under its own lock, so reads between events always
// observe a settled value.
type Session struct {
	mu   sync.Mutex
	id   string
	pool *dataset.Pool

	team        string
	assignment  formation.Assignment
	manual      []int64
	recommended []int64
	categories  []models.StatCategory
	baseline    models.StatCategory
	dragID      int64
}

// View is the render-ready snapshot of a session.
type View struct {
	ID          string                `json:"id"`
	Team        string                `json:"team,omitempty"`
	Assignment  formation.Assignment  `json:"assignment"`
	Bench       []models.Player       `json:"bench"`
	Manual      []int64               `json:"manual"`
	Recommended []int64               `json:"recommended"`
	Categories  []models.StatCategory `json:"categories"`
	Baseline    models.StatCategory   `json:"baseline,omitempty"`
}

// New creates an empty session over the loaded pool.
func New(id string, pool *dataset.Pool) *Session {
	return &Session{
		id:         id,
		pool:       pool,
		assignment: formation.NewAssignment(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SetTeam switches the team filter and rebuilds the starting XI. A team with
// no matching players yields an all-empty assignment, which is a normal,
// reportable outcome. The first session with a non-empty roster seeds the
// manual selection with the top roster player, mirroring first page load.
func (s *Session) SetTeam(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.team = name
	roster := s.pool.GetPlayers(name)
	s.assignment = formation.BuildLineup(roster)
	s.dragID = 0

	if len(s.manual) == 0 && len(roster) > 0 {
		s.manual = []int64{roster[0].ID}
	}
	s.recompute()
}

// AddPlayer adds a player to the manual selection by display name. Adding an
// already selected player is a no-op.
func (s *Session) AddPlayer(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.pool.PlayerByName(name)
	if !ok {
		return 0, ErrPlayerNotFound
	}
	for _, id := range s.manual {
		if id == player.ID {
			return player.ID, nil
		}
	}

	s.manual = append(s.manual, player.ID)
	s.recompute()
	return player.ID, nil
}

// RemovePlayer drops a player from the selection. Removing a manual player
// regenerates the recommendations; removing a recommended player only hides
// it until the next recompute, matching the interactive behavior.
func (s *Session) RemovePlayer(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.manual {
		if m == id {
			s.manual = append(s.manual[:i], s.manual[i+1:]...)
			s.recompute()
			return
		}
	}
	for i, r := range s.recommended {
		if r == id {
			s.recommended = append(s.recommended[:i], s.recommended[i+1:]...)
			return
		}
	}
}

// ToggleCategory flips a category in the active set. Selecting beyond the
// cap is rejected with ErrCategoryLimit and leaves the selection unchanged.
// Deselecting a category does not clear a baseline pointing at it; the chart
// simply stops shifting until the category returns.
func (s *Session) ToggleCategory(c models.StatCategory) error {
	if !c.Valid() {
		return ErrUnknownCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, active := range s.categories {
		if active == c {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.recompute()
			return nil
		}
	}
	if len(s.categories) >= models.MaxSelectedCategories {
		return ErrCategoryLimit
	}

	s.categories = append(s.categories, c)
	s.recompute()
	return nil
}

// ToggleBaseline flips the diverging-chart anchor category.
func (s *Session) ToggleBaseline(c models.StatCategory) error {
	if !c.Valid() {
		return ErrUnknownCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.baseline == c {
		s.baseline = ""
	} else {
		s.baseline = c
	}
	return nil
}

// PickUp records the dragged player for the two-phase drag protocol. A new
// pick-up replaces any dangling one.
func (s *Session) PickUp(playerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragID = playerID
}

// Drop completes the drag gesture against the target player and invokes the
// swap engine exactly once. A drop with no preceding pick-up, or a swap whose
// identifiers cannot be resolved, leaves the assignment unchanged.
func (s *Session) Drop(targetID int64) (*formation.ImpactDelta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragID == 0 {
		return nil, false
	}
	delta, changed := formation.Swap(s.assignment, s.pool, s.dragID, targetID)
	s.dragID = 0
	return delta, changed
}

// Chart lays out the combined manual+recommended list for rendering.
func (s *Session) Chart() chart.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]int64, 0, len(s.manual)+len(s.recommended))
	players = append(players, s.manual...)
	players = append(players, s.recommended...)
	return chart.BuildLayout(s.pool, players, len(s.manual), s.categories, s.baseline)
}

// View snapshots the session for rendering.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	fielded := make(map[int64]bool)
	for _, id := range s.assignment.PlayerIDs() {
		fielded[id] = true
	}
	var bench []models.Player
	for _, p := range s.pool.GetPlayers(s.team) {
		if !fielded[p.ID] {
			bench = append(bench, p)
		}
	}

	return View{
		ID:          s.id,
		Team:        s.team,
		Assignment:  s.assignment.Clone(),
		Bench:       bench,
		Manual:      append([]int64(nil), s.manual...),
		Recommended: append([]int64(nil), s.recommended...),
		Categories:  append([]models.StatCategory(nil), s.categories...),
		Baseline:    s.baseline,
	}
}

// recompute regenerates the recommended set wholesale from the manual
// selection and active categories. Callers must hold the lock.
func (s *Session) recompute() {
	groups := recommend.Recommend(s.pool.Players(), s.manual, s.categories)
	s.recommended = append(groups.AboveBaseline, groups.BelowBaseline...)
}

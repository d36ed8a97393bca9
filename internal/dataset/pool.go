package dataset

import (
	"strings"
	"sync"

	"github.com/soccerscope/soccerscope/internal/models"
)

// Pool is the in-memory table of all loaded players. It is read-only between
// loads; a dataset refresh replaces the whole table atomically so readers
// never observe a partially updated pool.
type Pool struct {
	mu      sync.RWMutex
	players []models.Player
	byID    map[int64]int
	byName  map[string]int
}

// NewPool builds a pool over the given players.
func NewPool(players []models.Player) *Pool {
	p := &Pool{}
	p.Replace(players)
	return p
}

// Replace swaps in a freshly loaded player table.
func (p *Pool) Replace(players []models.Player) {
	byID := make(map[int64]int, len(players))
	byName := make(map[string]int, len(players))
	for i, pl := range players {
		byID[pl.ID] = i
		byName[normalizeName(pl.Name)] = i
	}

	p.mu.Lock()
	p.players = players
	p.byID = byID
	p.byName = byName
	p.mu.Unlock()
}

// Players returns a snapshot of the full player table.
func (p *Pool) Players() []models.Player {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.players
}

// Len returns the number of loaded players.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.players)
}

// PlayerByID looks up a player by its stable identifier.
func (p *Pool) PlayerByID(id int64) (models.Player, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i, ok := p.byID[id]; ok {
		return p.players[i], true
	}
	return models.Player{}, false
}

// PlayerByName resolves a player by display name, ignoring case and
// surrounding whitespace.
func (p *Pool) PlayerByName(name string) (models.Player, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i, ok := p.byName[normalizeName(name)]; ok {
		return p.players[i], true
	}
	return models.Player{}, false
}

// GetPlayers returns all players whose squad matches teamName exactly.
func (p *Pool) GetPlayers(teamName string) []models.Player {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var roster []models.Player
	for _, pl := range p.players {
		if pl.Squad == teamName {
			roster = append(roster, pl)
		}
	}
	return roster
}

// Search returns players whose name contains the query, case-insensitively.
func (p *Pool) Search(query string) []models.Player {
	q := normalizeName(query)
	if q == "" {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var matches []models.Player
	for _, pl := range p.players {
		if strings.Contains(normalizeName(pl.Name), q) {
			matches = append(matches, pl)
		}
	}
	return matches
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

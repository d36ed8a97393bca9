// Package recommend ranks comparison candidates around a baseline player.
package recommend

import (
	"sort"

	"github.com/soccerscope/soccerscope/internal/models"
)

// GroupSize is the maximum number of recommendations per value group.
const GroupSize = 4

// Groups holds recommended comparison peers split around the baseline
// player's market value, best rank-sum first.
type Groups struct {
	AboveBaseline []int64 `json:"above_baseline"`
	BelowBaseline []int64 `json:"below_baseline"`
}

// Recommend scores every player outside the manual selection by rank-sum
// over the chosen categories and returns the best candidates valued above
// and below the baseline (the first manual player). Players valued exactly
// at the baseline belong to neither group. Empty manual selection or empty
// categories yield empty groups.
func Recommend(pool []models.Player, manual []int64, categories []models.StatCategory) Groups {
	if len(manual) == 0 || len(categories) == 0 {
		return Groups{}
	}

	baseline, ok := findPlayer(pool, manual[0])
	if !ok {
		return Groups{}
	}
	baseValue := baseline.MarketValue

	selected := make(map[int64]bool, len(manual))
	for _, id := range manual {
		selected[id] = true
	}

	var higher, lower []models.Player
	for _, p := range pool {
		if selected[p.ID] {
			continue
		}
		switch {
		case p.MarketValue > baseValue:
			higher = append(higher, p)
		case p.MarketValue < baseValue:
			lower = append(lower, p)
		}
	}

	return Groups{
		AboveBaseline: topByRankSum(higher, categories),
		BelowBaseline: topByRankSum(lower, categories),
	}
}

// topByRankSum orders candidates ascending by summed percentile rank (lower
// is better; missing ranks already carry a +Inf penalty) and returns the ids
// of the first GroupSize. The sort is stable so ties keep pool order.
func topByRankSum(candidates []models.Player, categories []models.StatCategory) []int64 {
	scored := make([]struct {
		id  int64
		sum float64
	}, len(candidates))
	for i, p := range candidates {
		scored[i].id = p.ID
		scored[i].sum = p.RankSum(categories)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].sum < scored[j].sum
	})

	n := len(scored)
	if n > GroupSize {
		n = GroupSize
	}
	ids := make([]int64, 0, n)
	for _, s := range scored[:n] {
		ids = append(ids, s.id)
	}
	return ids
}

func findPlayer(pool []models.Player, id int64) (models.Player, bool) {
	for _, p := range pool {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

package formation

import (
	"sort"

	"github.com/soccerscope/soccerscope/internal/models"
)

// BuildLineup selects a starting XI from the team roster by position
// priority. Each slot group is filled from its own candidate list sorted by
// total minutes played descending; ties keep roster order. Slots with no
// eligible candidate are left empty rather than filled with a wrong-bucket
// player, so a team filter matching zero players yields an all-empty
// assignment.
func BuildLineup(roster []models.Player) Assignment {
	assignment := NewAssignment()

	assignFirst(assignment, SlotGK, byMinutes(roster, models.SubPositionGoalkeeper))

	centreBacks := byMinutes(roster, models.SubPositionCentreBack)
	for i, slot := range []SlotID{SlotLCB, SlotRCB} {
		if i < len(centreBacks) {
			setOccupant(assignment, slot, centreBacks[i].ID)
		}
	}

	assignFirst(assignment, SlotLB, byMinutes(roster, models.SubPositionLeftBack))
	assignFirst(assignment, SlotRB, byMinutes(roster, models.SubPositionRightBack))

	midfielders := byMinutes(roster, models.PositionGroups[models.BucketMF]...)
	for i, slot := range []SlotID{SlotLM, SlotCM, SlotRM} {
		if i < len(midfielders) {
			setOccupant(assignment, slot, midfielders[i].ID)
		}
	}

	assignForwards(assignment, byMinutes(roster, models.PositionGroups[models.BucketFW]...))

	return assignment
}

// forwardPreferences lists, per forward slot, the sub-positions that count as
// an exact match. The centre slot accepts both centre-forwards and second
// strikers.
var forwardPreferences = []struct {
	slot    SlotID
	matches []string
}{
	{SlotLF, []string{models.SubPositionLeftWinger}},
	{SlotCF, []string{models.SubPositionCentreForward, models.SubPositionSecondStriker}},
	{SlotRF, []string{models.SubPositionRightWinger}},
}

// assignForwards prefers an exact sub-position match per slot and falls back
// to the next-highest-ranked unassigned forward when no exact match exists.
func assignForwards(assignment Assignment, forwards []models.Player) {
	used := make(map[int64]bool, len(forwards))

	unfilled := make([]SlotID, 0, len(forwardPreferences))
	for _, pref := range forwardPreferences {
		matched := false
		for _, fw := range forwards {
			if used[fw.ID] || !matchesAny(fw.SubPosition, pref.matches) {
				continue
			}
			setOccupant(assignment, pref.slot, fw.ID)
			used[fw.ID] = true
			matched = true
			break
		}
		if !matched {
			unfilled = append(unfilled, pref.slot)
		}
	}

	for _, slot := range unfilled {
		for _, fw := range forwards {
			if used[fw.ID] {
				continue
			}
			setOccupant(assignment, slot, fw.ID)
			used[fw.ID] = true
			break
		}
	}
}

func matchesAny(subPosition string, candidates []string) bool {
	for _, c := range candidates {
		if subPosition == c {
			return true
		}
	}
	return false
}

// byMinutes filters the roster to the given sub-positions and sorts the
// result by total minutes descending. The sort is stable so ties keep the
// original pool order.
func byMinutes(roster []models.Player, subPositions ...string) []models.Player {
	var candidates []models.Player
	for _, p := range roster {
		if matchesAny(p.SubPosition, subPositions) {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalMinutes > candidates[j].TotalMinutes
	})
	return candidates
}

func assignFirst(assignment Assignment, slot SlotID, candidates []models.Player) {
	if len(candidates) > 0 {
		setOccupant(assignment, slot, candidates[0].ID)
	}
}

func setOccupant(assignment Assignment, slot SlotID, playerID int64) {
	if i := assignment.indexOfSlot(slot); i >= 0 {
		assignment[i].PlayerID = playerID
	}
}

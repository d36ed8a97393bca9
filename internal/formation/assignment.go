package formation

import "github.com/soccerscope/soccerscope/internal/models"

// Position is one formation slot together with its current occupant.
// PlayerID zero means the slot is empty. Coordinates and bucket belong to the
// slot, so trading occupants means the players trade positional metadata.
type Position struct {
	Slot     SlotID            `json:"slot"`
	Bucket   models.RoleBucket `json:"bucket"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	PlayerID int64             `json:"player_id,omitempty"`
}

// Assignment maps the 11 formation slots to fielded players.
type Assignment []Position

// NewAssignment returns an empty assignment over the 4-3-3 template.
func NewAssignment() Assignment {
	slots := Slots()
	positions := make(Assignment, len(slots))
	for i, s := range slots {
		positions[i] = Position{Slot: s.ID, Bucket: s.Bucket, X: s.X, Y: s.Y}
	}
	return positions
}

// indexOfSlot returns the position index for a slot, or -1.
func (a Assignment) indexOfSlot(id SlotID) int {
	for i := range a {
		if a[i].Slot == id {
			return i
		}
	}
	return -1
}

// indexOfPlayer returns the position index occupied by the player, or -1.
func (a Assignment) indexOfPlayer(playerID int64) int {
	if playerID == 0 {
		return -1
	}
	for i := range a {
		if a[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// HasPlayer reports whether the player currently occupies a field slot.
func (a Assignment) HasPlayer(playerID int64) bool {
	return a.indexOfPlayer(playerID) >= 0
}

// PlayerIDs returns the identifiers of all current occupants.
func (a Assignment) PlayerIDs() []int64 {
	ids := make([]int64, 0, len(a))
	for i := range a {
		if a[i].PlayerID != 0 {
			ids = append(ids, a[i].PlayerID)
		}
	}
	return ids
}

// OccupiedCount returns the number of filled slots.
func (a Assignment) OccupiedCount() int {
	count := 0
	for i := range a {
		if a[i].PlayerID != 0 {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the assignment.
func (a Assignment) Clone() Assignment {
	clone := make(Assignment, len(a))
	copy(clone, a)
	return clone
}

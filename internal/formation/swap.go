package formation

import "github.com/soccerscope/soccerscope/internal/models"

// PlayerSource resolves player identifiers against the loaded pool.
type PlayerSource interface {
	PlayerByID(id int64) (models.Player, bool)
}

// ImpactDelta is the projected effect of fielding the incoming player in
// place of the outgoing one: incoming minus outgoing, over the fixed impact
// stat set plus market value. It is produced only by bench-for-field swaps.
type ImpactDelta struct {
	OutgoingID      int64                           `json:"outgoing_id"`
	IncomingID      int64                           `json:"incoming_id"`
	MarketValueDiff int64                           `json:"market_value_diff"`
	StatDiffs       map[models.StatCategory]float64 `json:"stat_diffs"`
}

// Swap applies a drag-and-drop swap to the assignment in place.
//
// When both identifiers occupy field slots the two players trade places,
// positional metadata included; no delta is produced and role fit is
// deliberately not re-validated. When the dragged player is benched and the
// target is fielded, the dragged player takes over the target's slot,
// inheriting the slot's coordinates and bucket, and an ImpactDelta is
// returned. Any identifier that cannot be resolved makes the whole operation
// a no-op: the second return value reports whether the assignment changed.
func Swap(a Assignment, source PlayerSource, draggedID, targetID int64) (*ImpactDelta, bool) {
	ti := a.indexOfPlayer(targetID)
	if ti < 0 {
		return nil, false
	}

	if di := a.indexOfPlayer(draggedID); di >= 0 {
		a[di].PlayerID, a[ti].PlayerID = a[ti].PlayerID, a[di].PlayerID
		return nil, true
	}

	incoming, ok := source.PlayerByID(draggedID)
	if !ok {
		return nil, false
	}
	// A stale occupant id degrades to zero stats rather than failing.
	outgoing, _ := source.PlayerByID(a[ti].PlayerID)
	outgoing.ID = a[ti].PlayerID

	a[ti].PlayerID = draggedID

	return computeImpact(outgoing, incoming), true
}

func computeImpact(outgoing, incoming models.Player) *ImpactDelta {
	diffs := make(map[models.StatCategory]float64, len(models.ImpactCategories))
	for _, c := range models.ImpactCategories {
		diffs[c] = incoming.Stat(c) - outgoing.Stat(c)
	}
	return &ImpactDelta{
		OutgoingID:      outgoing.ID,
		IncomingID:      incoming.ID,
		MarketValueDiff: incoming.MarketValue - outgoing.MarketValue,
		StatDiffs:       diffs,
	}
}

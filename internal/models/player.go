package models

import "math"

// RoleBucket is the coarse positional group a player belongs to.
type RoleBucket string

const (
	BucketGK RoleBucket = "GK"
	BucketDF RoleBucket = "DF"
	BucketMF RoleBucket = "MF"
	BucketFW RoleBucket = "FW"
)

const (
	SubPositionGoalkeeper    = "Goalkeeper"
	SubPositionCentreBack    = "Centre-Back"
	SubPositionLeftBack      = "Left-Back"
	SubPositionRightBack     = "Right-Back"
	SubPositionDefensiveMid  = "Defensive Midfield"
	SubPositionCentralMid    = "Central Midfield"
	SubPositionAttackingMid  = "Attacking Midfield"
	SubPositionLeftMid       = "Left Midfield"
	SubPositionRightMid      = "Right Midfield"
	SubPositionLeftWinger    = "Left Winger"
	SubPositionRightWinger   = "Right Winger"
	SubPositionCentreForward = "Centre-Forward"
	SubPositionSecondStriker = "Second Striker"
)

// PositionGroups maps each role bucket to its fine-grained sub-positions.
var PositionGroups = map[RoleBucket][]string{
	BucketGK: {SubPositionGoalkeeper},
	BucketDF: {SubPositionLeftBack, SubPositionRightBack, SubPositionCentreBack},
	BucketMF: {SubPositionDefensiveMid, SubPositionCentralMid, SubPositionAttackingMid, SubPositionLeftMid, SubPositionRightMid},
	BucketFW: {SubPositionLeftWinger, SubPositionRightWinger, SubPositionCentreForward, SubPositionSecondStriker},
}

var bucketBySubPosition = func() map[string]RoleBucket {
	m := make(map[string]RoleBucket)
	for bucket, positions := range PositionGroups {
		for _, pos := range positions {
			m[pos] = bucket
		}
	}
	return m
}()

// BucketForSubPosition derives the coarse role bucket from a fine-grained
// sub-position. Unknown sub-positions return an empty bucket.
func BucketForSubPosition(subPosition string) RoleBucket {
	return bucketBySubPosition[subPosition]
}

// Player is one athlete row from the season dataset. Numeric fields are
// coerced at load time: raw stats default to zero on parse failure so
// downstream arithmetic stays total, while missing percentile ranks are
// stored as +Inf so they sort last.
type Player struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Squad        string     `json:"squad"`
	SubPosition  string     `json:"sub_position"`
	Bucket       RoleBucket `json:"bucket"`
	Nation       string     `json:"nation,omitempty"`
	Age          int        `json:"age,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	MarketValue  int64      `json:"market_value"`
	TotalMinutes float64    `json:"total_minutes"`

	Stats map[StatCategory]float64 `json:"stats"`
	Ranks map[StatCategory]float64 `json:"-"`
	Norms map[StatCategory]float64 `json:"norms"`
}

// Stat returns the raw value for the category, zero when absent.
func (p *Player) Stat(c StatCategory) float64 {
	return p.Stats[c]
}

// Rank returns the percentile rank for the category (lower is better).
// Absent or invalid ranks are the worst possible rank.
func (p *Player) Rank(c StatCategory) float64 {
	if v, ok := p.Ranks[c]; ok {
		return v
	}
	return math.Inf(1)
}

// Norm returns the normalized [0,1] value for the category, zero when absent.
func (p *Player) Norm(c StatCategory) float64 {
	return p.Norms[c]
}

// RankSum sums the percentile ranks over the given categories. A single
// missing rank pushes the total to +Inf, which sorts the player last.
func (p *Player) RankSum(categories []StatCategory) float64 {
	sum := 0.0
	for _, c := range categories {
		sum += p.Rank(c)
	}
	return sum
}

// Package chart turns per-player normalized category values into a stacked,
// optionally diverging, bar layout for the comparison view.
package chart

import (
	"math"
	"sort"

	"github.com/soccerscope/soccerscope/internal/models"
)

// PlayerSource resolves player identifiers against the loaded pool.
type PlayerSource interface {
	PlayerByID(id int64) (models.Player, bool)
}

// Segment is one stacked category slice of a player's bar. Bounds are in
// normalized stack units, after any baseline shift.
type Segment struct {
	Category models.StatCategory `json:"category"`
	Y0       float64             `json:"y0"`
	Y1       float64             `json:"y1"`
	Raw      float64             `json:"raw"`
}

// Bar is one player's column in display order.
type Bar struct {
	PlayerID   int64     `json:"player_id"`
	ValueDelta int64     `json:"value_delta"`
	Segments   []Segment `json:"segments"`
}

// Layout is the full chart-ready transform: final display order, per-player
// stacked segment bounds, market-value deltas against the baseline player,
// group dividers and the vertical scale domain.
type Layout struct {
	Order     []int64 `json:"order"`
	Bars      []Bar   `json:"bars"`
	Dividers  []int   `json:"dividers"`
	DomainMin float64 `json:"domain_min"`
	DomainMax float64 `json:"domain_max"`
	Diverging bool    `json:"diverging"`
}

const domainPadding = 1.1

// BuildLayout lays out the combined player list (manual prefix, recommended
// suffix) over the chosen categories. The manual prefix keeps its order; the
// recommended suffix is re-sorted by descending market-value delta from the
// baseline player. Setting a baseline category shifts every player's stack so
// that category's lower bound sits at zero, producing a diverging layout with
// a symmetric domain.
func BuildLayout(source PlayerSource, players []int64, manualCount int, categories []models.StatCategory, baseline models.StatCategory) Layout {
	if len(players) == 0 || len(categories) == 0 {
		return Layout{}
	}
	if manualCount < 0 {
		manualCount = 0
	}
	if manualCount > len(players) {
		manualCount = len(players)
	}

	baseValue := int64(0)
	if base, ok := source.PlayerByID(players[0]); ok {
		baseValue = base.MarketValue
	}

	deltas := make(map[int64]int64, len(players))
	for _, id := range players {
		if p, ok := source.PlayerByID(id); ok {
			deltas[id] = p.MarketValue - baseValue
		} else {
			deltas[id] = 0
		}
	}

	// The above/below divider counts positive-delta recommendations; the
	// count is independent of the sort below.
	aboveCount := 0
	for _, id := range players[manualCount:] {
		if deltas[id] > 0 {
			aboveCount++
		}
	}

	order := make([]int64, len(players))
	copy(order, players)
	suffix := order[manualCount:]
	sort.SliceStable(suffix, func(i, j int) bool {
		return deltas[suffix[i]] > deltas[suffix[j]]
	})

	bars := stackBars(source, order, deltas, categories)

	diverging := baseline != "" && containsCategory(categories, baseline)
	if diverging {
		shiftToBaseline(bars, baseline)
	}

	domainMin, domainMax := domain(bars, diverging)

	var dividers []int
	for _, idx := range []int{manualCount, manualCount + aboveCount} {
		if idx > 0 && idx < len(order) {
			dividers = append(dividers, idx)
		}
	}

	return Layout{
		Order:     order,
		Bars:      bars,
		Dividers:  dividers,
		DomainMin: domainMin,
		DomainMax: domainMax,
		Diverging: diverging,
	}
}

// stackBars cumulatively stacks normalized values in category order. Players
// missing from the pool contribute all-zero segments.
func stackBars(source PlayerSource, order []int64, deltas map[int64]int64, categories []models.StatCategory) []Bar {
	bars := make([]Bar, len(order))
	for i, id := range order {
		player, found := source.PlayerByID(id)

		segments := make([]Segment, len(categories))
		cum := 0.0
		for j, c := range categories {
			v := 0.0
			raw := 0.0
			if found {
				v = player.Norm(c)
				raw = player.Stat(c)
			}
			segments[j] = Segment{Category: c, Y0: cum, Y1: cum + v, Raw: raw}
			cum += v
		}

		bars[i] = Bar{PlayerID: id, ValueDelta: deltas[id], Segments: segments}
	}
	return bars
}

// shiftToBaseline moves each player's stack so the baseline category's lower
// bound becomes zero, anchoring the diverging comparison on that category.
func shiftToBaseline(bars []Bar, baseline models.StatCategory) {
	for i := range bars {
		shift := 0.0
		for _, s := range bars[i].Segments {
			if s.Category == baseline {
				shift = s.Y0
				break
			}
		}
		for j := range bars[i].Segments {
			bars[i].Segments[j].Y0 -= shift
			bars[i].Segments[j].Y1 -= shift
		}
	}
}

// domain sizes the vertical scale with 10% padding: symmetric around zero to
// the largest absolute excursion when diverging, [0, max stack total]
// otherwise.
func domain(bars []Bar, diverging bool) (float64, float64) {
	minY0 := math.Inf(1)
	maxY1 := math.Inf(-1)
	for _, b := range bars {
		for _, s := range b.Segments {
			minY0 = math.Min(minY0, s.Y0)
			maxY1 = math.Max(maxY1, s.Y1)
		}
	}
	if math.IsInf(minY0, 1) {
		return 0, 0
	}

	if diverging {
		rawMax := math.Max(math.Abs(minY0), math.Abs(maxY1))
		padded := rawMax * domainPadding
		return -padded, padded
	}
	return 0, maxY1 * domainPadding
}

func containsCategory(categories []models.StatCategory, c models.StatCategory) bool {
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}

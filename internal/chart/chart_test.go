package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerscope/soccerscope/internal/models"
)

type stubSource map[int64]models.Player

func (s stubSource) PlayerByID(id int64) (models.Player, bool) {
	p, ok := s[id]
	return p, ok
}

func chartPlayer(id int64, marketValue int64, norms map[models.StatCategory]float64) models.Player {
	stats := make(map[models.StatCategory]float64, len(norms))
	for c, v := range norms {
		stats[c] = v * 100
	}
	return models.Player{ID: id, MarketValue: marketValue, Norms: norms, Stats: stats}
}

func chartFixture() stubSource {
	return stubSource{
		1: chartPlayer(1, 100, map[models.StatCategory]float64{models.CategoryGls: 0.5, models.CategorySoT: 0.3}),
		2: chartPlayer(2, 90, map[models.StatCategory]float64{models.CategoryGls: 0.2, models.CategorySoT: 0.6}),
		3: chartPlayer(3, 150, map[models.StatCategory]float64{models.CategoryGls: 0.8, models.CategorySoT: 0.1}),
		4: chartPlayer(4, 80, map[models.StatCategory]float64{models.CategoryGls: 0.4, models.CategorySoT: 0.4}),
		5: chartPlayer(5, 120, map[models.StatCategory]float64{models.CategoryGls: 0.6, models.CategorySoT: 0.2}),
	}
}

var twoCategories = []models.StatCategory{models.CategoryGls, models.CategorySoT}

func TestBuildLayout_ManualPrefixKeepsOrderSuffixSortsByDelta(t *testing.T) {
	source := chartFixture()

	// Manual: 1 (baseline, value 100) then 2. Recommended: 3 (+50), 4 (-20),
	// 5 (+20) in recommendation order.
	layout := BuildLayout(source, []int64{1, 2, 3, 4, 5}, 2, twoCategories, "")

	assert.Equal(t, []int64{1, 2, 3, 5, 4}, layout.Order,
		"manual order preserved, suffix sorted by descending value delta")
}

func TestBuildLayout_ValueDeltasAgainstFirstManualPlayer(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1, 3, 4}, 1, twoCategories, "")

	deltas := make(map[int64]int64, len(layout.Bars))
	for _, b := range layout.Bars {
		deltas[b.PlayerID] = b.ValueDelta
	}
	assert.Equal(t, int64(0), deltas[1])
	assert.Equal(t, int64(50), deltas[3])
	assert.Equal(t, int64(-20), deltas[4])
}

func TestBuildLayout_SegmentsStackCumulatively(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1}, 1, twoCategories, "")

	require.Len(t, layout.Bars, 1)
	segments := layout.Bars[0].Segments
	require.Len(t, segments, 2)

	assert.Equal(t, models.CategoryGls, segments[0].Category)
	assert.InDelta(t, 0.0, segments[0].Y0, 1e-9)
	assert.InDelta(t, 0.5, segments[0].Y1, 1e-9)
	assert.InDelta(t, 0.5, segments[1].Y0, 1e-9)
	assert.InDelta(t, 0.8, segments[1].Y1, 1e-9)
	assert.InDelta(t, 50.0, segments[0].Raw, 1e-9)
}

func TestBuildLayout_SimpleDomainIsPaddedMaxTotal(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1, 3}, 1, twoCategories, "")

	assert.False(t, layout.Diverging)
	assert.Equal(t, 0.0, layout.DomainMin)
	// Player 3 has the tallest stack: 0.8 + 0.1 = 0.9.
	assert.InDelta(t, 0.9*1.1, layout.DomainMax, 1e-9)
}

func TestBuildLayout_BaselineShiftsStacksToZero(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1, 2}, 2, twoCategories, models.CategorySoT)

	require.True(t, layout.Diverging)
	for _, bar := range layout.Bars {
		for _, s := range bar.Segments {
			if s.Category == models.CategorySoT {
				assert.InDelta(t, 0.0, s.Y0, 1e-9,
					"baseline category lower bound sits at zero for player %d", bar.PlayerID)
			}
		}
	}

	// Player 1's Gls segment sits below the axis after the shift.
	segments := layout.Bars[0].Segments
	assert.InDelta(t, -0.5, segments[0].Y0, 1e-9)
	assert.InDelta(t, 0.0, segments[0].Y1, 1e-9)
}

func TestBuildLayout_DivergingDomainIsSymmetric(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1, 2}, 2, twoCategories, models.CategorySoT)

	require.True(t, layout.Diverging)
	assert.InDelta(t, -layout.DomainMax, layout.DomainMin, 1e-9)
	// Largest excursion is player 2's shifted upper bound, 0.6, beating
	// player 1's lower bound of -0.5.
	assert.InDelta(t, 0.6*1.1, layout.DomainMax, 1e-9)
}

func TestBuildLayout_BaselineOutsideActiveCategoriesDoesNotDiverge(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1, 2}, 2, []models.StatCategory{models.CategoryGls}, models.CategorySoT)

	assert.False(t, layout.Diverging)
	assert.Equal(t, 0.0, layout.DomainMin)
}

func TestBuildLayout_DividersSeparateGroups(t *testing.T) {
	source := chartFixture()

	// Manual [1, 2]; recommended 3 and 5 are above the baseline value, 4 below.
	layout := BuildLayout(source, []int64{1, 2, 3, 4, 5}, 2, twoCategories, "")

	assert.Equal(t, []int{2, 4}, layout.Dividers)
}

func TestBuildLayout_DividersDroppedAtListEdges(t *testing.T) {
	source := chartFixture()

	// All recommendations above the baseline: the second divider would land on
	// the list end and is dropped.
	layout := BuildLayout(source, []int64{1, 3, 5}, 1, twoCategories, "")
	assert.Equal(t, []int{1}, layout.Dividers)

	// Manual only: no dividers at all.
	layout = BuildLayout(source, []int64{1, 2}, 2, twoCategories, "")
	assert.Empty(t, layout.Dividers)
}

func TestBuildLayout_EmptyInputsYieldEmptyLayout(t *testing.T) {
	source := chartFixture()

	assert.Equal(t, Layout{}, BuildLayout(source, nil, 0, twoCategories, ""))
	assert.Equal(t, Layout{}, BuildLayout(source, []int64{1}, 1, nil, ""))
}

func TestBuildLayout_UnknownPlayerContributesZeroSegments(t *testing.T) {
	source := chartFixture()

	layout := BuildLayout(source, []int64{1, 99}, 2, twoCategories, "")

	require.Len(t, layout.Bars, 2)
	missing := layout.Bars[1]
	assert.Equal(t, int64(99), missing.PlayerID)
	for _, s := range missing.Segments {
		assert.Zero(t, s.Y0)
		assert.Zero(t, s.Y1)
		assert.Zero(t, s.Raw)
	}
}

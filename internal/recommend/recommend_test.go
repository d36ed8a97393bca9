package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soccerscope/soccerscope/internal/models"
)

func rankedPlayer(id int64, name string, marketValue int64, glsRank float64) models.Player {
	return models.Player{
		ID:          id,
		Name:        name,
		MarketValue: marketValue,
		Ranks:       map[models.StatCategory]float64{models.CategoryGls: glsRank},
	}
}

func TestRecommend_SplitsAroundBaselineValue(t *testing.T) {
	pool := []models.Player{
		rankedPlayer(1, "A", 100, 3),
		rankedPlayer(2, "B", 150, 1),
		rankedPlayer(3, "C", 80, 4),
		rankedPlayer(4, "D", 120, 2),
	}

	groups := Recommend(pool, []int64{1}, []models.StatCategory{models.CategoryGls})

	assert.Equal(t, []int64{2, 4}, groups.AboveBaseline, "ordered best rank-sum first")
	assert.Equal(t, []int64{3}, groups.BelowBaseline)
}

func TestRecommend_EmptyInputsYieldEmptyGroups(t *testing.T) {
	pool := []models.Player{rankedPlayer(1, "A", 100, 1)}

	assert.Equal(t, Groups{}, Recommend(pool, nil, []models.StatCategory{models.CategoryGls}))
	assert.Equal(t, Groups{}, Recommend(pool, []int64{1}, nil))
	assert.Equal(t, Groups{}, Recommend(pool, []int64{99}, []models.StatCategory{models.CategoryGls}),
		"baseline missing from pool")
}

func TestRecommend_ExcludesManualSelection(t *testing.T) {
	pool := []models.Player{
		rankedPlayer(1, "A", 100, 3),
		rankedPlayer(2, "B", 150, 1),
		rankedPlayer(3, "C", 200, 2),
	}

	groups := Recommend(pool, []int64{1, 2}, []models.StatCategory{models.CategoryGls})

	assert.Equal(t, []int64{3}, groups.AboveBaseline)
	assert.NotContains(t, groups.AboveBaseline, int64(2), "manually selected players are never recommended")
}

func TestRecommend_EqualValueBelongsToNeitherGroup(t *testing.T) {
	pool := []models.Player{
		rankedPlayer(1, "A", 100, 3),
		rankedPlayer(2, "B", 100, 1),
	}

	groups := Recommend(pool, []int64{1}, []models.StatCategory{models.CategoryGls})

	assert.Empty(t, groups.AboveBaseline)
	assert.Empty(t, groups.BelowBaseline)
}

func TestRecommend_CapsEachGroupAtFour(t *testing.T) {
	pool := []models.Player{rankedPlayer(1, "Base", 100, 0)}
	for i := int64(2); i <= 8; i++ {
		pool = append(pool, rankedPlayer(i, "P", 100+i, float64(i)))
	}

	groups := Recommend(pool, []int64{1}, []models.StatCategory{models.CategoryGls})

	assert.Len(t, groups.AboveBaseline, GroupSize)
	assert.Equal(t, []int64{2, 3, 4, 5}, groups.AboveBaseline)
}

func TestRecommend_MissingRankSortsLast(t *testing.T) {
	noRank := models.Player{ID: 2, Name: "B", MarketValue: 150,
		Ranks: map[models.StatCategory]float64{}}
	pool := []models.Player{
		rankedPlayer(1, "A", 100, 1),
		noRank,
		rankedPlayer(3, "C", 180, 50),
		rankedPlayer(4, "D", 160, 2),
	}

	groups := Recommend(pool, []int64{1}, []models.StatCategory{models.CategoryGls})

	assert.Equal(t, []int64{4, 3, 2}, groups.AboveBaseline,
		"a missing rank carries an infinite penalty")
}

func TestRecommend_MultiCategoryRankSum(t *testing.T) {
	mk := func(id int64, mv int64, gls, sot float64) models.Player {
		return models.Player{ID: id, MarketValue: mv, Ranks: map[models.StatCategory]float64{
			models.CategoryGls: gls,
			models.CategorySoT: sot,
		}}
	}
	pool := []models.Player{
		mk(1, 100, 1, 1),
		mk(2, 150, 1, 10), // sum 11
		mk(3, 160, 5, 2),  // sum 7
	}

	groups := Recommend(pool, []int64{1}, []models.StatCategory{models.CategoryGls, models.CategorySoT})

	assert.Equal(t, []int64{3, 2}, groups.AboveBaseline)
}

func TestRecommend_StableTiesKeepPoolOrder(t *testing.T) {
	pool := []models.Player{
		rankedPlayer(1, "Base", 100, 0),
		rankedPlayer(2, "B", 150, 5),
		rankedPlayer(3, "C", 160, 5),
	}

	groups := Recommend(pool, []int64{1}, []models.StatCategory{models.CategoryGls})

	assert.Equal(t, []int64{2, 3}, groups.AboveBaseline)
}

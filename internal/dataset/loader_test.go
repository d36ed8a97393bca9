package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerscope/soccerscope/internal/models"
)

const datasetHeader = "Player_Id,Player,Squad,sub_position,Nation,Age,image_url,market_value,total_minutes," +
	"Gls,Gls_rank,Gls_norm,SoT,SoT_rank,SoT_norm"

func parseRows(t *testing.T, rows ...string) []models.Player {
	t.Helper()
	csv := strings.Join(append([]string{datasetHeader}, rows...), "\n")
	players, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return players
}

func TestParseCSV_ReadsWellFormedRow(t *testing.T) {
	players := parseRows(t,
		"10,Test Player,Test FC,Centre-Forward,BRA,27,http://img,55000000,2340,18,2,0.9,40,3,0.85")

	require.Len(t, players, 1)
	p := players[0]
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, "Test Player", p.Name)
	assert.Equal(t, "Test FC", p.Squad)
	assert.Equal(t, models.BucketFW, p.Bucket)
	assert.Equal(t, "BRA", p.Nation)
	assert.Equal(t, 27, p.Age)
	assert.Equal(t, int64(55000000), p.MarketValue)
	assert.Equal(t, 2340.0, p.TotalMinutes)
	assert.Equal(t, 18.0, p.Stat(models.CategoryGls))
	assert.Equal(t, 2.0, p.Rank(models.CategoryGls))
	assert.Equal(t, 0.9, p.Norm(models.CategoryGls))
}

func TestParseCSV_RawStatParseFailureDefaultsToZero(t *testing.T) {
	players := parseRows(t,
		"10,Test Player,Test FC,Centre-Forward,,,,,,-,1,0.5,n/a,2,0.4")

	p := players[0]
	assert.Zero(t, p.Stat(models.CategoryGls))
	assert.Zero(t, p.Stat(models.CategorySoT))
	assert.Equal(t, 1.0, p.Rank(models.CategoryGls), "valid rank survives a bad raw value")
}

func TestParseCSV_MissingRankBecomesWorstPossible(t *testing.T) {
	players := parseRows(t,
		"10,Test Player,Test FC,Centre-Forward,,,,,,5,,0.5,2,bogus,0.4")

	p := players[0]
	assert.True(t, math.IsInf(p.Rank(models.CategoryGls), 1))
	assert.True(t, math.IsInf(p.Rank(models.CategorySoT), 1))
}

func TestParseCSV_NegativeMoneyAndMinutesClampToZero(t *testing.T) {
	players := parseRows(t,
		"10,Test Player,Test FC,Centre-Forward,,,,-500,-30,1,1,0.1,1,1,0.1")

	p := players[0]
	assert.Zero(t, p.MarketValue)
	assert.Zero(t, p.TotalMinutes)
}

func TestParseCSV_IntegerFieldsWithDecimalPoint(t *testing.T) {
	players := parseRows(t,
		"10.0,Test Player,Test FC,Goalkeeper,,26.0,,1500000.0,900,0,1,0,0,1,0")

	p := players[0]
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, 26, p.Age)
	assert.Equal(t, int64(1500000), p.MarketValue)
}

func TestParseCSV_ShortRowsTolerated(t *testing.T) {
	players := parseRows(t, "10,Short Row,Test FC")

	require.Len(t, players, 1)
	p := players[0]
	assert.Equal(t, "Short Row", p.Name)
	assert.Zero(t, p.Stat(models.CategoryGls))
	assert.True(t, math.IsInf(p.Rank(models.CategoryGls), 1))
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Player,Squad\nA,B"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Player_Id")
}

func TestParseCSV_UnknownSubPositionHasEmptyBucket(t *testing.T) {
	players := parseRows(t,
		"10,Test Player,Test FC,Libero,,,,,,1,1,0.1,1,1,0.1")

	assert.Empty(t, players[0].Bucket)
}

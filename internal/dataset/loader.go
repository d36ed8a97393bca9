package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soccerscope/soccerscope/internal/models"
)

// Column names shared by every dataset source.
const (
	columnPlayerID     = "Player_Id"
	columnPlayer       = "Player"
	columnSquad        = "Squad"
	columnSubPosition  = "sub_position"
	columnNation       = "Nation"
	columnAge          = "Age"
	columnImageURL     = "image_url"
	columnMarketValue  = "market_value"
	columnTotalMinutes = "total_minutes"
)

// ParseCSV reads the tabular season dataset and coerces every numeric field.
// Raw stat parse failures default to zero; missing percentile ranks become
// +Inf so affected players sort last instead of erroring.
func ParseCSV(r io.Reader) ([]models.Player, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnPlayerID, columnPlayer, columnSquad} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var players []models.Player
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		subPosition := field(record, columnSubPosition)
		player := models.Player{
			ID:           coerceInt64(field(record, columnPlayerID)),
			Name:         field(record, columnPlayer),
			Squad:        field(record, columnSquad),
			SubPosition:  subPosition,
			Bucket:       models.BucketForSubPosition(subPosition),
			Nation:       field(record, columnNation),
			Age:          int(coerceInt64(field(record, columnAge))),
			ImageURL:     field(record, columnImageURL),
			MarketValue:  coerceInt64(field(record, columnMarketValue)),
			TotalMinutes: coerceFloat(field(record, columnTotalMinutes)),
			Stats:        make(map[models.StatCategory]float64, len(models.AllCategories)),
			Ranks:        make(map[models.StatCategory]float64, len(models.AllCategories)),
			Norms:        make(map[models.StatCategory]float64, len(models.AllCategories)),
		}
		if player.MarketValue < 0 {
			player.MarketValue = 0
		}
		if player.TotalMinutes < 0 {
			player.TotalMinutes = 0
		}

		for _, c := range models.AllCategories {
			player.Stats[c] = coerceFloat(field(record, string(c)))
			player.Ranks[c] = coerceRank(field(record, c.RankColumn()))
			player.Norms[c] = coerceFloat(field(record, c.NormColumn()))
		}

		players = append(players, player)
	}

	return players, nil
}

// LoadFile parses a dataset CSV from disk.
func LoadFile(path string) ([]models.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func coerceInt64(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	// Some exports carry integer fields with a decimal point.
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return int64(v)
	}
	return 0
}

func coerceRank(s string) float64 {
	if s == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// Package store loads the season dataset from Postgres as an alternative to
// the CSV sources. It is read-only: nothing is written back.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soccerscope/soccerscope/internal/models"
)

// PlayerRow is one row of the players table. Per-category stats, ranks and
// normalized values are stored as JSON objects keyed by category.
type PlayerRow struct {
	ID           int64   `gorm:"primaryKey;column:player_id"`
	Name         string  `gorm:"column:name"`
	Squad        string  `gorm:"column:squad"`
	SubPosition  string  `gorm:"column:sub_position"`
	Nation       string  `gorm:"column:nation"`
	Age          int     `gorm:"column:age"`
	ImageURL     string  `gorm:"column:image_url"`
	MarketValue  int64   `gorm:"column:market_value"`
	TotalMinutes float64 `gorm:"column:total_minutes"`
	Stats        []byte  `gorm:"column:stats;type:jsonb"`
	Ranks        []byte  `gorm:"column:ranks;type:jsonb"`
	Norms        []byte  `gorm:"column:norms;type:jsonb"`
}

func (PlayerRow) TableName() string {
	return "players"
}

// PlayerStore reads the player table from Postgres.
type PlayerStore struct {
	db *gorm.DB
}

// NewConnection opens the database with pooled connections.
func NewConnection(databaseURL string, isDevelopment bool) (*PlayerStore, error) {
	logLevel := logger.Error
	if isDevelopment {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")

	return &PlayerStore{db}, nil
}

// LoadPlayers reads the full player table and coerces it into pool players.
// Malformed per-category JSON degrades to empty maps; the Rank accessor
// treats missing entries as worst-possible.
func (s *PlayerStore) LoadPlayers() ([]models.Player, error) {
	var rows []PlayerRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	players := make([]models.Player, 0, len(rows))
	for _, row := range rows {
		player := models.Player{
			ID:           row.ID,
			Name:         row.Name,
			Squad:        row.Squad,
			SubPosition:  row.SubPosition,
			Bucket:       models.BucketForSubPosition(row.SubPosition),
			Nation:       row.Nation,
			Age:          row.Age,
			ImageURL:     row.ImageURL,
			MarketValue:  row.MarketValue,
			TotalMinutes: row.TotalMinutes,
			Stats:        decodeCategoryMap(row.Stats),
			Ranks:        decodeCategoryMap(row.Ranks),
			Norms:        decodeCategoryMap(row.Norms),
		}
		if player.MarketValue < 0 {
			player.MarketValue = 0
		}
		players = append(players, player)
	}
	return players, nil
}

// Close releases the underlying connection pool.
func (s *PlayerStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func decodeCategoryMap(data []byte) map[models.StatCategory]float64 {
	m := make(map[models.StatCategory]float64)
	if len(data) == 0 {
		return m
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return make(map[models.StatCategory]float64)
	}
	return m
}

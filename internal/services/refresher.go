package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/models"
)

// LoadFunc produces a freshly parsed player table from the configured
// dataset source.
type LoadFunc func() ([]models.Player, error)

// RefresherService reloads the dataset on a schedule. A successful load
// replaces the pool atomically and flushes derived caches; a failed load
// leaves the previous pool untouched.
type RefresherService struct {
	pool      *dataset.Pool
	cache     *CacheService
	load      LoadFunc
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
	interval  time.Duration
}

// NewRefresherService creates a dataset refresher. cache may be nil when
// caching is disabled.
func NewRefresherService(pool *dataset.Pool, cache *CacheService, load LoadFunc, logger *logrus.Logger, interval time.Duration) *RefresherService {
	return &RefresherService{
		pool:     pool,
		cache:    cache,
		load:     load,
		logger:   logger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start begins the scheduled refresh and kicks off an initial load.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("dataset refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	if _, err := s.cron.AddFunc(schedule, s.refresh); err != nil {
		return fmt.Errorf("failed to schedule dataset refresh: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.refresh()

	s.logger.Info("Dataset refresher started")
	return nil
}

// Stop halts the refresh schedule.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Stop()
	s.isRunning = false
	s.logger.Info("Dataset refresher stopped")
}

func (s *RefresherService) refresh() {
	players, err := s.load()
	if err != nil {
		s.logger.WithError(err).Warn("Dataset refresh failed, keeping previous pool")
		return
	}

	s.pool.Replace(players)
	if s.cache != nil {
		if err := s.cache.Flush(); err != nil {
			s.logger.WithError(err).Warn("Failed to flush cache after dataset refresh")
		}
	}

	s.logger.WithField("players", len(players)).Info("Dataset refreshed")
}

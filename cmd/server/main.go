package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/soccerscope/soccerscope/internal/api"
	"github.com/soccerscope/soccerscope/internal/api/middleware"
	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/internal/services"
	"github.com/soccerscope/soccerscope/internal/session"
	"github.com/soccerscope/soccerscope/internal/store"
	"github.com/soccerscope/soccerscope/internal/websocket"
	"github.com/soccerscope/soccerscope/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger := logrus.StandardLogger()
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the dataset loader for the configured source
	load, cleanup, err := buildLoader(cfg, logger)
	if err != nil {
		logrus.Fatalf("Failed to configure dataset source: %v", err)
	}
	defer cleanup()

	players, err := load()
	if err != nil {
		logrus.Fatalf("Failed to load dataset: %v", err)
	}
	pool := dataset.NewPool(players)
	logrus.Infof("Loaded %d players from %s source", pool.Len(), cfg.DatasetSource)

	// Connect to Redis when caching is enabled
	var cacheService *services.CacheService
	if cfg.CacheEnabled {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cacheService = services.NewCacheService(redisClient)
	}

	// Initialize services
	hub := websocket.NewHub(logger)
	go hub.Run()

	sessions := session.NewManager(pool, logger)

	// Background dataset refresh
	if cfg.EnableBackgroundRefresh {
		interval, err := time.ParseDuration(cfg.DatasetRefreshInterval)
		if err != nil {
			logrus.Warnf("Invalid refresh interval, using default 6h: %v", err)
			interval = 6 * time.Hour
		}
		refresher := services.NewRefresherService(pool, cacheService, load, logger, interval)
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start dataset refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"players": pool.Len(),
			"time":    time.Now().UTC(),
		})
	})

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, pool, cacheService, sessions, hub, cfg, logger)

	// WebSocket endpoint at root level (not under /api/v1)
	router.GET("/ws", hub.HandleWebSocket)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// buildLoader returns the load function for the configured dataset source and
// a cleanup function releasing any held connections.
func buildLoader(cfg *config.Config, logger *logrus.Logger) (services.LoadFunc, func(), error) {
	noop := func() {}

	switch cfg.DatasetSource {
	case "file":
		path := cfg.DatasetPath
		return func() ([]models.Player, error) {
			return dataset.LoadFile(path)
		}, noop, nil

	case "url":
		if cfg.DatasetURL == "" {
			return nil, noop, fmt.Errorf("DATASET_URL is required for url source")
		}
		fetcher := dataset.NewFetcher(cfg.DatasetURL, cfg.ExternalAPITimeout, cfg.CircuitBreakerThreshold, logger)
		return func() ([]models.Player, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.ExternalAPITimeout)
			defer cancel()
			return fetcher.Fetch(ctx)
		}, noop, nil

	case "postgres":
		playerStore, err := store.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return nil, noop, err
		}
		return playerStore.LoadPlayers, func() {
			if err := playerStore.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close database connection")
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown dataset source %q", cfg.DatasetSource)
	}
}

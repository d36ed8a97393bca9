package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/soccerscope/soccerscope/internal/models"
)

// Fetcher downloads the season dataset from a remote URL. The download is a
// one-shot fetch per load; the circuit breaker keeps a flapping upstream from
// being hammered by scheduled refreshes.
type Fetcher struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewFetcher creates a dataset fetcher for the given URL.
func NewFetcher(url string, timeout time.Duration, threshold int, logger *logrus.Logger) *Fetcher {
	settings := gobreaker.Settings{
		Name:        "dataset",
		MaxRequests: uint32(threshold),
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Fetcher{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Fetch downloads and parses the dataset.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.Player, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build dataset request: %w", err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("dataset fetch failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("dataset fetch returned status %d", resp.StatusCode)
		}

		players, err := ParseCSV(resp.Body)
		if err != nil {
			return nil, err
		}
		return players, nil
	})
	if err != nil {
		return nil, err
	}

	players := result.([]models.Player)
	f.logger.WithField("players", len(players)).Info("Dataset fetched")
	return players, nil
}

package content

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/metrics"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fetcher returns the current feed entries.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

// Store is the write side the refresher needs.
type Store interface {
	NewsURLExists(ctx context.Context, url string) (bool, error)
	CreateNews(ctx context.Context, item *domain.NewsItem) error
}

// RefresherConfig holds configuration for the news refresher
type RefresherConfig struct {
	Interval        time.Duration // Time between two passes
	RetryAttempts   int           // Attempts per pass
	RetryDelay      time.Duration // Base delay between retries
	PassTimeout     time.Duration // Deadline of a single attempt
	ShutdownTimeout time.Duration // Time to wait for the loop to exit
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() RefresherConfig {
	return RefresherConfig{
		Interval:        30 * time.Minute,
		RetryAttempts:   3,
		RetryDelay:      5 * time.Second,
		PassTimeout:     time.Minute,
		ShutdownTimeout: 30 * time.Second,
	}
}

// RefreshResult reports the outcome of one pass.
type RefreshResult struct {
	Added int `json:"adicionadas"`
	Total int `json:"total"`
}

// Refresher periodically imports new feed entries. Passes never overlap:
// scheduled and manual refreshes are serialized.
type Refresher struct {
	config  RefresherConfig
	fetcher Fetcher
	store   Store
	log     *zap.Logger

	passMu sync.Mutex // serializes passes

	mu         sync.RWMutex
	started    bool
	cancel     context.CancelFunc
	done       chan struct{}
	lastRun    time.Time
	lastResult RefreshResult
	lastErr    error
}

// NewRefresher creates a new news refresher
func NewRefresher(fetcher Fetcher, store Store, log *zap.Logger, config RefresherConfig) *Refresher {
	return &Refresher{
		config:  config,
		fetcher: fetcher,
		store:   store,
		log:     log,
	}
}

// Start runs a pass immediately and then one every Interval until Stop.
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("refresher already started")
	}
	if r.config.Interval <= 0 {
		return fmt.Errorf("refresher interval must be positive")
	}

	r.log.Info("starting news refresher",
		zap.Duration("interval", r.config.Interval),
		zap.Int("retry_attempts", r.config.RetryAttempts),
	)

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.started = true

	go r.loop(ctx, r.done)
	return nil
}

// Stop gracefully shuts down the refresher
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return fmt.Errorf("refresher not started")
	}
	cancel, done := r.cancel, r.done
	r.started = false
	r.mu.Unlock()

	r.log.Info("stopping news refresher")
	cancel()

	// a running pass takes r.mu to record its result, so wait unlocked
	select {
	case <-done:
		r.log.Info("news refresher stopped gracefully")
	case <-time.After(r.config.ShutdownTimeout):
		r.log.Warn("news refresher shutdown timeout reached")
		return fmt.Errorf("shutdown timeout reached")
	}
	return nil
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	r.refreshWithRetry(ctx)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refreshWithRetry(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// refreshWithRetry runs one scheduled pass with exponential backoff.
func (r *Refresher) refreshWithRetry(ctx context.Context) {
	attempts := r.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		_, err := r.Refresh(ctx)
		if err == nil {
			if attempt > 1 {
				r.log.Info("news refresh succeeded after retry", zap.Int("attempt", attempt))
			}
			return
		}

		lastErr = err
		r.log.Warn("news refresh failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)

		if attempt == attempts {
			break
		}

		delay := r.config.RetryDelay * time.Duration(1<<(attempt-1))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}

	r.log.Error("news refresh failed after all retries",
		zap.Int("attempts", attempts),
		zap.Error(lastErr),
	)
}

// Refresh fetches the feed and stores entries whose URL is not yet known.
func (r *Refresher) Refresh(ctx context.Context) (RefreshResult, error) {
	r.passMu.Lock()
	defer r.passMu.Unlock()

	if r.config.PassTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.PassTimeout)
		defer cancel()
	}

	result, err := r.refresh(ctx)

	r.mu.Lock()
	r.lastRun = domain.Now()
	r.lastResult = result
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		metrics.NewsRefreshes.WithLabelValues("error").Inc()
		return result, err
	}

	metrics.NewsRefreshes.WithLabelValues("ok").Inc()
	r.log.Info("news refreshed", zap.Int("added", result.Added), zap.Int("total", result.Total))
	return result, nil
}

func (r *Refresher) refresh(ctx context.Context) (RefreshResult, error) {
	entries, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{Total: len(entries)}
	for _, e := range entries {
		exists, err := r.store.NewsURLExists(ctx, e.URL)
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}

		item := &domain.NewsItem{
			Title:       e.Title,
			Content:     e.Content,
			URL:         e.URL,
			ImageURL:    e.ImageURL,
			PublishedAt: e.PublishedAt,
			Active:      true,
		}
		if err := r.store.CreateNews(ctx, item); err != nil {
			// the same URL may appear twice in one feed
			if errors.Is(err, repository.ErrNewsURLExists) {
				continue
			}
			return result, err
		}
		result.Added++
	}
	return result, nil
}

// GetStats returns refresher statistics
func (r *Refresher) GetStats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        r.started,
		"interval":       r.config.Interval.String(),
		"retry_attempts": r.config.RetryAttempts,
		"last_added":     r.lastResult.Added,
		"last_total":     r.lastResult.Total,
	}
	if !r.lastRun.IsZero() {
		stats["last_run"] = r.lastRun
	}
	if r.lastErr != nil {
		stats["last_error"] = r.lastErr.Error()
	}
	return stats
}

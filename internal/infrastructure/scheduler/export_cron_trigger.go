// Package scheduler runs the in-process daily export trigger.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/immoflow/backend/internal/domain/syndication"
	"go.uber.org/zap"
)

// ExportRunner starts one full export run over all active portal configs
type ExportRunner interface {
	RunExport(ctx context.Context) ([]syndication.ExportResult, error)
}

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// DailyHour and DailyMinute set the time of day the export runs (24h format)
	DailyHour   int
	DailyMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		DailyHour:     4, // 4am, before the portals import
		DailyMinute:   0,
		CheckInterval: time.Minute,
	}
}

// CronTrigger fires the daily feed export
type CronTrigger struct {
	config CronTriggerConfig
	runner ExportRunner
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Track which date we last ran for
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, runner ExportRunner, logger *zap.Logger) *CronTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &CronTrigger{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Export cron trigger started",
		zap.Int("daily_hour", c.config.DailyHour),
		zap.Int("daily_minute", c.config.DailyMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Export cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop checks periodically if it's time to run the export
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the export when the configured time of day is
// reached, at most once per calendar day
func (c *CronTrigger) checkAndTrigger(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if now.Hour() != c.config.DailyHour || now.Minute() != c.config.DailyMinute {
		return
	}

	c.mu.Lock()
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.logger.Info("Triggering daily feed export")
	c.runExport(ctx)
}

// runExport executes one export run and logs the outcome
func (c *CronTrigger) runExport(ctx context.Context) {
	start := time.Now()

	results, err := c.runner.RunExport(ctx)
	if err != nil {
		c.logger.Error("Daily feed export failed", zap.Error(err))
		return
	}

	succeeded, failed := 0, 0
	for _, r := range results {
		if r.Status == syndication.ExportStatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}

	c.logger.Info("Daily feed export finished",
		zap.Int("targets", len(results)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
}

// TriggerNow runs the export immediately, outside the daily schedule
func (c *CronTrigger) TriggerNow(ctx context.Context) {
	c.logger.Info("Manually triggering feed export")
	c.runExport(ctx)
}

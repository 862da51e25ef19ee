// Package syndication implements the feed export use cases: building
// per-agency XML feeds and delivering them to configured portals.
package syndication

import (
	"context"
	"sync"
	"time"

	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/immoflow/backend/internal/domain/syndication"
	"go.uber.org/zap"
)

// FeedUploader abstracts the transport that delivers one feed file to a
// portal. Implemented by the FTP client.
type FeedUploader interface {
	Upload(ctx context.Context, host, user, password, filename string, content []byte) error
}

// ExportOptions tunes one export run
type ExportOptions struct {
	// RetryAttempts is the total number of delivery attempts per target
	RetryAttempts int
	// RetryDelay is the pause between delivery attempts
	RetryDelay time.Duration
	// MaxConcurrent bounds how many targets are processed in parallel
	MaxConcurrent int
}

// normalize fills in sane values for unset options
func (o ExportOptions) normalize() ExportOptions {
	if o.RetryAttempts < 1 {
		o.RetryAttempts = 1
	}
	if o.MaxConcurrent < 1 {
		o.MaxConcurrent = 4
	}
	return o
}

// ExportService orchestrates export runs. Each active portal config is
// one target; targets are processed independently so a failure at one
// portal never blocks delivery to the others.
type ExportService struct {
	configRepo   syndication.PortalConfigRepository
	propertyRepo listing.PropertyRepository
	resolver     syndication.ImageURLResolver
	uploader     FeedUploader
	opts         ExportOptions
	logger       *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	configRepo syndication.PortalConfigRepository,
	propertyRepo listing.PropertyRepository,
	resolver syndication.ImageURLResolver,
	uploader FeedUploader,
	opts ExportOptions,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		configRepo:   configRepo,
		propertyRepo: propertyRepo,
		resolver:     resolver,
		uploader:     uploader,
		opts:         opts.normalize(),
		logger:       logger,
	}
}

// RunExport executes one full export run over every active portal config.
// The returned slice holds exactly one result per target, in target order.
// Only a failure to load the target list itself is returned as an error;
// per-target failures are isolated into their result entries.
func (s *ExportService) RunExport(ctx context.Context) ([]syndication.ExportResult, error) {
	targets, err := s.configRepo.FindActiveExportTargets(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export run started", zap.Int("targets", len(targets)))

	results := make([]syndication.ExportResult, len(targets))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.MaxConcurrent)

	for i, target := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, target syndication.ExportTarget) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.processTarget(ctx, target)
		}(i, target)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Status == syndication.ExportStatusSuccess {
			succeeded++
		}
	}
	s.logger.Info("export run finished",
		zap.Int("targets", len(targets)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(targets)-succeeded),
	)

	return results, nil
}

// processTarget builds and delivers one feed. Every failure is folded
// into the returned result so the caller sees one entry per target.
func (s *ExportService) processTarget(ctx context.Context, target syndication.ExportTarget) syndication.ExportResult {
	log := s.logger.With(
		zap.String("agency", target.AgencyName),
		zap.String("portal", target.Config.PortalName),
	)

	if !target.Config.HasCompleteCredentials() {
		log.Warn("skipping target with incomplete credentials")
		return syndication.ErrorResult(target, "missing FTP parameters")
	}

	properties, err := s.propertyRepo.FindActiveWithImages(ctx, target.Config.TenantID)
	if err != nil {
		log.Error("failed to load active properties", zap.Error(err))
		return syndication.ErrorResult(target, "loading properties: "+err.Error())
	}

	feed, err := syndication.BuildFeed(properties, s.resolver)
	if err != nil {
		log.Error("failed to build feed", zap.Error(err))
		return syndication.ErrorResult(target, "building feed: "+err.Error())
	}

	filename := target.Config.RemoteFilename()

	var lastErr error
	for attempt := 1; attempt <= s.opts.RetryAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return syndication.ErrorResult(target, ctx.Err().Error())
			case <-time.After(s.opts.RetryDelay):
			}
		}

		lastErr = s.uploader.Upload(ctx, target.Config.FTPHost, target.Config.FTPUser, target.Config.FTPPassword, filename, []byte(feed))
		if lastErr == nil {
			log.Info("feed delivered",
				zap.Int("properties", len(properties)),
				zap.String("filename", filename),
				zap.Int("attempt", attempt),
			)
			return syndication.SuccessResult(target)
		}

		log.Warn("feed delivery attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.opts.RetryAttempts),
			zap.Error(lastErr),
		)
	}

	return syndication.ErrorResult(target, lastErr.Error())
}

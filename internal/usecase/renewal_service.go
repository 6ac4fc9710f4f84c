package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// RenewalConfig bounds a sweep. PageSize is how many videos are read
// from the catalog per batch; MaxInFlight caps concurrent file host
// requests within a page.
type RenewalConfig struct {
	PageSize    int
	MaxInFlight int64
}

// RenewalService walks the whole video catalog and refreshes expired
// temporary links. A sweep is idempotent: videos whose links still
// answer are left untouched, so running it twice in a row resolves
// nothing the second time.
type RenewalService interface {
	Run(ctx context.Context) error
}

type renewalService struct {
	videos   repository.VideoRepository
	resolver repository.LinkResolver
	prober   repository.LinkHealthChecker
	cfg      RenewalConfig
	logger   *slog.Logger
}

func NewRenewalService(
	videos repository.VideoRepository,
	resolver repository.LinkResolver,
	prober repository.LinkHealthChecker,
	cfg RenewalConfig,
	logger *slog.Logger,
) RenewalService {
	return &renewalService{
		videos:   videos,
		resolver: resolver,
		prober:   prober,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *renewalService) Run(ctx context.Context) error {
	var (
		afterID uuid.UUID
		visited int
		renewed int
	)

	for {
		page, err := s.videos.ListPage(ctx, afterID, s.cfg.PageSize)
		if err != nil {
			metrics.RenewalRunsTotal.WithLabelValues(metrics.RenewalRunError).Inc()
			return fmt.Errorf("read catalog page: %w", err)
		}
		if len(page) == 0 {
			break
		}

		updates := s.renewPage(ctx, page)
		if len(updates) > 0 {
			if err := s.videos.BulkUpdateTempLinks(ctx, updates); err != nil {
				// The page's resolutions are lost but the sweep keeps
				// going; the next scheduled run picks these up again.
				s.logger.Error("bulk link update failed",
					slog.Int("count", len(updates)),
					slog.String("error", err.Error()))
			} else {
				renewed += len(updates)
			}
		}

		visited += len(page)
		afterID = page[len(page)-1].ID
		if len(page) < s.cfg.PageSize {
			break
		}
	}

	metrics.RenewalRunsTotal.WithLabelValues(metrics.RenewalRunOK).Inc()
	s.logger.Info("link renewal sweep finished",
		slog.Int("visited", visited),
		slog.Int("renewed", renewed))
	return nil
}

// renewPage probes and re-resolves one catalog page. Individual
// failures are logged and skipped; they never stop the page.
func (s *renewalService) renewPage(ctx context.Context, page []*model.Video) []repository.TempLinkUpdate {
	sem := semaphore.NewWeighted(s.cfg.MaxInFlight)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		updates []repository.TempLinkUpdate
	)

	for _, video := range page {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(v *model.Video) {
			defer wg.Done()
			defer sem.Release(1)

			if v.HasTempLink() && s.prober.IsAlive(ctx, v.TempLink) {
				metrics.RenewalVideosTotal.WithLabelValues(metrics.RenewalOutcomeSkipped).Inc()
				return
			}

			link, err := s.resolver.Resolve(ctx, v.MediaID)
			if err != nil {
				metrics.RenewalVideosTotal.WithLabelValues(metrics.RenewalOutcomeFailed).Inc()
				s.logger.Warn("link resolution failed",
					slog.String("media_id", v.MediaID),
					slog.String("error", err.Error()))
				return
			}

			metrics.RenewalVideosTotal.WithLabelValues(metrics.RenewalOutcomeRenewed).Inc()
			mu.Lock()
			updates = append(updates, repository.TempLinkUpdate{VideoID: v.ID, TempLink: link})
			mu.Unlock()
		}(video)
	}

	wg.Wait()
	return updates
}

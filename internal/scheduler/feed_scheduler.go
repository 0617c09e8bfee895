package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/tiendamx/tienda-engine/internal/app/service"
	"github.com/tiendamx/tienda-engine/pkg/logger"
)

// FeedScheduler reloads the catalog feed on a cron schedule. A failed
// refresh leaves the last good catalog in place; the failure is
// signalled to renderers by the catalog service itself.
type FeedScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	spec           string
}

func NewFeedScheduler(catalogService service.CatalogService, spec string) *FeedScheduler {
	return &FeedScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		spec:           spec,
	}
}

func (s *FeedScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled catalog refresh", nil)

		if _, err := s.catalogService.Load(context.Background()); err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Info("Scheduled catalog refresh completed", nil)
	})
	if err != nil {
		logger.Error("Failed to register catalog refresh job", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Catalog refresh scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *FeedScheduler) Stop() {
	logger.Info("Stopping catalog refresh scheduler...", nil)
	s.cron.Stop()
}

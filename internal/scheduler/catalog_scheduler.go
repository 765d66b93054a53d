package scheduler

import (
	"context"

	"github.com/qkart/storefront/internal/app/service"
	"github.com/qkart/storefront/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogScheduler refreshes the catalog cache in the background so the
// snapshot stays warm between user requests.
type CatalogScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	spec           string
}

func NewCatalogScheduler(catalogService service.CatalogService, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		spec:           spec,
	}
}

func (s *CatalogScheduler) Start() error {
	if s.spec == "" {
		logger.Info("Catalog refresh scheduler disabled", nil)
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled catalog refresh", nil)

		if err := s.catalogService.Refresh(context.Background()); err != nil {
			logger.Error("Scheduled catalog refresh failed", err, nil)
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

func (s *CatalogScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Catalog refresh scheduler stopped", nil)
}

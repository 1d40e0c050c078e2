package scheduler

import (
	"github.com/attirelabs/attire-backend/internal/app/service"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// trendingLimit is how many products carry the trending flag at once
const trendingLimit = 8

// TrendingScheduler refreshes the trending flags from wishlist activity
type TrendingScheduler struct {
	cron           *cron.Cron
	productService service.ProductService
}

func NewTrendingScheduler(productService service.ProductService) *TrendingScheduler {
	return &TrendingScheduler{
		cron:           cron.New(),
		productService: productService,
	}
}

// Start schedules the nightly trending recompute
func (s *TrendingScheduler) Start() error {
	// Daily at 3:00 AM, after the day's wishlist churn has settled
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled trending recompute", nil)

		if err := s.productService.RecomputeTrending(trendingLimit); err != nil {
			logger.Error("Failed to recompute trending products", err)
			return
		}

		logger.Info("Trending recompute finished", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for trending recompute", err)
		return err
	}

	s.cron.Start()
	logger.Info("Trending scheduler started (daily at 3:00 AM)", nil)

	return nil
}

// Stop stops the scheduler
func (s *TrendingScheduler) Stop() {
	logger.Info("Stopping trending scheduler...", nil)
	s.cron.Stop()
	logger.Info("Trending scheduler stopped", nil)
}

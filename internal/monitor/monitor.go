// Package monitor sweeps tracked products on a cron cadence, records price
// changes, and hands positive observations to the alert evaluator.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pricetrack/internal/config"
	"pricetrack/internal/models"
	"pricetrack/internal/repository"
	"pricetrack/internal/scraper"
)

// Extractor is the slice of the scraper service the monitor needs. The
// scheduler tests substitute a scripted stub here.
type Extractor interface {
	Extract(ctx context.Context, url string) (scraper.Result, error)
}

// Scheduler runs batch price checks. A cron entry calls RunBatch on the
// configured cadence; the monitor HTTP handler calls it on demand, so a
// deployment without the timer still works.
type Scheduler struct {
	Repo    repository.Repository
	Scraper Extractor
	Alerts  *AlertEvaluator
	Logger  *zap.Logger
	Config  config.MonitorConfig
}

// RunBatch loads a bounded batch of active products and checks them strictly
// sequentially, with an inter-item delay to keep request rates low on the
// merchant side. Per-item failures are logged and the loop continues; only a
// failure to load the batch aborts.
func (s *Scheduler) RunBatch(ctx context.Context) error {
	batchSize := s.Config.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	products, err := s.Repo.ListActiveProducts(ctx, batchSize)
	if err != nil {
		return fmt.Errorf("load active products: %w", err)
	}
	s.logger().Info("price check batch starting", zap.Int("products", len(products)))

	checked := 0
	for i := range products {
		if err := s.waitItemDelay(ctx); err != nil {
			return err
		}
		if err := s.checkProduct(ctx, &products[i]); err != nil {
			s.logger().Warn("product check failed",
				zap.String("product_id", products[i].ID),
				zap.String("name", products[i].Name),
				zap.Error(err),
			)
			continue
		}
		checked++
	}

	s.logger().Info("price check batch complete",
		zap.Int("products", len(products)),
		zap.Int("checked", checked),
	)
	return nil
}

func (s *Scheduler) waitItemDelay(ctx context.Context) error {
	if s.Config.ItemDelay <= 0 {
		return nil
	}
	t := time.NewTimer(s.Config.ItemDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Scheduler) checkProduct(ctx context.Context, product *models.Product) error {
	res, err := s.Scraper.Extract(ctx, product.URL)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newPrice := res.CurrentPrice
	oldPrice := product.CurrentPrice

	switch {
	case newPrice.IsPositive() && !newPrice.Equal(oldPrice):
		if err := s.Repo.UpdateProductPrice(ctx, product.ID, newPrice, now); err != nil {
			return fmt.Errorf("update price: %w", err)
		}
		sample := &models.PriceSample{
			ProductID: product.ID,
			Price:     newPrice,
			Currency:  "INR",
			Available: true,
			Timestamp: now,
		}
		if err := s.Repo.InsertPriceSample(ctx, sample); err != nil {
			return fmt.Errorf("append price sample: %w", err)
		}
		if raw, err := json.Marshal(res); err == nil {
			product.LastExtraction = raw
		}
		product.CurrentPrice = newPrice
		product.LastChecked = now
		s.logger().Info("price updated",
			zap.String("product_id", product.ID),
			zap.String("old", oldPrice.String()),
			zap.String("new", newPrice.String()),
		)
	default:
		// Unchanged or no price found. A zero result never overwrites a
		// known-good price; only the check timestamp moves.
		if err := s.Repo.TouchProductLastChecked(ctx, product.ID, now); err != nil {
			return fmt.Errorf("touch last checked: %w", err)
		}
		product.LastChecked = now
	}

	if newPrice.IsPositive() && s.Alerts != nil {
		if err := s.Alerts.Evaluate(ctx, product, newPrice, oldPrice); err != nil {
			return fmt.Errorf("evaluate alerts: %w", err)
		}
	}
	return nil
}

func (s *Scheduler) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

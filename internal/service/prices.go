package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricetrack/internal/models"
	"pricetrack/internal/monitor"
	"pricetrack/internal/repository"
)

// PriceService serves the history stream and the interactive single-product
// check.
type PriceService struct {
	Repo    repository.Repository
	Scraper monitor.Extractor
	Logger  *zap.Logger
}

// History returns the sample window for the last `days` days, oldest first.
func (s *PriceService) History(ctx context.Context, productID string, days int) ([]models.PriceSample, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.Repo.ListPriceSamples(ctx, productID, since)
}

// CheckNow runs the extraction pipeline for one product on demand. A positive
// price is persisted with a fresh sample; anything else returns
// ErrNoPriceFound without touching the stored price.
func (s *PriceService) CheckNow(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := s.Repo.GetProductByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	res, err := s.Scraper.Extract(ctx, product.URL)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.HasPrice() {
		return decimal.Zero, ErrNoPriceFound
	}

	now := time.Now().UTC()
	if err := s.Repo.UpdateProductPrice(ctx, product.ID, res.CurrentPrice, now); err != nil {
		return decimal.Zero, err
	}
	if err := s.Repo.InsertPriceSample(ctx, &models.PriceSample{
		ProductID: product.ID,
		Price:     res.CurrentPrice,
		Currency:  "INR",
		Available: true,
		Timestamp: now,
	}); err != nil {
		return decimal.Zero, err
	}

	s.logger().Info("manual price check",
		zap.String("product_id", product.ID),
		zap.String("price", res.CurrentPrice.String()),
	)
	return res.CurrentPrice, nil
}

func (s *PriceService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

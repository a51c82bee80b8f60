package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pricetrack/internal/models"
	"pricetrack/internal/monitor"
	"pricetrack/internal/platform"
	"pricetrack/internal/repository"
	"pricetrack/internal/scraper"
)

var (
	ErrBadInput     = errors.New("provide either a url or full product details")
	ErrNotOwner     = errors.New("product does not belong to user")
	ErrNotFound     = repository.ErrNotFound
	ErrNoPriceFound = errors.New("unable to fetch price")
)

// ProductService owns the tracked-product lifecycle: add by URL (running the
// extraction pipeline), manual add, edits, soft deletion, and listing.
type ProductService struct {
	Repo    repository.Repository
	Scraper monitor.Extractor
	Logger  *zap.Logger
}

type AddProductInput struct {
	UserID       string
	URL          string
	Name         string
	CurrentPrice decimal.Decimal
	ImageURL     string
	Platform     string
	Category     string
}

type UpdateProductInput struct {
	Name         string
	CurrentPrice *decimal.Decimal
	ImageURL     string
}

// Add creates a tracked product. With full manual details it skips scraping;
// with only a URL it runs the extraction pipeline and falls back to a
// placeholder product rather than failing on an unparseable page. The product
// row and the initial price sample (only when price > 0) commit atomically.
func (s *ProductService) Add(ctx context.Context, in AddProductInput) (*models.Product, error) {
	var (
		res     scraper.Result
		rawJSON []byte
	)

	switch {
	case in.Name != "" && in.CurrentPrice.IsPositive() && in.Platform != "":
		p := platform.Platform(strings.ToLower(in.Platform))
		if !platform.Valid(p) {
			p = platform.Unknown
		}
		res = scraper.Result{
			Name:          in.Name,
			CurrentPrice:  in.CurrentPrice,
			OriginalPrice: in.CurrentPrice,
			ImageURL:      in.ImageURL,
			Platform:      p,
		}
	case in.URL != "":
		extracted, err := s.Scraper.Extract(ctx, in.URL)
		if err != nil {
			// Renderer misconfiguration; the add flow reports it instead of
			// silently storing a placeholder.
			return nil, fmt.Errorf("extract product: %w", err)
		}
		res = extracted
		rawJSON, _ = json.Marshal(extracted)
		if !res.HasPrice() {
			s.logger().Warn("add-by-url found no price, storing placeholder",
				zap.String("url", in.URL),
				zap.String("platform", res.Platform.String()),
			)
		}
	default:
		return nil, ErrBadInput
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Name:          res.Name,
		URL:           in.URL,
		Platform:      res.Platform,
		CurrentPrice:  res.CurrentPrice,
		OriginalPrice: res.OriginalPrice,
		Category:      in.Category,
		Availability:  models.AvailabilityInStock,
		IsActive:      true,
		LastChecked:   now,
	}
	if product.URL == "" {
		product.URL = "#"
	}
	if product.Name == "" {
		product.Name = placeholderName(in.URL, res.Platform)
	}
	if product.Category == "" {
		product.Category = "Electronics"
	}
	if res.ImageURL != "" {
		img := res.ImageURL
		product.ImageURL = &img
	}
	if rawJSON != nil {
		product.LastExtraction = rawJSON
	}

	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.CreateProductTx(ctx, tx, product); err != nil {
			return err
		}
		if product.CurrentPrice.IsPositive() {
			return s.Repo.InsertPriceSampleTx(ctx, tx, &models.PriceSample{
				ProductID: product.ID,
				Price:     product.CurrentPrice,
				Currency:  "INR",
				Available: true,
				Timestamp: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product owned by userID together with its full history.
func (s *ProductService) Get(ctx context.Context, userID, id string) (*models.Product, []models.PriceSample, error) {
	product, err := s.ownedProduct(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.Repo.ListPriceSamples(ctx, id, time.Time{})
	if err != nil {
		// The product itself is still useful without its history.
		s.logger().Warn("price history fetch failed", zap.String("product_id", id), zap.Error(err))
		history = nil
	}
	return product, history, nil
}

func (s *ProductService) List(ctx context.Context, userID string) ([]models.Product, error) {
	return s.Repo.ListProductsByUser(ctx, userID)
}

func (s *ProductService) Trending(ctx context.Context, limit int) ([]models.Product, error) {
	return s.Repo.ListTrendingProducts(ctx, limit)
}

// Update edits owner-mutable fields. A price edit appends a history sample,
// same as a scraped change.
func (s *ProductService) Update(ctx context.Context, userID, id string, in UpdateProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.ImageURL != "" {
		img := in.ImageURL
		product.ImageURL = &img
	}
	now := time.Now().UTC()
	if in.CurrentPrice != nil && in.CurrentPrice.IsPositive() && !in.CurrentPrice.Equal(product.CurrentPrice) {
		if err := s.Repo.InsertPriceSample(ctx, &models.PriceSample{
			ProductID: product.ID,
			Price:     *in.CurrentPrice,
			Currency:  "INR",
			Available: true,
			Timestamp: now,
		}); err != nil {
			return nil, err
		}
		product.CurrentPrice = *in.CurrentPrice
	}
	product.LastChecked = now

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete flips the active flag; the row and its history stay.
func (s *ProductService) SoftDelete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedProduct(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.SetProductActive(ctx, id, false)
}

func (s *ProductService) ownedProduct(ctx context.Context, userID, id string) (*models.Product, error) {
	product, err := s.Repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, ErrNotOwner
	}
	return product, nil
}

func placeholderName(rawURL string, p platform.Platform) string {
	if p != platform.Unknown {
		return "Product from " + p.String()
	}
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return "Product from " + u.Hostname()
	}
	return "Product from " + p.String()
}

func (s *ProductService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pricetrack/internal/models"
	"pricetrack/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	users    map[string]models.User
	products map[string]*models.Product
	alerts   map[string]*models.Alert
	samples  []models.PriceSample

	samplesErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:    map[string]models.User{},
		products: map[string]*models.Product{},
		alerts:   map[string]*models.Alert{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) CreateUser(ctx context.Context, item *models.User) error {
	s.users[item.ID] = *item
	return nil
}

func (s *stubRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *stubRepo) CreateProduct(ctx context.Context, item *models.Product) error {
	cp := *item
	s.products[item.ID] = &cp
	return nil
}

func (s *stubRepo) CreateProductTx(ctx context.Context, tx *gorm.DB, item *models.Product) error {
	return s.CreateProduct(ctx, item)
}

func (s *stubRepo) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) ListProductsByUser(ctx context.Context, userID string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if p.UserID == userID && p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubRepo) ListActiveProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if p.IsActive && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubRepo) ListTrendingProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (s *stubRepo) SaveProduct(ctx context.Context, item *models.Product) error {
	cp := *item
	s.products[item.ID] = &cp
	return nil
}

func (s *stubRepo) UpdateProductPrice(ctx context.Context, id string, price decimal.Decimal, checkedAt time.Time) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.CurrentPrice = price
	p.LastChecked = checkedAt
	return nil
}

func (s *stubRepo) TouchProductLastChecked(ctx context.Context, id string, checkedAt time.Time) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.LastChecked = checkedAt
	return nil
}

func (s *stubRepo) SetProductActive(ctx context.Context, id string, active bool) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (s *stubRepo) InsertPriceSample(ctx context.Context, item *models.PriceSample) error {
	s.samples = append(s.samples, *item)
	return nil
}

func (s *stubRepo) InsertPriceSampleTx(ctx context.Context, tx *gorm.DB, item *models.PriceSample) error {
	return s.InsertPriceSample(ctx, item)
}

func (s *stubRepo) ListPriceSamples(ctx context.Context, productID string, since time.Time) ([]models.PriceSample, error) {
	if s.samplesErr != nil {
		return nil, s.samplesErr
	}
	var out []models.PriceSample
	for _, sm := range s.samples {
		if sm.ProductID == productID && !sm.Timestamp.Before(since) {
			out = append(out, sm)
		}
	}
	return out, nil
}

func (s *stubRepo) CreateAlert(ctx context.Context, item *models.Alert) error {
	cp := *item
	s.alerts[item.ID] = &cp
	return nil
}

func (s *stubRepo) GetAlertByID(ctx context.Context, id string) (*models.Alert, error) {
	a, ok := s.alerts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *stubRepo) ListAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range s.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubRepo) ListActiveUnnotifiedAlerts(ctx context.Context, productID string) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range s.alerts {
		if a.ProductID == productID && a.IsActive && !a.Notified {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubRepo) SaveAlert(ctx context.Context, item *models.Alert) error {
	cp := *item
	s.alerts[item.ID] = &cp
	return nil
}

func (s *stubRepo) MarkAlertNotified(ctx context.Context, id string, at time.Time) error {
	a, ok := s.alerts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Notified = true
	a.NotifiedAt = &at
	return nil
}

var _ repository.Repository = (*stubRepo)(nil)

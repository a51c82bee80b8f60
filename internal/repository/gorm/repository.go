package gormrepository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pricetrack/internal/models"
	"pricetrack/internal/platform"
	"pricetrack/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- users -------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	var item models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- products ----------------------------------------------------------------

func (s *Store) CreateProduct(ctx context.Context, item *models.Product) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) CreateProductTx(ctx context.Context, tx *gorm.DB, item *models.Product) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	var item models.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListProductsByUser(ctx context.Context, userID string) ([]models.Product, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Product
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActiveProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("last_checked ASC").
		Limit(normalizeLimit(limit, 50)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListTrendingProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("current_price > 0").
		Where("image_url IS NOT NULL AND image_url <> ''").
		Where("platform <> ?", platform.Unknown).
		Where("name NOT LIKE ?", "Product from %").
		Order("created_at DESC").
		Limit(normalizeLimit(limit, 12)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SaveProduct(ctx context.Context, item *models.Product) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) UpdateProductPrice(ctx context.Context, id string, price decimal.Decimal, checkedAt time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_price": price,
			"last_checked":  checkedAt,
		}).Error
}

func (s *Store) TouchProductLastChecked(ctx context.Context, id string, checkedAt time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("last_checked", checkedAt).Error
}

func (s *Store) SetProductActive(ctx context.Context, id string, active bool) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// --- price samples -----------------------------------------------------------

func (s *Store) InsertPriceSample(ctx context.Context, item *models.PriceSample) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertPriceSampleTx(ctx context.Context, tx *gorm.DB, item *models.PriceSample) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListPriceSamples(ctx context.Context, productID string, since time.Time) ([]models.PriceSample, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Where("product_id = ?", productID)
	if !since.IsZero() {
		query = query.Where("timestamp >= ?", since)
	}
	var items []models.PriceSample
	if err := query.Order("timestamp ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- alerts ------------------------------------------------------------------

func (s *Store) CreateAlert(ctx context.Context, item *models.Alert) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetAlertByID(ctx context.Context, id string) (*models.Alert, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	var item models.Alert
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Alert
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActiveUnnotifiedAlerts(ctx context.Context, productID string) ([]models.Alert, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Alert
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ? AND notified = ?", productID, true, false).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SaveAlert(ctx context.Context, item *models.Alert) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) MarkAlertNotified(ctx context.Context, id string, at time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"notified":    true,
			"notified_at": at,
		}).Error
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}

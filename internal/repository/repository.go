package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pricetrack/internal/models"
)

// ErrNotFound is returned when a lookup by identifier matches nothing.
var ErrNotFound = errors.New("not found")

// Repository is the persistence surface consumed by the scraper service, the
// monitor and the HTTP handlers. The core treats it as an externally owned
// document store; the gorm implementation lives in repository/gorm.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Users.
	CreateUser(ctx context.Context, item *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Products. Deletion is always the soft kind: the active flag flips and
	// the row stays.
	CreateProduct(ctx context.Context, item *models.Product) error
	CreateProductTx(ctx context.Context, tx *gorm.DB, item *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ListProductsByUser(ctx context.Context, userID string) ([]models.Product, error)
	ListActiveProducts(ctx context.Context, limit int) ([]models.Product, error)
	ListTrendingProducts(ctx context.Context, limit int) ([]models.Product, error)
	SaveProduct(ctx context.Context, item *models.Product) error
	UpdateProductPrice(ctx context.Context, id string, price decimal.Decimal, checkedAt time.Time) error
	TouchProductLastChecked(ctx context.Context, id string, checkedAt time.Time) error
	SetProductActive(ctx context.Context, id string, active bool) error

	// Price samples (append-only).
	InsertPriceSample(ctx context.Context, item *models.PriceSample) error
	InsertPriceSampleTx(ctx context.Context, tx *gorm.DB, item *models.PriceSample) error
	ListPriceSamples(ctx context.Context, productID string, since time.Time) ([]models.PriceSample, error)

	// Alerts.
	CreateAlert(ctx context.Context, item *models.Alert) error
	GetAlertByID(ctx context.Context, id string) (*models.Alert, error)
	ListAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error)
	ListActiveUnnotifiedAlerts(ctx context.Context, productID string) ([]models.Alert, error)
	SaveAlert(ctx context.Context, item *models.Alert) error
	MarkAlertNotified(ctx context.Context, id string, at time.Time) error
}

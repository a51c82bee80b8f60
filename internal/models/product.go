package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"pricetrack/internal/platform"
)

type Product struct {
	ID            string            `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string            `gorm:"type:uuid;index:idx_products_user_active;not null" json:"userId"`
	Name          string            `gorm:"type:text;not null" json:"name"`
	URL           string            `gorm:"type:text;not null" json:"url"`
	Platform      platform.Platform `gorm:"type:varchar(30);index;not null" json:"platform"`
	CurrentPrice  decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"currentPrice"`
	OriginalPrice decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"originalPrice"`
	ImageURL      *string           `gorm:"type:text" json:"imageUrl"`
	Category      string            `gorm:"type:varchar(50);not null;default:'Electronics'" json:"category"`
	Availability  string            `gorm:"type:varchar(20);not null;default:'in-stock'" json:"availability"`
	IsActive      bool              `gorm:"not null;default:true;index:idx_products_user_active" json:"isActive"`
	LastChecked   time.Time         `gorm:"type:timestamptz;not null" json:"lastChecked"`
	CreatedAt     time.Time         `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`

	// Raw payload of the most recent extraction, kept for debugging selector drift.
	LastExtraction datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

const (
	AvailabilityInStock    = "in-stock"
	AvailabilityOutOfStock = "out-of-stock"
	AvailabilityLimited    = "limited-stock"
)

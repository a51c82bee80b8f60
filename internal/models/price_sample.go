package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSample is one observed price point. Rows are append-only: the monitor
// never updates or deletes them.
type PriceSample struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string          `gorm:"type:uuid;index:idx_price_samples_product_ts;not null" json:"productId"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Currency  string          `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	Available bool            `gorm:"not null;default:true" json:"available"`
	Timestamp time.Time       `gorm:"type:timestamptz;index:idx_price_samples_product_ts;not null" json:"timestamp"`
}

func (PriceSample) TableName() string {
	return "price_samples"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert asks for a notification once the product price falls to or below
// TargetPrice. Notified is the at-most-once guard: it is persisted right after
// a successful dispatch and the evaluator skips alerts that carry it.
type Alert struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string          `gorm:"type:uuid;index:idx_alerts_user_active;not null" json:"userId"`
	ProductID   string          `gorm:"type:uuid;index:idx_alerts_product_active;not null" json:"productId"`
	TargetPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"targetPrice"`
	IsActive    bool            `gorm:"not null;default:true;index:idx_alerts_user_active;index:idx_alerts_product_active" json:"isActive"`
	Notified    bool            `gorm:"not null;default:false" json:"notified"`
	NotifiedAt  *time.Time      `gorm:"type:timestamptz" json:"notifiedAt"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (Alert) TableName() string {
	return "alerts"
}

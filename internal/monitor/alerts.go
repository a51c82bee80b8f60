package monitor

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricetrack/internal/models"
	"pricetrack/internal/notify"
	"pricetrack/internal/repository"
)

// AlertEvaluator dispatches notifications for alerts whose threshold a new
// observation crossed. The persisted notified flag is the at-most-once guard:
// it is written immediately after a successful dispatch, and flagged alerts
// are skipped entirely until reset elsewhere. A crash between dispatch and the
// flag write can duplicate one notification; that narrow window is accepted.
type AlertEvaluator struct {
	Repo     repository.Repository
	Notifier notify.Notifier
	Logger   *zap.Logger
}

// Evaluate checks every active, un-notified alert on the product against
// newPrice. Notifier failures are logged and the alert stays un-notified, so
// the next cycle retries it.
func (e *AlertEvaluator) Evaluate(ctx context.Context, product *models.Product, newPrice, oldPrice decimal.Decimal) error {
	alerts, err := e.Repo.ListActiveUnnotifiedAlerts(ctx, product.ID)
	if err != nil {
		return err
	}

	for i := range alerts {
		alert := &alerts[i]
		if newPrice.GreaterThan(alert.TargetPrice) {
			continue
		}

		user, err := e.Repo.GetUserByID(ctx, alert.UserID)
		if err != nil {
			e.logger().Warn("alert recipient lookup failed",
				zap.String("alert_id", alert.ID),
				zap.String("user_id", alert.UserID),
				zap.Error(err),
			)
			continue
		}

		subject, body := notify.PriceDropEmail(user.Name, product, newPrice, oldPrice)
		if err := e.Notifier.Send(ctx, user.Email, subject, body); err != nil {
			e.logger().Warn("alert dispatch failed, will retry next cycle",
				zap.String("alert_id", alert.ID),
				zap.String("to", user.Email),
				zap.Error(err),
			)
			continue
		}

		if err := e.Repo.MarkAlertNotified(ctx, alert.ID, time.Now().UTC()); err != nil {
			// Dispatch already happened; a redelivery next cycle is the
			// accepted cost of losing this write.
			e.logger().Error("mark alert notified failed",
				zap.String("alert_id", alert.ID),
				zap.Error(err),
			)
			continue
		}

		e.logger().Info("alert dispatched",
			zap.String("alert_id", alert.ID),
			zap.String("product_id", product.ID),
			zap.String("target", alert.TargetPrice.String()),
			zap.String("price", newPrice.String()),
		)
	}
	return nil
}

func (e *AlertEvaluator) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

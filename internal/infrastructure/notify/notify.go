// Package notify delivers product notifications to an external sink. Every
// sink is best effort: failures are reported in the DeliveryResult and never
// as an error.
package notify

import (
	"time"

	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/pkg/metrics"
)

func observe(driver string, start time.Time, res ports.DeliveryResult) ports.DeliveryResult {
	result := "delivered"
	if !res.Delivered {
		result = "failed"
	}
	metrics.NotificationsTotal.WithLabelValues(driver, result).Inc()
	metrics.NotificationDuration.WithLabelValues(driver).Observe(time.Since(start).Seconds())
	return res
}

func failed(err error) ports.DeliveryResult {
	return ports.DeliveryResult{Delivered: false, Detail: err.Error()}
}

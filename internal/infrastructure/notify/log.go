package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/core/ports"
)

// Log writes notifications to the application log. It is the default sink
// when no webhook or broker is configured.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log.With().Str("component", "notify").Logger()}
}

func (l *Log) Notify(_ context.Context, n ports.Notification) ports.DeliveryResult {
	start := time.Now()
	l.log.Info().
		Str("key", n.Key).
		Str("title", n.Title).
		Str("text", n.Text).
		Msg("notification")
	return observe("log", start, ports.DeliveryResult{Delivered: true, Detail: "logged"})
}

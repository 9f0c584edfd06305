package repository

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
)

// MarketData returns OHLCV history for a symbol. Implementations must return
// models.ErrDataUnavailable when the provider has nothing for the
// symbol/period.
type MarketData interface {
	History(ctx context.Context, symbol string, period time.Duration) (models.PriceSeries, error)
}

// News returns articles for a symbol over a date window, in provider order.
// An empty slice is a valid result, not an error.
type News interface {
	CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsItem, error)
}

// Publisher pushes recommendation-transition events to an external bus.
type Publisher interface {
	PublishTransition(ctx context.Context, ev models.TransitionEvent) error
	Close() error
}

// History records recommendation transitions and serves them back, newest
// first. An empty symbol reads across the whole universe.
type History interface {
	RecordTransition(ctx context.Context, ev models.TransitionEvent) error
	Recent(ctx context.Context, symbol string, limit int) ([]models.TransitionEvent, error)
	Close() error
}

// Metrics abstracts operational metrics recording.
type Metrics interface {
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordComputeLatency(kind string, seconds float64)
	RecordRefreshRun(outcome string)
	RecordTransition(symbol string)
	RecordProviderError(provider string)
	SetSubscribers(n int)
}

package repository

import (
	"context"
	"errors"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/cache"
	"StockPulse/pkg/logger"
)

// CachedMarketData decorates a MarketData provider with a payload cache so
// repeated history fetches within the TTL hit the cache instead of the
// upstream API. Cache failures degrade to a direct fetch.
type CachedMarketData struct {
	next  drepo.MarketData
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedMarketData wraps a market data provider with caching.
func NewCachedMarketData(next drepo.MarketData, c cache.Service, ttl time.Duration, log *logger.Logger) *CachedMarketData {
	return &CachedMarketData{next: next, cache: c, ttl: ttl, log: log}
}

func (m *CachedMarketData) History(ctx context.Context, symbol string, period time.Duration) (models.PriceSeries, error) {
	key := cache.GenerateKeyWithParams("chart", symbol, int(period.Hours()/24))

	var series models.PriceSeries
	err := m.cache.Get(ctx, key, &series)
	if err == nil && series.Len() > 0 {
		return series, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) && m.log != nil {
		m.log.Warn("chart cache read failed", logger.String("symbol", symbol), logger.Error(err))
	}

	series, err = m.next.History(ctx, symbol, period)
	if err != nil {
		return models.PriceSeries{}, err
	}

	if err := m.cache.Set(ctx, key, series, m.ttl); err != nil && m.log != nil {
		m.log.Warn("chart cache write failed", logger.String("symbol", symbol), logger.Error(err))
	}
	return series, nil
}

// CachedNews decorates a News provider the same way. An empty article list is
// cached too; a symbol without coverage should not hammer the provider.
type CachedNews struct {
	next  drepo.News
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedNews wraps a news provider with caching.
func NewCachedNews(next drepo.News, c cache.Service, ttl time.Duration, log *logger.Logger) *CachedNews {
	return &CachedNews{next: next, cache: c, ttl: ttl, log: log}
}

func (n *CachedNews) CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsItem, error) {
	key := cache.GenerateKeyWithParams("news", symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var items []models.NewsItem
	err := n.cache.Get(ctx, key, &items)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) && n.log != nil {
		n.log.Warn("news cache read failed", logger.String("symbol", symbol), logger.Error(err))
	}

	items, err = n.next.CompanyNews(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.NewsItem{}
	}

	if err := n.cache.Set(ctx, key, items, n.ttl); err != nil && n.log != nil {
		n.log.Warn("news cache write failed", logger.String("symbol", symbol), logger.Error(err))
	}
	return items, nil
}

//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Domain registries
		ProvideUniverse,
		ProvideForecastRegistry,
		ProvideScorer,

		// Providers and their caches
		ProvideProviderCache,
		ProvideMarketData,
		ProvideNews,
		ProvidePriceStore,
		ProvideSentimentStore,

		// Pipeline
		ProvideAdvisorConfig,
		ProvideAdvisor,

		// Streaming
		ProvideHub,
		ProvideStreamHandler,

		// Optional sinks
		ProvidePublisher,
		ProvideHistory,

		// Background refresh
		ProvideRefresher,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

package di

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/forecast"
	"StockPulse/internal/handler/api"
	"StockPulse/internal/handler/ws"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/sentiment"
	sigcache "StockPulse/internal/service/cache"
	"StockPulse/internal/service/finnhub"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/universe"
	"StockPulse/internal/usecase"
	pkgcache "StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideUniverse returns the built-in instrument universe.
func ProvideUniverse() *universe.Registry {
	return universe.Default()
}

// ProvideForecastRegistry returns the registry with all built-in strategies.
func ProvideForecastRegistry() *forecast.Registry {
	return forecast.DefaultRegistry()
}

// ProvideScorer creates the lexicon-backed sentiment scorer.
func ProvideScorer() *sentiment.Scorer {
	return sentiment.NewScorer(sentiment.NewLexicon())
}

// ProvideProviderCache creates the provider payload cache: in-memory LRU,
// layered with Redis when configured.
func ProvideProviderCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Providers.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}

	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Providers.Cache.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Providers.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Providers.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("provider cache: %w", err)
	}
	return pkgcache.NewLayeredCache(redisCache), nil
}

// ProvideMarketData creates the chart provider behind the payload cache.
func ProvideMarketData(cfg *config.Config, cache pkgcache.Service, l *applogger.Logger) drepo.MarketData {
	client := yahoo.New(cfg.Providers.Chart.BaseURL, cfg.Providers.Chart.Timeout)
	return internalrepo.NewCachedMarketData(client, cache, cfg.Providers.Cache.TTL, l)
}

// ProvideNews creates the news provider behind the payload cache.
func ProvideNews(cfg *config.Config, cache pkgcache.Service, l *applogger.Logger) drepo.News {
	client := finnhub.New(cfg.Providers.Finnhub.APIKey, cfg.Providers.Finnhub.BaseURL, cfg.Providers.Finnhub.Timeout)
	return internalrepo.NewCachedNews(client, cache, cfg.Providers.Cache.TTL, l)
}

// ProvidePriceStore creates the price signal cache.
func ProvidePriceStore() *sigcache.Store[models.PriceSignal] {
	return sigcache.NewStore[models.PriceSignal]()
}

// ProvideSentimentStore creates the sentiment signal cache.
func ProvideSentimentStore() *sigcache.Store[models.SentimentSignal] {
	return sigcache.NewStore[models.SentimentSignal]()
}

// ProvideAdvisorConfig maps the YAML config onto the pipeline tunables.
func ProvideAdvisorConfig(cfg *config.Config) usecase.AdvisorConfig {
	return usecase.AdvisorConfig{
		FreshnessWindow:    cfg.Advisor.FreshnessWindow,
		HistoryPeriod:      parsePeriod(cfg.Advisor.HistoryPeriod),
		NewsLookbackDays:   cfg.Advisor.NewsLookbackDays,
		DefaultHorizonDays: cfg.Advisor.DefaultHorizonDays,
		PriceBuyThreshold:  cfg.Advisor.PriceBuyThreshold,
		PriceSellThreshold: cfg.Advisor.PriceSellThreshold,
	}
}

// ProvideAdvisor wires the advisory pipeline.
func ProvideAdvisor(
	acfg usecase.AdvisorConfig,
	registry *forecast.Registry,
	scorer *sentiment.Scorer,
	market drepo.MarketData,
	news drepo.News,
	uni *universe.Registry,
	prices *sigcache.Store[models.PriceSignal],
	sentiments *sigcache.Store[models.SentimentSignal],
	m drepo.Metrics,
	l *applogger.Logger,
) *usecase.Advisor {
	return usecase.NewAdvisor(acfg, registry, scorer, market, news, uni, prices, sentiments, m, l)
}

// ProvideHub creates the stream hub.
func ProvideHub(m drepo.Metrics, l *applogger.Logger) *ws.Hub {
	return ws.NewHub(m, l)
}

// ProvideStreamHandler creates the WebSocket transport.
func ProvideStreamHandler(hub *ws.Hub, l *applogger.Logger) *ws.Handler {
	return ws.NewHandler(hub, l)
}

// ProvidePublisher creates the Kafka transition publisher, nil when disabled.
func ProvidePublisher(cfg *config.Config, l *applogger.Logger) (drepo.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaTransitionPublisher(producer, cfg.Kafka.Topic, l), nil
}

// ProvideHistory creates the ClickHouse transition recorder, nil when
// disabled.
func ProvideHistory(cfg *config.Config, l *applogger.Logger) (drepo.History, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	history, err := internalrepo.NewCHTransitionHistory(client, l)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return history, nil
}

// ProvideRefresher creates the background refresher.
func ProvideRefresher(
	advisor *usecase.Advisor,
	hub *ws.Hub,
	m drepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
	publisher drepo.Publisher,
	history drepo.History,
) *usecase.Refresher {
	opts := make([]usecase.RefresherOption, 0, 2)
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher))
	}
	if history != nil {
		opts = append(opts, usecase.WithHistory(history))
	}
	return usecase.NewRefresher(advisor, hub, m, l, cfg.Advisor.RefreshInterval, opts...)
}

// ProvideHTTPHandler creates the HTTP route handler.
func ProvideHTTPHandler(l *applogger.Logger, advisor *usecase.Advisor, stream *ws.Handler, history drepo.History) xhttp.Handler {
	opts := make([]api.HandlerOption, 0, 1)
	if history != nil {
		opts = append(opts, api.WithHistory(history))
	}
	return api.NewAdvisorHandler(l, advisor, stream, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.Refresher,
	publisher drepo.Publisher,
	history drepo.History,
) *server.App {
	opts := make([]server.AppOption, 0, 2)
	if publisher != nil {
		opts = append(opts, server.WithPublisher(publisher))
	}
	if history != nil {
		opts = append(opts, server.WithHistory(history))
	}
	return server.New(cfg, l, handler, refresher, opts...)
}

// parsePeriod converts a lookback like "2y", "6mo", or "90d" into a duration.
// Unparseable input falls back to two years.
func parsePeriod(s string) time.Duration {
	const day = 24 * time.Hour
	fallback := 2 * 365 * day

	s = strings.TrimSpace(strings.ToLower(s))
	var numeric string
	var unit string
	for i, r := range s {
		if r < '0' || r > '9' {
			numeric, unit = s[:i], s[i:]
			break
		}
	}
	if numeric == "" {
		return fallback
	}
	n, err := strconv.Atoi(numeric)
	if err != nil || n <= 0 {
		return fallback
	}

	switch unit {
	case "y":
		return time.Duration(n) * 365 * day
	case "mo":
		return time.Duration(n) * 30 * day
	case "w":
		return time.Duration(n) * 7 * day
	case "d":
		return time.Duration(n) * day
	default:
		return fallback
	}
}

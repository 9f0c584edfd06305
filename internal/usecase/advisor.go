package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/forecast"
	"StockPulse/internal/sentiment"
	sigcache "StockPulse/internal/service/cache"
	"StockPulse/internal/universe"
	"StockPulse/pkg/logger"
)

// AdvisorConfig carries the tunables of the advisory pipeline.
type AdvisorConfig struct {
	FreshnessWindow    time.Duration
	HistoryPeriod      time.Duration
	NewsLookbackDays   int
	DefaultHorizonDays int
	PriceBuyThreshold  float64
	PriceSellThreshold float64
}

// Advisor is the advisory pipeline: forecasts, sentiment, fusion, and the
// signal caches in front of them.
type Advisor struct {
	cfg        AdvisorConfig
	registry   *forecast.Registry
	scorer     *sentiment.Scorer
	market     drepo.MarketData
	news       drepo.News
	universe   *universe.Registry
	prices     *sigcache.Store[models.PriceSignal]
	sentiments *sigcache.Store[models.SentimentSignal]
	metrics    drepo.Metrics
	log        *logger.Logger
	now        func() time.Time
}

// NewAdvisor wires the advisory pipeline.
func NewAdvisor(
	cfg AdvisorConfig,
	registry *forecast.Registry,
	scorer *sentiment.Scorer,
	market drepo.MarketData,
	news drepo.News,
	uni *universe.Registry,
	prices *sigcache.Store[models.PriceSignal],
	sentiments *sigcache.Store[models.SentimentSignal],
	metrics drepo.Metrics,
	log *logger.Logger,
) *Advisor {
	return &Advisor{
		cfg:        cfg,
		registry:   registry,
		scorer:     scorer,
		market:     market,
		news:       news,
		universe:   uni,
		prices:     prices,
		sentiments: sentiments,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// Universe returns the symbol→display-name table.
func (a *Advisor) Universe() map[string]string {
	return a.universe.Table()
}

// Models returns the registered model-type ids.
func (a *Advisor) Models() []string {
	return a.registry.List()
}

// priceKey builds the price-cache key. The forecaster's registered name goes
// into the key, so an unknown model id shares the default model's entry.
func priceKey(symbol, model string, horizonDays int) string {
	return fmt.Sprintf("%s|%s|%d", symbol, model, horizonDays)
}

// PriceSignal returns the cached or freshly computed forecast for the symbol.
func (a *Advisor) PriceSignal(ctx context.Context, symbol, modelType string, horizonDays int) (models.PriceSignal, error) {
	f, err := a.registry.Get(modelType)
	if err != nil {
		return models.PriceSignal{}, err
	}
	if horizonDays < 1 {
		horizonDays = a.cfg.DefaultHorizonDays
	}

	key := priceKey(symbol, f.Name(), horizonDays)
	sig, cached, err := a.prices.GetOrCompute(ctx, key, a.cfg.FreshnessWindow, func(ctx context.Context) (models.PriceSignal, error) {
		return a.computePriceSignal(ctx, symbol, f.Name(), horizonDays)
	})
	if err != nil {
		return models.PriceSignal{}, err
	}
	a.recordCache("price", cached)
	return sig, nil
}

// computePriceSignal fetches history and runs the forecaster, uncached.
func (a *Advisor) computePriceSignal(ctx context.Context, symbol, modelType string, horizonDays int) (models.PriceSignal, error) {
	start := a.now()

	f, err := a.registry.Get(modelType)
	if err != nil {
		return models.PriceSignal{}, err
	}

	series, err := a.market.History(ctx, symbol, a.cfg.HistoryPeriod)
	if err != nil {
		a.recordProviderError("market")
		return models.PriceSignal{}, err
	}

	sig, err := f.Forecast(series, horizonDays)
	if err != nil {
		return models.PriceSignal{}, err
	}

	if a.metrics != nil {
		a.metrics.RecordComputeLatency("price", a.now().Sub(start).Seconds())
	}
	return sig, nil
}

// SentimentSignal returns the cached or freshly computed sentiment for the
// symbol. force bypasses the freshness window.
func (a *Advisor) SentimentSignal(ctx context.Context, symbol string, force bool) (models.SentimentSignal, error) {
	window := a.cfg.FreshnessWindow
	if force {
		window = 0
	}

	sig, cached, err := a.sentiments.GetOrCompute(ctx, symbol, window, func(ctx context.Context) (models.SentimentSignal, error) {
		return a.computeSentimentSignal(ctx, symbol)
	})
	if err != nil {
		return models.SentimentSignal{}, err
	}
	a.recordCache("sentiment", cached)
	return sig, nil
}

// computeSentimentSignal fetches news and scores it, uncached. A symbol with
// no coverage scores neutral rather than failing.
func (a *Advisor) computeSentimentSignal(ctx context.Context, symbol string) (models.SentimentSignal, error) {
	start := a.now()

	to := a.now()
	from := to.AddDate(0, 0, -a.cfg.NewsLookbackDays)
	items, err := a.news.CompanyNews(ctx, symbol, from, to)
	if err != nil {
		a.recordProviderError("news")
		return models.SentimentSignal{}, err
	}

	sig := a.scorer.Score(symbol, items)
	if a.metrics != nil {
		a.metrics.RecordComputeLatency("sentiment", a.now().Sub(start).Seconds())
	}
	return sig, nil
}

// Predict returns the fused advisory payload for one symbol.
func (a *Advisor) Predict(ctx context.Context, req models.PredictRequest) (models.Prediction, error) {
	if !a.universe.Has(req.Symbol) {
		return models.Prediction{}, fmt.Errorf("%w: %s", models.ErrUnknownSymbol, req.Symbol)
	}

	price, err := a.PriceSignal(ctx, req.Symbol, req.ModelType, req.TimeHorizon)
	if err != nil {
		return models.Prediction{}, err
	}

	sent, err := a.SentimentSignal(ctx, req.Symbol, false)
	if err != nil {
		return models.Prediction{}, err
	}

	return a.fusePrediction(price, sent), nil
}

// fusePrediction assembles the fused payload from the two signals.
func (a *Advisor) fusePrediction(price models.PriceSignal, sent models.SentimentSignal) models.Prediction {
	priceRec := price.Recommendation(a.cfg.PriceBuyThreshold, a.cfg.PriceSellThreshold)
	sentRec := sent.Recommendation()

	return models.Prediction{
		PriceSignal:      price,
		Company:          a.universe.Name(price.Symbol),
		PriceRec:         priceRec,
		SentimentRec:     sentRec,
		Sentiment:        sent.Score,
		SentimentExplain: sent.Explanation,
		ArticlesAnalyzed: sent.ArticlesAnalyzed,
		TopHeadlines:     sent.TopHeadlines,
		FinalRec:         Fuse(priceRec, sentRec),
		PredictionDate:   a.now(),
	}
}

// ForecastItem is one slot of a batch forecast. Exactly one of Forecast and
// Error is set.
type ForecastItem struct {
	Symbol   string              `json:"symbol"`
	Forecast *models.PriceSignal `json:"forecast,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// ForecastBatch forecasts each requested symbol, isolating failures per slot.
func (a *Advisor) ForecastBatch(ctx context.Context, req models.ForecastRequest) []ForecastItem {
	out := make([]ForecastItem, 0, len(req.Symbols))
	for _, symbol := range req.Symbols {
		item := ForecastItem{Symbol: symbol}
		switch {
		case !a.universe.Has(symbol):
			item.Error = models.ErrUnknownSymbol.Error()
		default:
			sig, err := a.PriceSignal(ctx, symbol, req.ModelType, req.TimeHorizon)
			if err != nil {
				a.log.Warn("batch forecast failed",
					logger.String("symbol", symbol),
					logger.Error(err),
				)
				item.Error = err.Error()
			} else {
				item.Forecast = &sig
			}
		}
		out = append(out, item)
	}
	return out
}

// SentimentOverview scores the whole universe and buckets symbols by their
// sentiment recommendation. Failing symbols are logged and skipped; the
// overview never fails as a whole.
func (a *Advisor) SentimentOverview(ctx context.Context, force bool) models.SentimentBuckets {
	var buckets models.SentimentBuckets
	for _, symbol := range a.universe.Symbols() {
		sig, err := a.SentimentSignal(ctx, symbol, force)
		if err != nil {
			a.log.Warn("sentiment overview: symbol skipped",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			continue
		}

		summary := a.summaryFor(symbol, sig)
		switch sig.Recommendation() {
		case models.Buy:
			buckets.Buy = append(buckets.Buy, summary)
		case models.Sell:
			buckets.Sell = append(buckets.Sell, summary)
		default:
			buckets.Hold = append(buckets.Hold, summary)
		}
	}

	sortBuckets(&buckets)
	return buckets
}

// SentimentItem is one slot of a per-symbol sentiment response.
type SentimentItem struct {
	Symbol  string                   `json:"symbol"`
	Summary *models.SentimentSummary `json:"summary,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// SentimentFor scores the requested symbols, isolating failures per slot.
func (a *Advisor) SentimentFor(ctx context.Context, req models.SentimentForRequest) []SentimentItem {
	out := make([]SentimentItem, 0, len(req.Symbols))
	for _, symbol := range req.Symbols {
		item := SentimentItem{Symbol: symbol}
		switch {
		case !a.universe.Has(symbol):
			item.Error = models.ErrUnknownSymbol.Error()
		default:
			sig, err := a.SentimentSignal(ctx, symbol, req.ForceRefresh)
			if err != nil {
				item.Error = err.Error()
			} else {
				summary := a.summaryFor(symbol, sig)
				item.Summary = &summary
			}
		}
		out = append(out, item)
	}
	return out
}

// summaryFor builds the listing row for a scored symbol. AnalysisDate is the
// cache entry's computation time when available.
func (a *Advisor) summaryFor(symbol string, sig models.SentimentSignal) models.SentimentSummary {
	analysisDate := a.now()
	if e, ok := a.sentiments.Peek(symbol); ok {
		analysisDate = e.ComputedAt
	}

	return models.SentimentSummary{
		Symbol:           symbol,
		Company:          a.universe.Name(symbol),
		Sentiment:        sig.Score,
		Explanation:      sig.Explanation,
		Recommendation:   sig.Recommendation(),
		ArticlesAnalyzed: sig.ArticlesAnalyzed,
		TopHeadlines:     sig.TopHeadlines,
		AnalysisDate:     analysisDate,
	}
}

// RecommendationEntry is one fused row of the /recommendations listing.
type RecommendationEntry struct {
	Symbol       string                `json:"symbol"`
	Company      string                `json:"company"`
	FinalRec     models.Recommendation `json:"final_recommendation"`
	PriceChange  float64               `json:"price_change"`
	Confidence   float64               `json:"confidence"`
	Sentiment    float64               `json:"sentiment"`
	Explanation  models.Explanation    `json:"sentiment_explanation"`
	TopHeadlines []models.Headline     `json:"top_headlines"`
}

// RecommendationBuckets is the tri-list shape of /recommendations.
type RecommendationBuckets struct {
	Buy  []RecommendationEntry `json:"buy"`
	Sell []RecommendationEntry `json:"sell"`
	Hold []RecommendationEntry `json:"hold"`
}

// Recommendations fuses price and sentiment across the universe, keeping
// symbols whose sentiment magnitude clears minConfidence. A failed forecast
// degrades the row to sentiment alone rather than dropping it. Headlines are
// truncated to the top three per row.
func (a *Advisor) Recommendations(ctx context.Context, minConfidence float64) RecommendationBuckets {
	var buckets RecommendationBuckets
	for _, symbol := range a.universe.Symbols() {
		sent, err := a.SentimentSignal(ctx, symbol, false)
		if err != nil {
			a.log.Warn("recommendations: symbol skipped",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			continue
		}
		if math.Abs(sent.Score) < minConfidence {
			continue
		}

		sentRec := sent.Recommendation()
		finalRec := sentRec
		var priceChange, confidence float64
		price, err := a.PriceSignal(ctx, symbol, forecast.DefaultModel, a.cfg.DefaultHorizonDays)
		if err != nil {
			a.log.Warn("recommendations: forecast unavailable",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
		} else {
			priceChange = price.ChangePercent
			confidence = price.Confidence
			finalRec = Fuse(price.Recommendation(a.cfg.PriceBuyThreshold, a.cfg.PriceSellThreshold), sentRec)
		}

		headlines := sent.TopHeadlines
		if len(headlines) > 3 {
			headlines = headlines[:3]
		}
		entry := RecommendationEntry{
			Symbol:       symbol,
			Company:      a.universe.Name(symbol),
			FinalRec:     finalRec,
			PriceChange:  priceChange,
			Confidence:   confidence,
			Sentiment:    sent.Score,
			Explanation:  sent.Explanation,
			TopHeadlines: headlines,
		}

		switch finalRec {
		case models.Buy:
			buckets.Buy = append(buckets.Buy, entry)
		case models.Sell:
			buckets.Sell = append(buckets.Sell, entry)
		default:
			buckets.Hold = append(buckets.Hold, entry)
		}
	}

	sort.SliceStable(buckets.Buy, func(i, j int) bool {
		return buckets.Buy[i].Sentiment > buckets.Buy[j].Sentiment
	})
	sort.SliceStable(buckets.Sell, func(i, j int) bool {
		return buckets.Sell[i].Sentiment < buckets.Sell[j].Sentiment
	})
	sort.SliceStable(buckets.Hold, func(i, j int) bool {
		return math.Abs(buckets.Hold[i].Sentiment) < math.Abs(buckets.Hold[j].Sentiment)
	})
	return buckets
}

// sortBuckets orders the tri-list: strongest buys first, worst sells first,
// holds closest to neutral first.
func sortBuckets(b *models.SentimentBuckets) {
	sort.SliceStable(b.Buy, func(i, j int) bool {
		return b.Buy[i].Sentiment > b.Buy[j].Sentiment
	})
	sort.SliceStable(b.Sell, func(i, j int) bool {
		return b.Sell[i].Sentiment < b.Sell[j].Sentiment
	})
	sort.SliceStable(b.Hold, func(i, j int) bool {
		return math.Abs(b.Hold[i].Sentiment) < math.Abs(b.Hold[j].Sentiment)
	})
}

func (a *Advisor) recordCache(kind string, hit bool) {
	if a.metrics == nil {
		return
	}
	if hit {
		a.metrics.RecordCacheHit(kind)
	} else {
		a.metrics.RecordCacheMiss(kind)
	}
}

func (a *Advisor) recordProviderError(provider string) {
	if a.metrics != nil {
		a.metrics.RecordProviderError(provider)
	}
}

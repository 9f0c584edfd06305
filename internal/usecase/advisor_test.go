package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/forecast"
	"StockPulse/internal/sentiment"
	sigcache "StockPulse/internal/service/cache"
	"StockPulse/internal/universe"
	"StockPulse/pkg/logger"
)

type fakeMarket struct {
	mu     sync.Mutex
	series map[string]models.PriceSeries
	errs   map[string]error
	calls  int
}

func (m *fakeMarket) History(_ context.Context, symbol string, _ time.Duration) (models.PriceSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.errs[symbol]; err != nil {
		return models.PriceSeries{}, err
	}
	s, ok := m.series[symbol]
	if !ok {
		return models.PriceSeries{}, models.ErrDataUnavailable
	}
	return s, nil
}

type fakeNews struct {
	mu    sync.Mutex
	items map[string][]models.NewsItem
	errs  map[string]error
	calls int
}

func (n *fakeNews) CompanyNews(_ context.Context, symbol string, _, _ time.Time) ([]models.NewsItem, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if err := n.errs[symbol]; err != nil {
		return nil, err
	}
	return n.items[symbol], nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// trendSeries builds n daily closes starting at start and moving by slope per
// bar. A perfect line keeps the forecaster's holdout error at zero.
func trendSeries(symbol string, n int, start, slope float64) models.PriceSeries {
	s := models.PriceSeries{Symbol: symbol}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		close := start + slope*float64(i)
		s.Candles = append(s.Candles, models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      close,
			High:      close,
			Low:       close,
			Close:     close,
			Volume:    1000,
		})
	}
	return s
}

func testAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		FreshnessWindow:    time.Hour,
		HistoryPeriod:      30 * 24 * time.Hour,
		NewsLookbackDays:   30,
		DefaultHorizonDays: 7,
		PriceBuyThreshold:  3,
		PriceSellThreshold: -3,
	}
}

func newTestAdvisor(t *testing.T, market *fakeMarket, news *fakeNews, uni *universe.Registry) *Advisor {
	t.Helper()
	return NewAdvisor(
		testAdvisorConfig(),
		forecast.DefaultRegistry(),
		sentiment.NewScorer(sentiment.NewLexicon()),
		market,
		news,
		uni,
		sigcache.NewStore[models.PriceSignal](),
		sigcache.NewStore[models.SentimentSignal](),
		nil,
		testLogger(t),
	)
}

func TestPredictUnknownSymbol(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	a := newTestAdvisor(t, &fakeMarket{}, &fakeNews{}, uni)

	_, err := a.Predict(context.Background(), models.PredictRequest{Symbol: "ZZZ.IS"})
	if !errors.Is(err, models.ErrUnknownSymbol) {
		t.Fatalf("want ErrUnknownSymbol, got %v", err)
	}
}

func TestPredictRisingSeries(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	a := newTestAdvisor(t, market, &fakeNews{}, uni)

	pred, err := a.Predict(context.Background(), models.PredictRequest{
		Symbol:      "AAA.IS",
		TimeHorizon: 7,
		ModelType:   forecast.DefaultModel,
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if pred.Company != "Alpha" {
		t.Fatalf("company = %q, want Alpha", pred.Company)
	}
	if pred.PriceRec != models.Buy {
		t.Fatalf("price rec = %s, want BUY on a rising series", pred.PriceRec)
	}
	if pred.SentimentRec != models.Hold {
		t.Fatalf("sentiment rec = %s, want HOLD with no news", pred.SentimentRec)
	}
	if pred.FinalRec != models.Buy {
		t.Fatalf("final rec = %s, want BUY", pred.FinalRec)
	}
	if pred.ChangePercent <= 3 {
		t.Fatalf("change = %v, want > buy threshold", pred.ChangePercent)
	}
}

func TestPredictCachesSignals(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	news := &fakeNews{}
	a := newTestAdvisor(t, market, news, uni)

	req := models.PredictRequest{Symbol: "AAA.IS", TimeHorizon: 7, ModelType: forecast.DefaultModel}
	for i := 0; i < 3; i++ {
		if _, err := a.Predict(context.Background(), req); err != nil {
			t.Fatalf("predict %d: %v", i, err)
		}
	}

	if market.calls != 1 {
		t.Fatalf("market fetched %d times, want 1", market.calls)
	}
	if news.calls != 1 {
		t.Fatalf("news fetched %d times, want 1", news.calls)
	}
}

func TestUnknownModelSharesDefaultEntry(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	a := newTestAdvisor(t, market, &fakeNews{}, uni)

	sig, err := a.PriceSignal(context.Background(), "AAA.IS", "no_such_model", 7)
	if err != nil {
		t.Fatalf("price signal: %v", err)
	}
	if sig.ModelType != forecast.DefaultModel {
		t.Fatalf("model = %q, want default", sig.ModelType)
	}

	// The default model id must hit the same cache entry.
	if _, err := a.PriceSignal(context.Background(), "AAA.IS", forecast.DefaultModel, 7); err != nil {
		t.Fatalf("price signal: %v", err)
	}
	if market.calls != 1 {
		t.Fatalf("market fetched %d times, want 1", market.calls)
	}
}

func TestForecastBatchIsolatesFailures(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha", "BBB.IS": "Beta"})
	market := &fakeMarket{
		series: map[string]models.PriceSeries{
			"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
		},
		errs: map[string]error{
			"BBB.IS": models.ErrDataUnavailable,
		},
	}
	a := newTestAdvisor(t, market, &fakeNews{}, uni)

	items := a.ForecastBatch(context.Background(), models.ForecastRequest{
		Symbols:     []string{"AAA.IS", "BBB.IS", "ZZZ.IS"},
		TimeHorizon: 7,
		ModelType:   forecast.DefaultModel,
	})

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Forecast == nil || items[0].Error != "" {
		t.Fatalf("healthy symbol must carry a forecast, got %+v", items[0])
	}
	if items[1].Forecast != nil || items[1].Error == "" {
		t.Fatalf("failing symbol must carry an error, got %+v", items[1])
	}
	if items[2].Error != models.ErrUnknownSymbol.Error() {
		t.Fatalf("unknown symbol error = %q", items[2].Error)
	}
}

func TestSentimentOverviewBuckets(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha", "BBB.IS": "Beta", "CCC.IS": "Gamma"})
	news := &fakeNews{
		items: map[string][]models.NewsItem{
			"AAA.IS": {{Headline: "Profit soars to record high", PublishedAt: time.Now()}},
			"BBB.IS": {{Headline: "Shares plunge after weak results", PublishedAt: time.Now()}},
		},
		errs: map[string]error{
			"CCC.IS": errors.New("provider down"),
		},
	}
	a := newTestAdvisor(t, &fakeMarket{}, news, uni)

	buckets := a.SentimentOverview(context.Background(), false)

	if len(buckets.Buy) != 1 || buckets.Buy[0].Symbol != "AAA.IS" {
		t.Fatalf("buy bucket = %+v", buckets.Buy)
	}
	if len(buckets.Sell) != 1 || buckets.Sell[0].Symbol != "BBB.IS" {
		t.Fatalf("sell bucket = %+v", buckets.Sell)
	}
	if len(buckets.Hold) != 0 {
		t.Fatalf("failing symbol must be skipped, hold = %+v", buckets.Hold)
	}
	if buckets.Buy[0].Company != "Alpha" {
		t.Fatalf("company = %q", buckets.Buy[0].Company)
	}
}

func TestSentimentForIsolatesFailures(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	news := &fakeNews{items: map[string][]models.NewsItem{
		"AAA.IS": {{Headline: "Record quarter", PublishedAt: time.Now()}},
	}}
	a := newTestAdvisor(t, &fakeMarket{}, news, uni)

	items := a.SentimentFor(context.Background(), models.SentimentForRequest{
		Symbols: []string{"AAA.IS", "ZZZ.IS"},
	})

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Summary == nil {
		t.Fatalf("known symbol must carry a summary")
	}
	if items[1].Error != models.ErrUnknownSymbol.Error() {
		t.Fatalf("unknown symbol error = %q", items[1].Error)
	}
}

func TestRecommendationsFilterOnSentimentMagnitude(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	a := newTestAdvisor(t, market, &fakeNews{}, uni)

	// No news scores 0.0; a strong forecast must not smuggle the symbol past
	// the sentiment bar.
	buckets := a.Recommendations(context.Background(), 0.2)
	if len(buckets.Buy)+len(buckets.Sell)+len(buckets.Hold) != 0 {
		t.Fatalf("neutral sentiment must be filtered, got %+v", buckets)
	}

	// With the bar at zero the rising series carries the row into buy.
	buckets = a.Recommendations(context.Background(), 0)
	if len(buckets.Buy) != 1 {
		t.Fatalf("buy bucket = %+v", buckets.Buy)
	}
}

func TestRecommendationsKeepStrongSentiment(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	news := &fakeNews{items: map[string][]models.NewsItem{
		"AAA.IS": {{Headline: "Profit soars to record high", PublishedAt: time.Now()}},
	}}
	a := newTestAdvisor(t, market, news, uni)

	buckets := a.Recommendations(context.Background(), 0.2)
	if len(buckets.Buy) != 1 {
		t.Fatalf("buy bucket = %+v", buckets.Buy)
	}
	if buckets.Buy[0].Sentiment < 0.2 {
		t.Fatalf("kept row must clear the bar, sentiment = %v", buckets.Buy[0].Sentiment)
	}
}

func TestRecommendationsSurviveForecastOutage(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{errs: map[string]error{
		"AAA.IS": models.ErrDataUnavailable,
	}}
	news := &fakeNews{items: map[string][]models.NewsItem{
		"AAA.IS": {{Headline: "Profit soars to record high", PublishedAt: time.Now()}},
	}}
	a := newTestAdvisor(t, market, news, uni)

	buckets := a.Recommendations(context.Background(), 0.2)
	if len(buckets.Buy) != 1 {
		t.Fatalf("sentiment alone must carry the row, got %+v", buckets)
	}
	entry := buckets.Buy[0]
	if entry.FinalRec != models.Buy {
		t.Fatalf("final rec = %s, want BUY from sentiment", entry.FinalRec)
	}
	if entry.PriceChange != 0 || entry.Confidence != 0 {
		t.Fatalf("forecast fields must be zero without a forecast, got %+v", entry)
	}
}

func TestRecommendationsTruncatesHeadlines(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	var items []models.NewsItem
	for i := 0; i < 6; i++ {
		items = append(items, models.NewsItem{Headline: "Quarterly update", PublishedAt: time.Now()})
	}
	news := &fakeNews{items: map[string][]models.NewsItem{"AAA.IS": items}}
	a := newTestAdvisor(t, market, news, uni)

	buckets := a.Recommendations(context.Background(), 0)
	all := append(append(buckets.Buy, buckets.Sell...), buckets.Hold...)
	if len(all) != 1 {
		t.Fatalf("got %d entries, want 1", len(all))
	}
	if len(all[0].TopHeadlines) > 3 {
		t.Fatalf("headlines = %d, want at most 3", len(all[0].TopHeadlines))
	}
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/forecast"
	"StockPulse/internal/handler/ws"
	"StockPulse/internal/sentiment"
	sigcache "StockPulse/internal/service/cache"
	"StockPulse/internal/universe"
	"StockPulse/internal/usecase"
	xlogger "StockPulse/pkg/logger"
)

type stubMarket struct {
	series models.PriceSeries
	err    error
}

func (m stubMarket) History(context.Context, string, time.Duration) (models.PriceSeries, error) {
	return m.series, m.err
}

type stubNews struct{}

func (stubNews) CompanyNews(context.Context, string, time.Time, time.Time) ([]models.NewsItem, error) {
	return nil, nil
}

func flatSeries(symbol string, n int) models.PriceSeries {
	s := models.PriceSeries{Symbol: symbol}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.Candles = append(s.Candles, models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Close:     100,
			Volume:    1,
		})
	}
	return s
}

func newTestServer(t *testing.T, opts ...HandlerOption) *echo.Echo {
	t.Helper()

	l, err := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	advisor := usecase.NewAdvisor(
		usecase.AdvisorConfig{
			FreshnessWindow:    time.Hour,
			HistoryPeriod:      30 * 24 * time.Hour,
			NewsLookbackDays:   30,
			DefaultHorizonDays: 7,
			PriceBuyThreshold:  3,
			PriceSellThreshold: -3,
		},
		forecast.DefaultRegistry(),
		sentiment.NewScorer(sentiment.NewLexicon()),
		stubMarket{series: flatSeries("AAA.IS", 100)},
		stubNews{},
		universe.New(map[string]string{"AAA.IS": "Alpha"}),
		sigcache.NewStore[models.PriceSignal](),
		sigcache.NewStore[models.SentimentSignal](),
		nil,
		l,
	)

	h := NewAdvisorHandler(l, advisor, ws.NewHandler(ws.NewHub(nil, nil), l), opts...)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) envelope {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: http status %d", method, target, rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/healthz", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
}

func TestModelsListsStrategies(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/models", "")

	var ids []string
	if err := json.Unmarshal(env.Data, &ids); err != nil {
		t.Fatalf("decode models: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == forecast.DefaultModel {
			found = true
		}
	}
	if !found {
		t.Fatalf("default model missing from %v", ids)
	}
}

func TestInstruments(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/instruments", "")

	var table map[string]string
	if err := json.Unmarshal(env.Data, &table); err != nil {
		t.Fatalf("decode instruments: %v", err)
	}
	if table["AAA.IS"] != "Alpha" {
		t.Fatalf("table = %v", table)
	}
}

func TestPredictSuccess(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodPost, "/predict", `{"symbol":"AAA.IS"}`)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}

	var pred models.Prediction
	if err := json.Unmarshal(env.Data, &pred); err != nil {
		t.Fatalf("decode prediction: %v", err)
	}
	if pred.Symbol != "AAA.IS" || pred.Company != "Alpha" {
		t.Fatalf("prediction = %+v", pred)
	}
	if pred.FinalRec != models.Hold {
		t.Fatalf("flat series must yield HOLD, got %s", pred.FinalRec)
	}
}

func TestPredictUnknownSymbol(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodPost, "/predict", `{"symbol":"ZZZ.IS"}`)
	if env.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", env.Status)
	}
}

func TestPredictMissingSymbol(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodPost, "/predict", `{}`)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

type stubHistory struct {
	events     []models.TransitionEvent
	lastSymbol string
	lastLimit  int
}

func (h *stubHistory) RecordTransition(context.Context, models.TransitionEvent) error { return nil }

func (h *stubHistory) Recent(_ context.Context, symbol string, limit int) ([]models.TransitionEvent, error) {
	h.lastSymbol = symbol
	h.lastLimit = limit
	return h.events, nil
}

func (h *stubHistory) Close() error { return nil }

func TestTransitionsWithoutHistory(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/transitions", "")
	if env.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 without a history backend", env.Status)
	}
}

func TestTransitionsListsRecent(t *testing.T) {
	hist := &stubHistory{events: []models.TransitionEvent{
		{Type: "recommendation_change", Symbol: "AAA.IS", OldRec: models.Hold, NewRec: models.Buy},
	}}
	e := newTestServer(t, WithHistory(hist))

	env := doRequest(t, e, http.MethodGet, "/transitions?symbol=AAA.IS&limit=5", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
	if hist.lastSymbol != "AAA.IS" || hist.lastLimit != 5 {
		t.Fatalf("query not forwarded: symbol=%q limit=%d", hist.lastSymbol, hist.lastLimit)
	}

	var list struct {
		Rows  []models.TransitionEvent `json:"rows"`
		Total int64                    `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Rows) != 1 || list.Rows[0].NewRec != models.Buy {
		t.Fatalf("list = %+v", list)
	}
}

func TestRecommendationsShape(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/recommendations?min_confidence=0", "")

	var buckets usecase.RecommendationBuckets
	if err := json.Unmarshal(env.Data, &buckets); err != nil {
		t.Fatalf("decode buckets: %v", err)
	}
	if len(buckets.Hold) != 1 {
		t.Fatalf("flat series belongs in hold, got %+v", buckets)
	}
}

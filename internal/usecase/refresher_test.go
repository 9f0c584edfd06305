package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/universe"
)

type captureBroadcaster struct {
	mu     sync.Mutex
	events []models.TransitionEvent
}

func (b *captureBroadcaster) Broadcast(_ string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ev, ok := payload.(models.TransitionEvent); ok {
		b.events = append(b.events, ev)
	}
}

func (b *captureBroadcaster) all() []models.TransitionEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.TransitionEvent(nil), b.events...)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []models.TransitionEvent
	closed bool
}

func (p *capturePublisher) PublishTransition(_ context.Context, ev models.TransitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func newTestRefresher(t *testing.T, market *fakeMarket, news *fakeNews, uni *universe.Registry, opts ...RefresherOption) (*Refresher, *captureBroadcaster) {
	t.Helper()
	a := newTestAdvisor(t, market, news, uni)
	hub := &captureBroadcaster{}
	r := NewRefresher(a, hub, nil, testLogger(t), time.Hour, opts...)
	return r, hub
}

func TestRunOnceRefreshesUniverse(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha", "BBB.IS": "Beta"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
		"BBB.IS": trendSeries("BBB.IS", 100, 100, 0),
	}}
	r, hub := newTestRefresher(t, market, &fakeNews{}, uni)

	if got := r.RunOnce(context.Background()); got != 2 {
		t.Fatalf("refreshed %d symbols, want 2", got)
	}
	if len(hub.all()) != 0 {
		t.Fatalf("first run must emit no transitions, got %d", len(hub.all()))
	}
	if r.advisor.prices.Len() != 2 || r.advisor.sentiments.Len() != 2 {
		t.Fatalf("caches not populated: prices=%d sentiments=%d",
			r.advisor.prices.Len(), r.advisor.sentiments.Len())
	}
}

func TestRunOnceEmitsTransitionOnFlip(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	pub := &capturePublisher{}
	r, hub := newTestRefresher(t, market, &fakeNews{}, uni, WithPublisher(pub))

	r.RunOnce(context.Background())

	// Flip the trend so the fused recommendation changes from BUY to SELL.
	market.mu.Lock()
	market.series["AAA.IS"] = trendSeries("AAA.IS", 100, 300, -1)
	market.mu.Unlock()

	r.RunOnce(context.Background())

	events := hub.all()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != "recommendation_change" {
		t.Fatalf("event type = %q", ev.Type)
	}
	if ev.Symbol != "AAA.IS" || ev.Company != "Alpha" {
		t.Fatalf("event identity = %s/%s", ev.Symbol, ev.Company)
	}
	if ev.OldRec != models.Buy || ev.NewRec != models.Sell {
		t.Fatalf("transition %s -> %s, want BUY -> SELL", ev.OldRec, ev.NewRec)
	}

	pub.mu.Lock()
	published := len(pub.events)
	pub.mu.Unlock()
	if published != 1 {
		t.Fatalf("published %d events, want 1", published)
	}
}

func TestRunOnceNoEventWhenUnchanged(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 200, 1),
	}}
	r, hub := newTestRefresher(t, market, &fakeNews{}, uni)

	r.RunOnce(context.Background())
	r.RunOnce(context.Background())

	if len(hub.all()) != 0 {
		t.Fatalf("unchanged recommendation must not emit, got %d events", len(hub.all()))
	}
}

func TestRunOnceSkipsWhileRunning(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha"})
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
	}}
	r, _ := newTestRefresher(t, market, &fakeNews{}, uni)

	r.running.Store(true)
	if got := r.RunOnce(context.Background()); got != 0 {
		t.Fatalf("overlapping run refreshed %d symbols, want 0", got)
	}
	r.running.Store(false)

	if got := r.RunOnce(context.Background()); got != 1 {
		t.Fatalf("refreshed %d symbols after release, want 1", got)
	}
}

func TestRunOnceIsolatesSymbolFailures(t *testing.T) {
	uni := universe.New(map[string]string{"AAA.IS": "Alpha", "BBB.IS": "Beta"})
	market := &fakeMarket{
		series: map[string]models.PriceSeries{
			"AAA.IS": trendSeries("AAA.IS", 100, 100, 1),
		},
		errs: map[string]error{
			"BBB.IS": models.ErrDataUnavailable,
		},
	}
	r, _ := newTestRefresher(t, market, &fakeNews{}, uni)

	// Seed the failing symbol with a prior forecast; the failed refresh must
	// leave it untouched.
	staleKey := priceKey("BBB.IS", "linear_regression", 7)
	r.advisor.prices.Put(staleKey, models.PriceSignal{Symbol: "BBB.IS", Predicted: 42})
	before, ok := r.advisor.prices.Peek(staleKey)
	if !ok {
		t.Fatalf("seed entry missing")
	}

	if got := r.RunOnce(context.Background()); got != 1 {
		t.Fatalf("refreshed %d symbols, want 1", got)
	}
	if _, ok := r.advisor.prices.Peek(priceKey("AAA.IS", "linear_regression", 7)); !ok {
		t.Fatalf("healthy symbol must still be cached")
	}

	after, ok := r.advisor.prices.Peek(staleKey)
	if !ok {
		t.Fatalf("failed refresh must not evict the prior entry")
	}
	if after.Value.Predicted != before.Value.Predicted || !after.ComputedAt.Equal(before.ComputedAt) {
		t.Fatalf("prior entry changed: before=%+v after=%+v", before, after)
	}
}

package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/forecast"
	"StockPulse/pkg/logger"
)

// Broadcaster delivers a transition event to interested stream subscribers.
type Broadcaster interface {
	Broadcast(symbol string, payload interface{})
}

// RefresherOption configures the Refresher.
type RefresherOption func(*Refresher)

// WithPublisher attaches an event-bus publisher for transitions.
func WithPublisher(p drepo.Publisher) RefresherOption {
	return func(r *Refresher) { r.publisher = p }
}

// WithHistory attaches a transition history recorder.
func WithHistory(h drepo.History) RefresherOption {
	return func(r *Refresher) { r.history = h }
}

// Refresher walks the universe on a schedule, recomputes both signals per
// symbol, and emits a transition event whenever the fused recommendation
// flips. One run at a time; overlapping triggers are skipped.
type Refresher struct {
	advisor   *Advisor
	hub       Broadcaster
	publisher drepo.Publisher
	history   drepo.History
	metrics   drepo.Metrics
	log       *logger.Logger
	interval  time.Duration
	cron      *cron.Cron
	running   atomic.Bool
	now       func() time.Time
}

// NewRefresher builds the background refresher.
func NewRefresher(advisor *Advisor, hub Broadcaster, metrics drepo.Metrics, log *logger.Logger, interval time.Duration, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		advisor:  advisor,
		hub:      hub,
		metrics:  metrics,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start schedules periodic runs and kicks off an immediate warm-up run.
func (r *Refresher) Start() error {
	c := cron.New()
	_, err := c.AddFunc("@every "+r.interval.String(), func() {
		r.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}
	r.cron = c
	c.Start()

	go r.RunOnce(context.Background())
	return nil
}

// Stop halts the schedule. A run already in flight finishes on its own.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// RunOnce refreshes every symbol in the universe. Per-symbol failures are
// logged and do not stop the walk. Returns the number of symbols refreshed.
func (r *Refresher) RunOnce(ctx context.Context) int {
	if !r.running.CompareAndSwap(false, true) {
		r.log.Warn("refresh already running, skipping trigger")
		r.recordRun("skipped")
		return 0
	}
	defer r.running.Store(false)

	start := r.now()
	refreshed := 0
	failed := 0

	for _, symbol := range r.advisor.universe.Symbols() {
		if err := ctx.Err(); err != nil {
			r.log.Warn("refresh aborted", logger.Error(err))
			break
		}
		if r.refreshSymbol(ctx, symbol) {
			refreshed++
		} else {
			failed++
		}
	}

	outcome := "ok"
	if failed > 0 {
		outcome = "partial"
	}
	r.recordRun(outcome)
	r.log.Info("refresh run finished",
		logger.Int("refreshed", refreshed),
		logger.Int("failed", failed),
		logger.Duration("duration_ms", r.now().Sub(start)),
	)
	return refreshed
}

// refreshSymbol recomputes both signals for one symbol, stores them, and
// emits a transition when the fused recommendation changed. Reports whether
// both signals refreshed.
func (r *Refresher) refreshSymbol(ctx context.Context, symbol string) bool {
	horizon := r.advisor.cfg.DefaultHorizonDays
	key := priceKey(symbol, forecast.DefaultModel, horizon)

	prevRec, hadPrev := r.previousFinal(symbol, key)

	ok := true

	price, priceErr := r.advisor.computePriceSignal(ctx, symbol, forecast.DefaultModel, horizon)
	if priceErr != nil {
		r.log.Warn("refresh: price signal failed",
			logger.String("symbol", symbol),
			logger.Error(priceErr),
		)
		ok = false
	} else {
		r.advisor.prices.Put(key, price)
	}

	sent, sentErr := r.advisor.computeSentimentSignal(ctx, symbol)
	if sentErr != nil {
		r.log.Warn("refresh: sentiment signal failed",
			logger.String("symbol", symbol),
			logger.Error(sentErr),
		)
		ok = false
	} else {
		r.advisor.sentiments.Put(symbol, sent)
	}

	if !ok || !hadPrev {
		return ok
	}

	newRec := r.fused(price, sent)
	if newRec == prevRec {
		return true
	}

	ev := models.TransitionEvent{
		Type:      "recommendation_change",
		Symbol:    symbol,
		Company:   r.advisor.universe.Name(symbol),
		OldRec:    prevRec,
		NewRec:    newRec,
		Sentiment: sent.Score,
		Timestamp: r.now(),
	}
	r.emit(ctx, ev)
	return true
}

// previousFinal reads the fused recommendation from the cached signals, when
// both exist.
func (r *Refresher) previousFinal(symbol, key string) (models.Recommendation, bool) {
	pe, pok := r.advisor.prices.Peek(key)
	se, sok := r.advisor.sentiments.Peek(symbol)
	if !pok || !sok {
		return "", false
	}
	return r.fused(pe.Value, se.Value), true
}

func (r *Refresher) fused(price models.PriceSignal, sent models.SentimentSignal) models.Recommendation {
	priceRec := price.Recommendation(r.advisor.cfg.PriceBuyThreshold, r.advisor.cfg.PriceSellThreshold)
	return Fuse(priceRec, sent.Recommendation())
}

// emit fans a transition out to the hub, the event bus, and the history
// recorder. Sink failures are logged, never propagated.
func (r *Refresher) emit(ctx context.Context, ev models.TransitionEvent) {
	r.log.Info("recommendation changed",
		logger.String("symbol", ev.Symbol),
		logger.String("old", string(ev.OldRec)),
		logger.String("new", string(ev.NewRec)),
	)
	if r.metrics != nil {
		r.metrics.RecordTransition(ev.Symbol)
	}

	if r.hub != nil {
		r.hub.Broadcast(ev.Symbol, ev)
	}
	if r.publisher != nil {
		if err := r.publisher.PublishTransition(ctx, ev); err != nil {
			r.log.Error("transition publish failed",
				logger.String("symbol", ev.Symbol),
				logger.Error(err),
			)
		}
	}
	if r.history != nil {
		if err := r.history.RecordTransition(ctx, ev); err != nil {
			r.log.Error("transition record failed",
				logger.String("symbol", ev.Symbol),
				logger.Error(err),
			)
		}
	}
}

func (r *Refresher) recordRun(outcome string) {
	if r.metrics != nil {
		r.metrics.RecordRefreshRun(outcome)
	}
}

package forecast

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
)

const (
	// DefaultModel is used when a request names no model or an unknown one.
	DefaultModel = "linear_regression"

	// historyTailPoints is how much of the series is echoed back for charts.
	historyTailPoints = 90

	// holdoutPoints is the walk-forward window used to estimate
	// out-of-sample error for the confidence measure.
	holdoutPoints = 30
)

// Registry maps model-type ids to forecaster strategies. Safe for concurrent
// use. New strategies register without touching any caller.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]domsvc.Forecaster
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]domsvc.Forecaster)}
}

// DefaultRegistry returns a registry with all built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewLinearRegression())
	r.Register(NewKNN(5))
	r.Register(NewMovingAverage(50))
	r.Register(NewHolt(0.5, 0.3))
	return r
}

// Register adds a strategy under its own name, replacing any previous one.
func (r *Registry) Register(f domsvc.Forecaster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[f.Name()] = f
}

// Get returns the strategy for the model type, falling back to DefaultModel
// for unknown ids. It errors only when the default itself is missing.
func (r *Registry) Get(modelType string) (domsvc.Forecaster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.strategies[modelType]; ok {
		return f, nil
	}
	if f, ok := r.strategies[DefaultModel]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("forecast: model %q not registered", modelType)
}

// List returns registered model-type ids in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for n := range r.strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// predictFunc extrapolates a close series `steps` bars past its end.
type predictFunc func(closes []float64, steps int) float64

// buildSignal runs the shared forecast pipeline: validate length, estimate
// out-of-sample error on a trailing holdout, predict at the horizon, and
// assemble the signal.
func buildSignal(series models.PriceSeries, name string, minPoints, horizonDays int, predict predictFunc) (models.PriceSignal, error) {
	n := series.Len()
	if n < minPoints {
		return models.PriceSignal{}, fmt.Errorf("%w: %s needs %d points, got %d",
			models.ErrInsufficientData, name, minPoints, n)
	}
	if horizonDays < 1 {
		horizonDays = 1
	}

	closes := series.Closes()
	predicted := predict(closes, horizonDays)
	last := series.LastClose()

	signal := models.PriceSignal{
		Symbol:         series.Symbol,
		Predicted:      predicted,
		LastPrice:      last,
		ChangePercent:  (predicted - last) / last * 100,
		Confidence:     holdoutConfidence(closes, minPoints, predict),
		HistoricalTail: series.Tail(historyTailPoints),
		ModelType:      name,
		HorizonDays:    horizonDays,
	}
	return signal, nil
}

// holdoutConfidence walks the strategy forward over the trailing holdout and
// converts its mean absolute error into a [0,1] confidence. Lower error
// yields higher confidence. When the series leaves no room for a holdout the
// confidence is a flat 0.5.
func holdoutConfidence(closes []float64, minPoints int, predict predictFunc) float64 {
	n := len(closes)
	h := holdoutPoints
	if n-h < minPoints {
		h = n - minPoints
	}
	if h < 1 {
		return 0.5
	}

	train := closes[:n-h]
	var absErr float64
	for i := 0; i < h; i++ {
		absErr += math.Abs(predict(train, i+1) - closes[n-h+i])
	}
	mae := absErr / float64(h)

	mean := 0.0
	for _, c := range closes {
		mean += c
	}
	mean /= float64(n)
	if mean <= 0 {
		return 0
	}

	return clamp01(1 - mae/mean)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

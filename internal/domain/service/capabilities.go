package service

import "StockPulse/internal/domain/models"

// Forecaster turns a price history into a point estimate for a horizon.
// Strategies (regression, neighbor, smoothing based) are interchangeable
// behind this one contract.
type Forecaster interface {
	// Name reports the model-type id the strategy is registered under.
	Name() string

	// MinPoints is the smallest series length the strategy accepts.
	MinPoints() int

	// Forecast returns a PriceSignal for the series. It fails with
	// models.ErrInsufficientData when the series is shorter than MinPoints.
	Forecast(series models.PriceSeries, horizonDays int) (models.PriceSignal, error)
}

// PolarityScorer scores the polarity of one piece of text in [-1, 1].
type PolarityScorer interface {
	Polarity(text string) float64
}

package forecast

import "StockPulse/internal/domain/models"

// Holt applies double exponential smoothing (level + trend) and projects the
// trend to the horizon. This is the time-series decomposition strategy.
type Holt struct {
	alpha float64
	beta  float64
}

// NewHolt returns the double-exponential-smoothing strategy.
func NewHolt(alpha, beta float64) *Holt {
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.5
	}
	if beta <= 0 || beta >= 1 {
		beta = 0.3
	}
	return &Holt{alpha: alpha, beta: beta}
}

func (f *Holt) Name() string { return "holt" }

func (f *Holt) MinPoints() int { return 10 }

func (f *Holt) Forecast(series models.PriceSeries, horizonDays int) (models.PriceSignal, error) {
	return buildSignal(series, f.Name(), f.MinPoints(), horizonDays, f.predict)
}

func (f *Holt) predict(closes []float64, steps int) float64 {
	level := closes[0]
	trend := closes[1] - closes[0]
	for _, y := range closes[1:] {
		prevLevel := level
		level = f.alpha*y + (1-f.alpha)*(level+trend)
		trend = f.beta*(level-prevLevel) + (1-f.beta)*trend
	}
	return level + float64(steps)*trend
}

package forecast

import "StockPulse/internal/domain/models"

// MovingAverage predicts the trailing window mean. A crude baseline, kept as
// the reference against which the other strategies are judged.
type MovingAverage struct {
	window int
}

// NewMovingAverage returns the trailing-mean strategy.
func NewMovingAverage(window int) *MovingAverage {
	if window < 2 {
		window = 50
	}
	return &MovingAverage{window: window}
}

func (f *MovingAverage) Name() string { return "moving_average" }

func (f *MovingAverage) MinPoints() int { return f.window }

func (f *MovingAverage) Forecast(series models.PriceSeries, horizonDays int) (models.PriceSignal, error) {
	return buildSignal(series, f.Name(), f.MinPoints(), horizonDays, f.predict)
}

func (f *MovingAverage) predict(closes []float64, _ int) float64 {
	w := f.window
	if w > len(closes) {
		w = len(closes)
	}
	var sum float64
	for _, c := range closes[len(closes)-w:] {
		sum += c
	}
	return sum / float64(w)
}

package forecast

import "StockPulse/internal/domain/models"

// KNN predicts by averaging the k nearest neighbors of the target bar index.
// On a time index the nearest neighbors of a future bar are the trailing
// bars, so this degenerates to a k-bar trailing mean with distance ties
// broken toward the end of the series.
type KNN struct {
	k int
}

// NewKNN returns the neighbor-average strategy.
func NewKNN(k int) *KNN {
	if k < 1 {
		k = 5
	}
	return &KNN{k: k}
}

func (f *KNN) Name() string { return "knn" }

func (f *KNN) MinPoints() int {
	if f.k*2 > 10 {
		return f.k * 2
	}
	return 10
}

func (f *KNN) Forecast(series models.PriceSeries, horizonDays int) (models.PriceSignal, error) {
	return buildSignal(series, f.Name(), f.MinPoints(), horizonDays, f.predict)
}

func (f *KNN) predict(closes []float64, _ int) float64 {
	k := f.k
	if k > len(closes) {
		k = len(closes)
	}
	var sum float64
	for _, c := range closes[len(closes)-k:] {
		sum += c
	}
	return sum / float64(k)
}

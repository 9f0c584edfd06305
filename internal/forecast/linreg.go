package forecast

import "StockPulse/internal/domain/models"

// LinearRegression fits an ordinary least squares line over the bar index and
// extrapolates it to the horizon.
type LinearRegression struct{}

// NewLinearRegression returns the OLS strategy.
func NewLinearRegression() *LinearRegression { return &LinearRegression{} }

func (f *LinearRegression) Name() string { return "linear_regression" }

func (f *LinearRegression) MinPoints() int { return 10 }

func (f *LinearRegression) Forecast(series models.PriceSeries, horizonDays int) (models.PriceSignal, error) {
	return buildSignal(series, f.Name(), f.MinPoints(), horizonDays, olsPredict)
}

func olsPredict(closes []float64, steps int) float64 {
	n := float64(len(closes))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range closes {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return closes[len(closes)-1]
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	x := float64(len(closes)-1) + float64(steps)
	return intercept + slope*x
}

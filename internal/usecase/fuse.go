package usecase

import "StockPulse/internal/domain/models"

// Fuse combines a price-derived and a sentiment-derived recommendation into
// the final advice. Agreement wins outright, a single HOLD defers to the
// decisive side, and a direct BUY/SELL conflict resolves toward sentiment
// because news reacts faster than daily closes.
func Fuse(price, sentiment models.Recommendation) models.Recommendation {
	if price == sentiment {
		return price
	}
	if price == models.Hold {
		return sentiment
	}
	if sentiment == models.Hold {
		return price
	}
	return sentiment
}

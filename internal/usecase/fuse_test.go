package usecase

import (
	"testing"

	"StockPulse/internal/domain/models"
)

func TestFuse(t *testing.T) {
	cases := []struct {
		name      string
		price     models.Recommendation
		sentiment models.Recommendation
		want      models.Recommendation
	}{
		{"both buy", models.Buy, models.Buy, models.Buy},
		{"both sell", models.Sell, models.Sell, models.Sell},
		{"both hold", models.Hold, models.Hold, models.Hold},
		{"price hold yields sentiment", models.Hold, models.Buy, models.Buy},
		{"price hold yields sentiment sell", models.Hold, models.Sell, models.Sell},
		{"sentiment hold yields price", models.Buy, models.Hold, models.Buy},
		{"sentiment hold yields price sell", models.Sell, models.Hold, models.Sell},
		{"conflict sentiment wins buy", models.Sell, models.Buy, models.Buy},
		{"conflict sentiment wins sell", models.Buy, models.Sell, models.Sell},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fuse(tc.price, tc.sentiment); got != tc.want {
				t.Fatalf("Fuse(%s, %s) = %s, want %s", tc.price, tc.sentiment, got, tc.want)
			}
		})
	}
}

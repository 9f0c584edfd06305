package models

import "time"

// Candle is one daily OHLCV bar.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is the ordered candle history for one symbol, oldest first.
type PriceSeries struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

// Len returns the number of candles.
func (s PriceSeries) Len() int {
	return len(s.Candles)
}

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s PriceSeries) LastClose() float64 {
	if len(s.Candles) == 0 {
		return 0
	}
	return s.Candles[len(s.Candles)-1].Close
}

// Closes returns the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Tail returns the last n candles as close points, fewer when the series is
// shorter.
func (s PriceSeries) Tail(n int) []ClosePoint {
	start := len(s.Candles) - n
	if start < 0 {
		start = 0
	}
	out := make([]ClosePoint, 0, len(s.Candles)-start)
	for _, c := range s.Candles[start:] {
		out = append(out, ClosePoint{Time: c.Timestamp, Close: c.Close})
	}
	return out
}

// ClosePoint is a timestamped close surfaced in forecast payloads.
type ClosePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// NewsItem is one article as returned by a news provider.
type NewsItem struct {
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
}

package models

import "time"

// Recommendation is the tri-state trading advice derived from a signal.
type Recommendation string

const (
	Buy  Recommendation = "BUY"
	Hold Recommendation = "HOLD"
	Sell Recommendation = "SELL"
)

// Explanation is the verbal bucket for a sentiment score.
type Explanation string

const (
	VeryPositive Explanation = "Very Positive"
	Positive     Explanation = "Positive"
	Neutral      Explanation = "Neutral"
	Negative     Explanation = "Negative"
	VeryNegative Explanation = "Very Negative"
)

// PriceSignal is the output of one forecaster invocation over one series.
type PriceSignal struct {
	Symbol         string       `json:"symbol"`
	Predicted      float64      `json:"prediction"`
	LastPrice      float64      `json:"last_price"`
	ChangePercent  float64      `json:"change"`
	Confidence     float64      `json:"confidence"`
	HistoricalTail []ClosePoint `json:"historical_data"`
	ModelType      string       `json:"model_type"`
	HorizonDays    int          `json:"time_horizon"`
}

// Recommendation maps change percent to advice using the given threshold
// pair. buy and sell are percentages, e.g. +3 and -3.
func (p PriceSignal) Recommendation(buy, sell float64) Recommendation {
	switch {
	case p.ChangePercent > buy:
		return Buy
	case p.ChangePercent < sell:
		return Sell
	default:
		return Hold
	}
}

// Headline is a NewsItem-derived summary surfaced in sentiment payloads.
type Headline struct {
	Headline string `json:"headline"`
	Date     string `json:"date"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// SentimentSignal is the output of scoring one batch of news items.
type SentimentSignal struct {
	Symbol           string      `json:"symbol"`
	Score            float64     `json:"sentiment"`
	Explanation      Explanation `json:"sentiment_explanation"`
	ArticlesAnalyzed int         `json:"articles_analyzed"`
	TopHeadlines     []Headline  `json:"top_headlines"`
}

// Recommendation maps the sentiment score to advice. The thresholds are
// asymmetric on purpose: positive news must clear a higher bar than negative
// news needs to trigger a sell.
func (s SentimentSignal) Recommendation() Recommendation {
	switch {
	case s.Score > 0.3:
		return Buy
	case s.Score < -0.2:
		return Sell
	default:
		return Hold
	}
}

// ExplanationFor buckets a sentiment score into its verbal label.
func ExplanationFor(score float64) Explanation {
	switch {
	case score > 0.3:
		return VeryPositive
	case score > 0.1:
		return Positive
	case score > -0.1:
		return Neutral
	case score > -0.3:
		return Negative
	default:
		return VeryNegative
	}
}

// TransitionEvent is emitted when a refresh run flips a symbol's
// recommendation.
type TransitionEvent struct {
	Type      string         `json:"type"`
	Symbol    string         `json:"symbol"`
	Company   string         `json:"company"`
	OldRec    Recommendation `json:"old_recommendation"`
	NewRec    Recommendation `json:"new_recommendation"`
	Sentiment float64        `json:"sentiment"`
	Timestamp time.Time      `json:"timestamp"`
}

// SentimentSummary is the per-symbol row returned by the sentiment listing
// endpoints.
type SentimentSummary struct {
	Symbol           string         `json:"symbol"`
	Company          string         `json:"company"`
	Sentiment        float64        `json:"sentiment"`
	Explanation      Explanation    `json:"sentiment_explanation"`
	Recommendation   Recommendation `json:"recommendation"`
	ArticlesAnalyzed int            `json:"articles_analyzed"`
	TopHeadlines     []Headline     `json:"top_headlines"`
	AnalysisDate     time.Time      `json:"analysis_date"`
}

// SentimentBuckets is the tri-list shape of /sentiment and /recommendations.
type SentimentBuckets struct {
	Buy  []SentimentSummary `json:"buy"`
	Sell []SentimentSummary `json:"sell"`
	Hold []SentimentSummary `json:"hold"`
}

// Prediction is the fused payload returned by /predict.
type Prediction struct {
	PriceSignal
	Company          string         `json:"company"`
	PriceRec         Recommendation `json:"price_recommendation"`
	SentimentRec     Recommendation `json:"sentiment_recommendation"`
	Sentiment        float64        `json:"sentiment"`
	SentimentExplain Explanation    `json:"sentiment_explanation"`
	ArticlesAnalyzed int            `json:"articles_analyzed"`
	TopHeadlines     []Headline     `json:"top_headlines"`
	FinalRec         Recommendation `json:"final_recommendation"`
	PredictionDate   time.Time      `json:"prediction_date"`
}

package models

// Requests for the advisory HTTP endpoints. Defined in domain for consistency
// and reuse.

type PredictRequest struct {
	Symbol      string `json:"symbol" validate:"required"`
	TimeHorizon int    `json:"time_horizon" default:"7" validate:"gte=1,lte=60"`
	ModelType   string `json:"model_type" default:"linear_regression"`
}

type ForecastRequest struct {
	Symbols     []string `json:"symbols" validate:"required,min=1,dive,required"`
	TimeHorizon int      `json:"time_horizon" default:"7" validate:"gte=1,lte=60"`
	ModelType   string   `json:"model_type" default:"linear_regression"`
}

type SentimentForRequest struct {
	Symbols      []string `json:"symbols" validate:"required,min=1,dive,required"`
	ForceRefresh bool     `json:"force_refresh"`
}

// Subscription is the inbound message on the streaming channel.
type Subscription struct {
	Action  string   `json:"action"`
	Symbols []string `json:"symbols"`
}

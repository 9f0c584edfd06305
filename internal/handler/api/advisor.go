package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/ws"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"
)

const (
	defaultMinConfidence   = 0.2
	defaultTransitionLimit = 50
)

// AdvisorHandler exposes the advisory pipeline over HTTP.
type AdvisorHandler struct {
	logger  *xlogger.Logger
	advisor *usecase.Advisor
	stream  *ws.Handler
	history drepo.History
}

// HandlerOption configures optional AdvisorHandler collaborators.
type HandlerOption func(*AdvisorHandler)

// WithHistory attaches the transition history reader behind /transitions.
func WithHistory(h drepo.History) HandlerOption {
	return func(a *AdvisorHandler) { a.history = h }
}

// NewAdvisorHandler creates the HTTP handler.
func NewAdvisorHandler(logger *xlogger.Logger, advisor *usecase.Advisor, stream *ws.Handler, opts ...HandlerOption) *AdvisorHandler {
	h := &AdvisorHandler{logger: logger, advisor: advisor, stream: stream}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AdvisorHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/instruments", h.Instruments)
	e.GET("/models", h.Models)
	e.POST("/predict", h.Predict)
	e.POST("/forecast", h.Forecast)
	e.GET("/sentiment", h.Sentiment)
	e.POST("/sentiment-for", h.SentimentFor)
	e.GET("/recommendations", h.Recommendations)
	e.GET("/transitions", h.Transitions)
	e.GET("/ws", h.stream.Serve)
}

func (h *AdvisorHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *AdvisorHandler) Instruments(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.advisor.Universe())
}

func (h *AdvisorHandler) Models(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.advisor.Models())
}

func (h *AdvisorHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	pred, err := h.advisor.Predict(c.Request().Context(), *req)
	if err != nil {
		return h.adviceError(c, req.Symbol, err)
	}
	return xhttp.SuccessResponse(c, pred)
}

func (h *AdvisorHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	items := h.advisor.ForecastBatch(c.Request().Context(), *req)
	return xhttp.ListResponse(c, items, int64(len(items)))
}

func (h *AdvisorHandler) Sentiment(c echo.Context) error {
	force := xhttp.ParseBoolDefault(c.QueryParam("force_refresh"), false)
	buckets := h.advisor.SentimentOverview(c.Request().Context(), force)
	return xhttp.SuccessResponse(c, buckets)
}

func (h *AdvisorHandler) SentimentFor(c echo.Context) error {
	req := &models.SentimentForRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	items := h.advisor.SentimentFor(c.Request().Context(), *req)
	return xhttp.ListResponse(c, items, int64(len(items)))
}

func (h *AdvisorHandler) Recommendations(c echo.Context) error {
	min := xhttp.ParseFloatDefault(c.QueryParam("min_confidence"), defaultMinConfidence)
	buckets := h.advisor.Recommendations(c.Request().Context(), min)
	return xhttp.SuccessResponse(c, buckets)
}

// Transitions lists recent recommendation flips, newest first. Without a
// configured history backend the endpoint reports unavailable.
func (h *AdvisorHandler) Transitions(c echo.Context) error {
	if h.history == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("transition history is not configured"))
	}

	symbol := c.QueryParam("symbol")
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), defaultTransitionLimit)

	events, err := h.history.Recent(c.Request().Context(), symbol, limit)
	if err != nil {
		h.logger.Error("transition history read failed",
			xlogger.String("symbol", symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("transition history unavailable").WithError(err))
	}
	return xhttp.ListResponse(c, events, int64(len(events)))
}

// adviceError maps pipeline errors onto the HTTP error taxonomy.
func (h *AdvisorHandler) adviceError(c echo.Context, symbol string, err error) error {
	switch {
	case errors.Is(err, models.ErrUnknownSymbol):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s is not tracked", symbol).WithError(err))
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("not enough history for %s", symbol).WithError(err))
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.AppErrorResponse(c, xhttp.UnavailableErrorf("no data available for %s", symbol).WithError(err))
	default:
		h.logger.Error("advisor error",
			xlogger.String("symbol", symbol),
			xlogger.Error(err),
		)
		var perr *models.ProviderError
		if errors.As(err, &perr) {
			return xhttp.AppErrorResponse(c, xhttp.UnavailableErrorf("%s provider unavailable", perr.Provider).WithError(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
}

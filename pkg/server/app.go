package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	handler   xhttp.Handler
	refresher *usecase.Refresher
	publisher drepo.Publisher
	history   drepo.History

	httpServer *xhttp.Server
}

// AppOption configures optional App collaborators.
type AppOption func(*App)

// WithPublisher attaches an event-bus publisher for lifecycle management.
func WithPublisher(p drepo.Publisher) AppOption {
	return func(a *App) { a.publisher = p }
}

// WithHistory attaches a history recorder for lifecycle management.
func WithHistory(h drepo.History) AppOption {
	return func(a *App) { a.history = h }
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.Refresher,
	opts ...AppOption,
) *App {
	a := &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		refresher: refresher,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := a.cfg.Metrics.Path
	if !a.cfg.Metrics.Enabled {
		metricsPath = ""
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.logger),
	)

	if err := a.refresher.Start(); err != nil {
		a.logger.Error("refresher start error", applogger.Error(err))
		return err
	}
	a.logger.Info("refresher started",
		applogger.Duration("interval", a.cfg.Advisor.RefreshInterval),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("history close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}

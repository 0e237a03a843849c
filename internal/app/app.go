package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cdn-insight/internal/analyzers"
	internalhttp "cdn-insight/internal/http"
	"cdn-insight/internal/logsources"
	"cdn-insight/internal/normalizers"
	"cdn-insight/internal/shared/configs"
	"cdn-insight/internal/shared/loggers"
)

const defaultFetchTimeoutSec = 10

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "cdn-insight").
		Logger()

	// Initialize the metrics engine
	recordNormalizer := normalizers.NewRecordNormalizer()
	analysisService := analyzers.NewAnalysisService(recordNormalizer, config.Analysis)

	// Initialize the optional S3 log source
	var logSource logsources.LogSource
	if config.LogSource.S3Enabled {
		fetchTimeout := time.Duration(config.LogSource.FetchTimeoutSec) * time.Second
		if fetchTimeout <= 0 {
			fetchTimeout = defaultFetchTimeoutSec * time.Second
		}
		logSource, err = logsources.NewS3Source(context.Background(), config.LogSource.S3Region, fetchTimeout, config.Analysis.MaxLogBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 log source: %w", err)
		}
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(analysisService, logSource, config.Analysis.MaxLogBytes, httpLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting cdn-insight service on port %d (log_level=%s, s3_source_enabled=%v)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.LogSource.S3Enabled)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}

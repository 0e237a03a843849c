package http

import (
	"net/http"

	"cdn-insight/internal/analyzers"
	"cdn-insight/internal/logsources"
	"cdn-insight/internal/shared/loggers"
	"cdn-insight/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(analysisService analyzers.AnalysisService, logSource logsources.LogSource, maxBodyBytes int, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	analyzeHandler := NewAnalyzeHandler(analysisService, logSource, maxBodyBytes)

	router.Post("/analyze", errorHandlingAdapter(analyzeHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cdn-insight/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMwRequestID_GeneratesIDWhenNotProvided(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	mw := mwRequestID(logger)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request ID is set in header
		requestID := r.Header.Get(headerRequestID)
		assert.NotEmpty(t, requestID, "request ID should be generated")

		// Verify it's a valid ULID (26 characters)
		assert.Len(t, requestID, 26, "request ID should be a valid ULID")

		// Verify logger is in context
		ctxLogger := loggers.Ctx(r.Context())
		assert.NotNil(t, ctxLogger, "logger should be in context")

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMwRequestID_UsesProvidedID(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	mw := mwRequestID(logger)

	providedID := "custom-request-id-12345"
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify the provided request ID is used
		requestID := r.Header.Get(headerRequestID)
		assert.Equal(t, providedID, requestID, "should use provided request ID")

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(headerRequestID, providedID)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMwRecoverer_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	// Set up request ID middleware first so logger is in context
	mwReqID := mwRequestID(logger)
	mwRecover := mwRecoverer

	handler := mwRecover(mwReqID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	// Should not panic, should recover
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, req)
	})

	// Should return 500 status
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// Should return JSON error response
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	// Parse response body
	var errorResponse ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errorResponse)
	require.NoError(t, err)

	// Assert response fields
	assert.NotEmpty(t, errorResponse.RequestID, "request ID should be set")
	assert.Equal(t, "internal", errorResponse.ErrorCategory)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
	assert.Equal(t, "internal server error", errorResponse.ErrorDescription)
}

func TestMwRecoverer_PassesThroughWhenNoPanic(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	mwReqID := mwRequestID(logger)
	mwRecover := mwRecoverer

	handler := mwRecover(mwReqID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}

func TestMwRecoverer_RecoversFromErrorPanic(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	mwReqID := mwRequestID(logger)
	mwRecover := mwRecoverer

	testErr := assert.AnError
	handler := mwRecover(mwReqID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(testErr)
	})))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// Parse response body
	var errorResponse ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errorResponse)
	require.NoError(t, err)

	// Assert response fields
	assert.NotEmpty(t, errorResponse.RequestID)
	assert.Equal(t, "internal", errorResponse.ErrorCategory)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
	assert.Equal(t, "internal server error", errorResponse.ErrorDescription)
}

func TestUserAgentFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{
			name:     "curl",
			ua:       "curl/8.5.0",
			expected: "curl",
		},
		{
			name: "chrome",
			ua: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected: "Chrome",
		},
		{
			name:     "unparseable falls back to raw string",
			ua:       "some-internal-tool",
			expected: "some-internal-tool",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, userAgentFamily(tt.ua))
		})
	}
}

func TestSetupMiddleware_Integration(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	router := chi.NewRouter()
	setupMiddleware(router, logger)

	// Test request ID generation
	router.Get("/test-id", func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		assert.NotEmpty(t, requestID, "request ID should be set")
		w.WriteHeader(http.StatusOK)
	})

	// Test panic recovery
	router.Get("/test-panic", func(w http.ResponseWriter, r *http.Request) {
		panic("integration test panic")
	})

	req := httptest.NewRequest(http.MethodGet, "/test-id", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/test-panic", nil)
	rr = httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// Verify panic recovery returns proper error response
	var errorResponse ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errorResponse)
	require.NoError(t, err)
	assert.NotEmpty(t, errorResponse.RequestID)
	assert.Equal(t, "internal", errorResponse.ErrorCategory)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
}

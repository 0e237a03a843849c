package http

import (
	"io"
	"net/http"
	"strings"

	"cdn-insight/internal/analyzers"
	"cdn-insight/internal/logsources"
	"cdn-insight/internal/models"
	"cdn-insight/internal/shared/validators"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type analyzeHandler struct {
	analysisService analyzers.AnalysisService
	logSource       logsources.LogSource // nil when the S3 source is disabled
	maxBodyBytes    int
	validate        *validators.Validate
}

func NewAnalyzeHandler(analysisService analyzers.AnalysisService, logSource logsources.LogSource, maxBodyBytes int) AppHttpHandler {
	return &analyzeHandler{
		analysisService: analysisService,
		logSource:       logSource,
		maxBodyBytes:    maxBodyBytes,
		validate:        validators.New(),
	}
}

// Handle processes POST /analyze requests.
func (h *analyzeHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	req, err := h.decodeRequest(r)
	if err != nil {
		return err
	}

	if req.LogText == "" && req.Source != nil {
		if h.logSource == nil {
			return errLogSourceDisabled()
		}
		logText, err := h.logSource.Fetch(r.Context(), req.Source)
		if err != nil {
			return err
		}
		req.LogText = logText
	}
	if req.LogText == "" {
		return errValidationFailed("either logText or source must be supplied", nil)
	}

	result, err := h.analysisService.Analyze(r.Context(), req)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(result)
}

func (h *analyzeHandler) decodeRequest(r *http.Request) (*models.AnalyzeRequest, error) {
	if r.Body == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	body := io.Reader(r.Body)
	if strings.EqualFold(contentEncoding(r), "gzip") {
		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, errValidationFailed("body is not valid gzip", err)
		}
		defer gzReader.Close()
		body = gzReader
	}

	buf, err := io.ReadAll(io.LimitReader(body, int64(h.maxBodyBytes)+1))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > h.maxBodyBytes {
		return nil, errRequestTooLarge(h.maxBodyBytes)
	}

	var req models.AnalyzeRequest
	if err := json.Unmarshal(buf, &req); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		if ve, ok := err.(validators.ValidationErrors); ok && len(ve) > 0 {
			return nil, errValidationFailed("invalid request: "+ve[0].StructNamespace()+" ("+ve[0].Tag()+")", err)
		}
		return nil, errValidationFailed("invalid request", err)
	}

	return &req, nil
}

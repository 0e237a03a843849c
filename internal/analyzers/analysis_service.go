package analyzers

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"cdn-insight/internal/models"
	"cdn-insight/internal/normalizers"
	"cdn-insight/internal/shared/configs"
	"cdn-insight/internal/shared/loggers"
	"cdn-insight/internal/shared/metrics"
	"cdn-insight/internal/shared/svcerrors"
)

const isoMillisLayout = "2006-01-02T15:04:05.000Z"

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze runs the full stage chain over one request: normalize,
	// select window, filter, aggregate, bucketize, diagnose. It is a pure
	// function of the request; identical inputs yield identical results.
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.MetricsResult, error)
}

type analysisService struct {
	recordNormalizer normalizers.RecordNormalizer
	caps             aggregateCaps
}

func NewAnalysisService(recordNormalizer normalizers.RecordNormalizer, cfg configs.AnalysisConfig) AnalysisService {
	return &analysisService{
		recordNormalizer: recordNormalizer,
		caps: aggregateCaps{
			topBreakdown: cfg.TopBreakdown,
			topHosts:     cfg.TopHosts,
			topHostCodes: cfg.TopHostCodes,
		},
	}
}

func (s *analysisService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.MetricsResult, error) {
	started := time.Now()
	result, err := s.analyze(ctx, req)
	metricAnalysisDuration.WithLabelValues().Observe(time.Since(started).Seconds())
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricAnalysesTotal.WithLabelValues(svcErr.Code).Inc()
		} else {
			metricAnalysesTotal.WithLabelValues(svcerrors.NewInternalErrorUndefined(err).Code).Inc()
		}
		return nil, err
	}
	metricAnalysesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}

func (s *analysisService) analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.MetricsResult, error) {
	logger := loggers.Ctx(ctx)

	if req.WindowMinutes <= 0 || math.IsNaN(req.WindowMinutes) || math.IsInf(req.WindowMinutes, 0) {
		return nil, errInvalidWindow(req.WindowMinutes)
	}
	for i := range req.Filters {
		if !req.Filters[i].IsWellFormed() {
			return nil, errInvalidFilterSpec(i, fmt.Sprintf("type=%q key=%q", req.Filters[i].Type, req.Filters[i].Key))
		}
	}

	records, err := s.recordNormalizer.Normalize(req.LogText)
	if err != nil {
		return nil, err
	}

	selection, err := selectWindow(records, req.WindowMinutes)
	if err != nil {
		return nil, err
	}

	outcome := applyFilterPipeline(selection.inWindow, req)
	logger.Debug().
		Int(loggers.FieldRowCount, len(records)).
		Int(loggers.FieldWindowedRows, len(selection.inWindow)).
		Int(loggers.FieldMatchedRows, len(outcome.matched)).
		Msg("filter pipeline applied")

	view := calculateAggregate(outcome.matched, s.caps)
	series := bucketize(outcome.matched)

	allCounters := countDataQuality(records)
	windowCounters := countDataQuality(selection.inWindow)
	warnings := deriveWarnings(outcome, len(selection.inWindow), windowCounters)

	result := &models.MetricsResult{
		TimeRange: models.TimeRange{
			Start: time.UnixMilli(selection.startMs).UTC().Format(isoMillisLayout),
			End:   time.UnixMilli(selection.endMs).UTC().Format(isoMillisLayout),
		},
		TotalRequests:         view.totalRequests,
		P95LatencyMs:          view.p95LatencyMs,
		P99LatencyMs:          view.p99LatencyMs,
		CacheHitPct:           view.cacheHitPct,
		CacheMissPct:          view.cacheMissPct,
		ResponseCodeHistogram: view.responseCodeHistogram,
		ErrorCount:            view.errorCount,
		ErrorRatePct:          view.errorRatePct,
		TopServices:           view.topServices,
		TopRegions:            view.topRegions,
		TopPops:               view.topPops,
		TopHosts:              view.topHosts,
		TopResultClasses:      view.topResultClasses,
		TopResultCodes:        view.topResultCodes,
		HostBreakdown:         view.hostBreakdown,
		HostByResultCode:      view.hostByResultCode,
		Timeseries:            series,
		Warnings:              warnings,
		DataQuality: models.DataQualityReport{
			All:    allCounters,
			Window: windowCounters,
		},
	}

	if req.Debug {
		result.Debug = buildDebugInfo(records, selection, outcome)
	}

	return result, nil
}

// buildDebugInfo summarizes row counts, a sample record, and the available
// values per dimension over the whole parsed set.
func buildDebugInfo(records []*models.Record, selection *windowSelection, outcome *filterOutcome) *models.DebugInfo {
	info := &models.DebugInfo{
		RowsParsed:   len(records),
		RowsInWindow: len(selection.inWindow),
		RowsMatched:  len(outcome.matched),
	}
	if len(records) > 0 {
		info.SampleRecord = records[0]
	}
	info.Services = distinctValues(records, func(r *models.Record) string { return r.Service })
	info.Regions = distinctValues(records, func(r *models.Record) string { return r.Region })
	info.Pops = distinctValues(records, func(r *models.Record) string { return r.Pop })
	info.Hosts = distinctValues(records, func(r *models.Record) string { return r.Host })
	return info
}

func distinctValues(records []*models.Record, selector func(*models.Record) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, record := range records {
		v := selector(record)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

package analyzers

import (
	"math"
	"sort"

	"cdn-insight/internal/models"
)

// aggregateCaps bound the breakdown views for readability. They never bound
// the scalar metrics, which are always computed over the full filtered set.
type aggregateCaps struct {
	topBreakdown int // flat categorical breakdowns
	topHosts     int // per-host breakdown rows
	topHostCodes int // per-host histograms
}

// aggregateView holds every field of the result that the aggregation
// engine owns.
type aggregateView struct {
	totalRequests         int64
	p95LatencyMs          *float64
	p99LatencyMs          *float64
	cacheHitPct           *float64
	cacheMissPct          *float64
	responseCodeHistogram []models.CodeCount
	errorCount            int64
	errorRatePct          *float64
	topServices           []models.KeyCount
	topRegions            []models.KeyCount
	topPops               []models.KeyCount
	topHosts              []models.KeyCount
	topResultClasses      []models.KeyCount
	topResultCodes        []models.KeyCount
	hostBreakdown         []models.HostStats
	hostByResultCode      []models.HostCodeCount
}

// orderedCounter is a frequency counter that remembers discovery order so
// that ties in the top-N views break stably.
type orderedCounter struct {
	counts map[string]int64
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int64)}
}

func (c *orderedCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n entries, frequency-sorted descending, ties broken by
// discovery order.
func (c *orderedCounter) top(n int) []models.KeyCount {
	entries := make([]models.KeyCount, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, models.KeyCount{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// percentileOf computes the p-th percentile of an ascending sample set by
// linear interpolation: index = p/100 * (n-1), fractional indexes
// interpolate between neighbors. Returns nil for an empty set. This is
// deliberately not nearest-rank.
func percentileOf(sorted []float64, p float64) *float64 {
	n := len(sorted)
	if n == 0 {
		return nil
	}
	idx := p / 100 * float64(n-1)
	lower := int(math.Floor(idx))
	if lower >= n-1 {
		v := sorted[n-1]
		return &v
	}
	frac := idx - float64(lower)
	v := sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
	return &v
}

// latencyPercentiles collects the available numeric latencies of a record
// set and returns the interpolated p95/p99.
func latencyPercentiles(records []*models.Record) (p95, p99 *float64) {
	latencies := make([]float64, 0, len(records))
	for _, record := range records {
		if record.LatencyMs != nil {
			latencies = append(latencies, *record.LatencyMs)
		}
	}
	sort.Float64s(latencies)
	return percentileOf(latencies, 95), percentileOf(latencies, 99)
}

func isErrorRecord(record *models.Record) bool {
	return record.ResponseCode != nil && *record.ResponseCode >= 500
}

// calculateAggregate computes every scalar metric and breakdown of the
// filtered set. The set may be empty; counts come back zero, percentiles
// and ratios nil, breakdowns empty.
func calculateAggregate(records []*models.Record, caps aggregateCaps) *aggregateView {
	view := &aggregateView{
		totalRequests: int64(len(records)),
	}

	view.p95LatencyMs, view.p99LatencyMs = latencyPercentiles(records)

	var hits, misses int64
	codeCounts := make(map[int]int64)
	services := newOrderedCounter()
	regions := newOrderedCounter()
	pops := newOrderedCounter()
	hosts := newOrderedCounter()
	resultClasses := newOrderedCounter()
	resultCodes := newOrderedCounter()
	byHost := make(map[string][]*models.Record)

	for _, record := range records {
		switch record.CacheHit {
		case models.CacheHitState:
			hits++
		case models.CacheMissState:
			misses++
		}
		if record.ResponseCode != nil {
			codeCounts[*record.ResponseCode]++
		}
		if isErrorRecord(record) {
			view.errorCount++
		}
		services.add(record.Service)
		regions.add(record.Region)
		pops.add(record.Pop)
		hosts.add(record.Host)
		resultClasses.add(string(record.ResultClass))
		resultCodes.add(record.ResultCode)
		byHost[record.Host] = append(byHost[record.Host], record)
	}

	if view.totalRequests > 0 {
		hitPct := 100 * float64(hits) / float64(view.totalRequests)
		missPct := 100 * float64(misses) / float64(view.totalRequests)
		errPct := 100 * float64(view.errorCount) / float64(view.totalRequests)
		view.cacheHitPct = &hitPct
		view.cacheMissPct = &missPct
		view.errorRatePct = &errPct
	}

	view.responseCodeHistogram = histogramAscending(codeCounts)
	view.topServices = services.top(caps.topBreakdown)
	view.topRegions = regions.top(caps.topBreakdown)
	view.topPops = pops.top(caps.topBreakdown)
	view.topHosts = hosts.top(caps.topBreakdown)
	view.topResultClasses = resultClasses.top(caps.topBreakdown)
	view.topResultCodes = resultCodes.top(caps.topBreakdown)

	view.hostBreakdown = calculateHostBreakdown(hosts, byHost, caps)
	view.hostByResultCode = flattenHostResultCodes(view.hostBreakdown)

	return view
}

// histogramAscending converts a numeric-code count map into rows ordered
// ascending by code value.
func histogramAscending(codeCounts map[int]int64) []models.CodeCount {
	codes := make([]int, 0, len(codeCounts))
	for code := range codeCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	histogram := make([]models.CodeCount, 0, len(codes))
	for _, code := range codes {
		histogram = append(histogram, models.CodeCount{Code: code, Count: codeCounts[code]})
	}
	return histogram
}

// calculateHostBreakdown computes the per-host sub-aggregates for the
// top-K hosts by total count.
func calculateHostBreakdown(hosts *orderedCounter, byHost map[string][]*models.Record, caps aggregateCaps) []models.HostStats {
	topHosts := hosts.top(caps.topHosts)
	breakdown := make([]models.HostStats, 0, len(topHosts))
	for _, entry := range topHosts {
		hostRecords := byHost[entry.Key]
		stats := models.HostStats{
			Host:          entry.Key,
			TotalRequests: entry.Count,
		}
		stats.P95LatencyMs, stats.P99LatencyMs = latencyPercentiles(hostRecords)

		hostCodeCounts := make(map[int]int64)
		hostResultCodes := newOrderedCounter()
		for _, record := range hostRecords {
			if record.ResponseCode != nil {
				hostCodeCounts[*record.ResponseCode]++
			}
			hostResultCodes.add(record.ResultCode)
		}
		stats.ResponseCodes = capCodeHistogram(histogramAscending(hostCodeCounts), caps.topHostCodes)
		stats.ResultCodes = hostResultCodes.top(caps.topHostCodes)

		breakdown = append(breakdown, stats)
	}
	return breakdown
}

// capCodeHistogram keeps the top-n rows of a histogram by count without
// disturbing the ascending-by-code order of the survivors.
func capCodeHistogram(histogram []models.CodeCount, n int) []models.CodeCount {
	if len(histogram) <= n {
		return histogram
	}
	ranked := make([]models.CodeCount, len(histogram))
	copy(ranked, histogram)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	keep := make(map[int]bool, n)
	for _, row := range ranked[:n] {
		keep[row.Code] = true
	}
	capped := make([]models.CodeCount, 0, n)
	for _, row := range histogram {
		if keep[row.Code] {
			capped = append(capped, row)
		}
	}
	return capped
}

// flattenHostResultCodes explodes the per-host resultCode histograms into
// flat (host, code, count) tuples, globally sorted descending by count.
func flattenHostResultCodes(breakdown []models.HostStats) []models.HostCodeCount {
	flattened := make([]models.HostCodeCount, 0)
	for _, stats := range breakdown {
		for _, row := range stats.ResultCodes {
			flattened = append(flattened, models.HostCodeCount{
				Host:       stats.Host,
				ResultCode: row.Key,
				Count:      row.Count,
			})
		}
	}
	sort.SliceStable(flattened, func(i, j int) bool {
		return flattened[i].Count > flattened[j].Count
	})
	return flattened
}

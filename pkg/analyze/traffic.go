package analyze

import (
	"cmp"
	"slices"
	"time"

	"github.com/taoky/accesstat/pkg/parser"
)

// Window is the span of the recent activity analysis, in seconds.
const Window = 24 * 60 * 60

type BasicStats struct {
	TotalRequests int   `json:"total_requests"`
	UniqueIPs     int   `json:"unique_ips"`
	TotalData     int64 `json:"total_data"`
}

type ErrorMetrics struct {
	Success2xx     int     `json:"success_2xx"`
	Errors4xx      int     `json:"errors_4xx"`
	Errors5xx      int     `json:"errors_5xx"`
	AvgResponse2xx float64 `json:"avg_response_2xx"`
}

// Activity describes the requests within Window of the newest record.
type Activity struct {
	UniqueIPs int `json:"unique_ips"`
	// hour of day (0-23) -> requests
	RequestsPerHour map[int]int `json:"requests_per_hour"`
}

// TrafficAnalyzer computes statistics over a fixed record set. It never
// modifies the records.
type TrafficAnalyzer struct {
	records []parser.LogRecord
	loc     *time.Location
}

// NewTrafficAnalyzer uses loc to derive hours of day; nil means time.Local.
func NewTrafficAnalyzer(records []parser.LogRecord, loc *time.Location) *TrafficAnalyzer {
	if loc == nil {
		loc = time.Local
	}
	return &TrafficAnalyzer{records: records, loc: loc}
}

func (t *TrafficAnalyzer) Len() int {
	return len(t.records)
}

func (t *TrafficAnalyzer) BasicStats() BasicStats {
	ips := make(map[string]struct{})
	var total int64
	for _, r := range t.records {
		ips[r.IP()] = struct{}{}
		total += r.ResponseSize()
	}
	return BasicStats{
		TotalRequests: len(t.records),
		UniqueIPs:     len(ips),
		TotalData:     total,
	}
}

func (t *TrafficAnalyzer) count(key func(parser.LogRecord) string) *counter {
	c := newCounter()
	for _, r := range t.records {
		c.Add(key(r), r)
	}
	return c
}

// TopIPs ranks client addresses by request count.
func (t *TrafficAnalyzer) TopIPs(n int) []KeyCount {
	return t.TopIPsBy(n, SortByRequests)
}

func (t *TrafficAnalyzer) TopIPsBy(n int, sortBy SortByFlag) []KeyCount {
	return t.count(parser.LogRecord.IP).Top(n, sortBy)
}

// TopURLs ranks URLs by request count.
func (t *TrafficAnalyzer) TopURLs(n int) []KeyCount {
	return t.TopURLsBy(n, SortByRequests)
}

func (t *TrafficAnalyzer) TopURLsBy(n int, sortBy SortByFlag) []KeyCount {
	return t.count(parser.LogRecord.URL).Top(n, sortBy)
}

// MethodDistribution maps each method present to its share of requests in
// percent. It is empty when there are no records.
func (t *TrafficAnalyzer) MethodDistribution() map[string]float64 {
	dist := make(map[string]float64)
	if len(t.records) == 0 {
		return dist
	}
	counts := make(map[string]int)
	for _, r := range t.records {
		counts[r.Method()]++
	}
	for method, n := range counts {
		dist[method] = 100 * float64(n) / float64(len(t.records))
	}
	return dist
}

func (t *TrafficAnalyzer) ErrorMetrics() ErrorMetrics {
	var m ErrorMetrics
	var size2xx int64
	for _, r := range t.records {
		switch s := r.Status(); {
		case 200 <= s && s < 300:
			m.Success2xx++
			size2xx += r.ResponseSize()
		case 400 <= s && s < 500:
			m.Errors4xx++
		case 500 <= s && s < 600:
			m.Errors5xx++
		}
	}
	if m.Success2xx > 0 {
		m.AvgResponse2xx = float64(size2xx) / float64(m.Success2xx)
	}
	return m
}

// LastDayActivity looks at records no older than Window seconds before the
// newest timestamp present.
func (t *TrafficAnalyzer) LastDayActivity() Activity {
	a := Activity{RequestsPerHour: make(map[int]int)}
	if len(t.records) == 0 {
		return a
	}
	newest := slices.MaxFunc(t.records, func(l, r parser.LogRecord) int {
		return cmp.Compare(l.Timestamp(), r.Timestamp())
	}).Timestamp()
	cutoff := newest - Window

	ips := make(map[string]struct{})
	for _, r := range t.records {
		if r.Timestamp() < cutoff {
			continue
		}
		ips[r.IP()] = struct{}{}
		a.RequestsPerHour[r.Time(t.loc).Hour()]++
	}
	a.UniqueIPs = len(ips)
	return a
}

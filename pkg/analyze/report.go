package analyze

import (
	"cmp"
	"slices"

	"github.com/taoky/accesstat/pkg/parser"
)

// Report is everything a run produced, without any formatting applied.
type Report struct {
	Source string     `json:"source"`
	Filter string     `json:"filter"`
	TopN   int        `json:"top_n"`
	SortBy SortByFlag `json:"sort_by"`

	Lines           int                 `json:"lines"`
	ParsedRecords   int                 `json:"parsed_records"`
	ParseErrors     []parser.ParseError `json:"parse_errors"`
	FilteredRecords int                 `json:"filtered_records"`

	Basic              BasicStats         `json:"basic"`
	TopIPs             []KeyCount         `json:"top_ips"`
	MethodDistribution map[string]float64 `json:"method_distribution"`
	TopURLs            []KeyCount         `json:"top_urls"`
	Status             ErrorMetrics       `json:"status"`
	LastDay            Activity           `json:"last_24h"`
}

// Empty reports whether the filter left no records.
func (r *Report) Empty() bool {
	return r.FilteredRecords == 0
}

// Fill computes every statistic of t into r.
func (t *TrafficAnalyzer) Fill(r *Report) {
	r.FilteredRecords = t.Len()
	r.Basic = t.BasicStats()
	r.TopIPs = t.TopIPsBy(r.TopN, r.SortBy)
	r.MethodDistribution = t.MethodDistribution()
	r.TopURLs = t.TopURLsBy(r.TopN, r.SortBy)
	r.Status = t.ErrorMetrics()
	r.LastDay = t.LastDayActivity()
}

type MethodShare struct {
	Method  string
	Percent float64
}

// SortedMethods orders a method distribution by share, then by the order of
// parser.Methods.
func SortedMethods(dist map[string]float64) []MethodShare {
	res := make([]MethodShare, 0, len(dist))
	for m, p := range dist {
		res = append(res, MethodShare{m, p})
	}
	slices.SortFunc(res, func(a, b MethodShare) int {
		if c := cmp.Compare(b.Percent, a.Percent); c != 0 {
			return c
		}
		return cmp.Compare(slices.Index(parser.Methods, a.Method), slices.Index(parser.Methods, b.Method))
	})
	return res
}

// SortedHours returns the hours present in an activity, ascending.
func SortedHours(a Activity) []int {
	hours := make([]int, 0, len(a.RequestsPerHour))
	for h := range a.RequestsPerHour {
		hours = append(hours, h)
	}
	slices.Sort(hours)
	return hours
}

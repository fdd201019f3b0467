package analyze

import (
	"slices"

	"github.com/taoky/accesstat/pkg/parser"
)

type KeyStats struct {
	Requests int
	Size     int64
}

func (s KeyStats) UpdateWith(r parser.LogRecord) KeyStats {
	s.Requests += 1
	s.Size += r.ResponseSize()
	return s
}

// KeyCount is one entry of a top-K ranking.
type KeyCount struct {
	Key      string `json:"key"`
	Requests int    `json:"requests"`
	Size     int64  `json:"bytes"`
}

// counter remembers the order in which keys were first seen, so that
// rankings break ties by first occurrence.
type counter struct {
	order []string
	stats map[string]KeyStats
}

func newCounter() *counter {
	return &counter{stats: make(map[string]KeyStats)}
}

func (c *counter) Add(key string, r parser.LogRecord) {
	s, ok := c.stats[key]
	if !ok {
		c.order = append(c.order, key)
	}
	c.stats[key] = s.UpdateWith(r)
}

func (c *counter) Len() int {
	return len(c.order)
}

// Top returns at most n entries ordered by sortBy, descending. n is clamped
// to [0, Len()].
func (c *counter) Top(n int, sortBy SortByFlag) []KeyCount {
	n = max(0, min(n, c.Len()))
	keys := slices.Clone(c.order)
	if sortFunc := GetSortFunc(sortBy, c.stats); sortFunc != nil {
		slices.SortStableFunc(keys, sortFunc)
	}
	res := make([]KeyCount, 0, n)
	for _, key := range keys[:n] {
		s := c.stats[key]
		res = append(res, KeyCount{Key: key, Requests: s.Requests, Size: s.Size})
	}
	return res
}

package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taoky/accesstat/pkg/parser"
)

func ptr(v int64) *int64 { return &v }

func sampleRecords() []parser.LogRecord {
	return []parser.LogRecord{
		parser.MustNewLogRecord(1000, "10.0.0.1", "GET", "/a", 200, 500),
		parser.MustNewLogRecord(2000, "10.0.0.2", "POST", "/b", 404, 0),
		parser.MustNewLogRecord(3000, "10.0.0.1", "GET", "/c", 404, 10),
		parser.MustNewLogRecord(4000, "10.0.0.3", "DELETE", "/a", 500, 20),
		parser.MustNewLogRecord(5000, "10.0.0.2", "GET", "/b", 302, 0),
	}
}

func urls(records []parser.LogRecord) []string {
	res := make([]string, 0, len(records))
	for _, r := range records {
		res = append(res, r.URL())
	}
	return res
}

func TestParseStatus(t *testing.T) {
	type testCase struct {
		input    string
		expected string
	}
	testCases := []testCase{
		{"404", "404"},
		{"400-499", "400-499"},
		{"200-200", "200-200"},
	}
	for _, c := range testCases {
		s, err := ParseStatus(c.input)
		if assert.NoError(t, err, c.input) {
			assert.True(t, s.IsSet())
			assert.Equal(t, c.expected, s.String())
		}
	}

	for _, bad := range []string{"abc", "400-", "-499", "400-450-499", "499-400", "4xx", ""} {
		_, err := ParseStatus(bad)
		var cerr *ConfigError
		assert.True(t, errors.As(err, &cerr), bad)
	}
}

func TestStatusCriterionMatch(t *testing.T) {
	single := SingleStatus(404)
	assert.True(t, single.Match(404))
	assert.False(t, single.Match(405))

	r, err := StatusRange(400, 499)
	if assert.NoError(t, err) {
		assert.True(t, r.Match(400))
		assert.True(t, r.Match(499))
		assert.False(t, r.Match(399))
		assert.False(t, r.Match(500))
	}

	var zero StatusCriterion
	assert.False(t, zero.IsSet())
	assert.True(t, zero.Match(200))
}

func TestStatusRangeFilter(t *testing.T) {
	records := []parser.LogRecord{
		parser.MustNewLogRecord(1, "1.1.1.1", "GET", "/missing", 404, 0),
		parser.MustNewLogRecord(2, "1.1.1.1", "GET", "/ok", 200, 0),
	}
	var c Criteria
	if !assert.NoError(t, c.Status.Set("400-499")) {
		return
	}
	assert.Equal(t, []string{"/missing"}, urls(c.Apply(records)))
}

func TestApply(t *testing.T) {
	records := sampleRecords()
	testCases := []struct {
		c        Criteria
		expected []string
	}{
		{Criteria{}, []string{"/a", "/b", "/c", "/a", "/b"}},
		{Criteria{Method: "get"}, []string{"/a", "/c", "/b"}},
		{Criteria{Status: SingleStatus(404)}, []string{"/b", "/c"}},
		{Criteria{Start: ptr(2000)}, []string{"/b", "/c", "/a", "/b"}},
		{Criteria{End: ptr(2000)}, []string{"/a", "/b"}},
		{Criteria{Start: ptr(2000), End: ptr(4000)}, []string{"/b", "/c", "/a"}},
		{Criteria{Method: "GET", Status: SingleStatus(404), Start: ptr(1000), End: ptr(5000)}, []string{"/c"}},
		{Criteria{Method: "PUT"}, []string{}},
	}
	for _, c := range testCases {
		assert.Equal(t, c.expected, urls(c.c.Apply(records)), c.c.String())
	}
	// source is left untouched
	assert.Equal(t, []string{"/a", "/b", "/c", "/a", "/b"}, urls(records))
}

func TestApplyOrderIndependent(t *testing.T) {
	records := sampleRecords()
	status, _ := StatusRange(200, 404)
	c := Criteria{Method: "GET", Status: status, Start: ptr(1500), End: ptr(5000)}
	all := c.Apply(records)

	ps := c.Predicates()
	if !assert.Len(t, ps, 4) {
		return
	}
	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, order := range orders {
		res := records
		for _, i := range order {
			res = Select(res, ps[i])
		}
		assert.Equal(t, urls(all), urls(res), "%v", order)
	}
	assert.Equal(t, []string{"/c", "/b"}, urls(all))
}

func TestMatch(t *testing.T) {
	r := parser.MustNewLogRecord(3000, "10.0.0.1", "GET", "/c", 404, 10)
	testCases := []struct {
		c        Criteria
		expected error
	}{
		{Criteria{}, nil},
		{Criteria{Method: "POST"}, ErrMethodNoMatch},
		{Criteria{Status: SingleStatus(200)}, ErrStatusNoMatch},
		{Criteria{Start: ptr(3001)}, ErrTimeNoMatch},
		{Criteria{End: ptr(2999)}, ErrTimeNoMatch},
		{Criteria{Start: ptr(3000), End: ptr(3000)}, nil},
	}
	for _, c := range testCases {
		err := c.c.Match(r)
		if c.expected == nil {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, c.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	c := Criteria{Method: "patch"}
	assert.NoError(t, c.Validate())
	assert.Equal(t, "PATCH", c.Method)

	c = Criteria{Method: "FETCH"}
	var cerr *ConfigError
	assert.True(t, errors.As(c.Validate(), &cerr))

	c = Criteria{Start: ptr(10), End: ptr(5)}
	assert.True(t, errors.As(c.Validate(), &cerr))
	assert.Equal(t, "start", cerr.Option)

	c = Criteria{Start: ptr(5), End: ptr(5)}
	assert.NoError(t, c.Validate())
}

func TestCriteriaString(t *testing.T) {
	assert.Equal(t, "none", (&Criteria{}).String())
	c := Criteria{Method: "get", Status: SingleStatus(200), Start: ptr(1), End: ptr(2)}
	assert.Equal(t, "method=GET, status=200, start=1, end=2", c.String())
}

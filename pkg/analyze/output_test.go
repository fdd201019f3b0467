package analyze

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	a, _ := newTestAnalyzer(t, DefaultConfig())
	report, err := a.AnalyzeFile(writeFile(t, "access.log", sampleLog))
	require.NoError(t, err)
	return report
}

func TestPrintJSON(t *testing.T) {
	as := assert.New(t)
	var buf bytes.Buffer
	o, err := GetOutputter(OutputJSON)
	require.NoError(t, err)
	require.NoError(t, o.Print(&buf, sampleReport(t), OutputContext{}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	as.EqualValues(2, decoded["parsed_records"])
	as.Equal(map[string]any{"total_requests": float64(2), "unique_ips": float64(2), "total_data": float64(500)}, decoded["basic"])
	as.Equal(map[string]any{"GET": float64(50), "POST": float64(50)}, decoded["method_distribution"])
	errs, ok := decoded["parse_errors"].([]any)
	if as.True(ok) && as.Len(errs, 1) {
		as.Equal(map[string]any{"line": float64(2), "text": "not a valid line", "reason": "expected 6 fields, got 4"}, errs[0])
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, sampleReport(t), OutputContext{NoColor: true}))
	out := buf.String()
	for _, s := range []string{
		"Traffic report for",
		"Lines: 3, parsed: 2, rejected: 1, after filter: 2",
		"Top 3 IPs (by requests)",
		"10.0.0.1",
		"/b",
		"50.0%",
		"500 B",
		"Last 24 hours",
	} {
		assert.Contains(t, out, s)
	}
}

func TestGetOutputterUnknown(t *testing.T) {
	_, err := GetOutputter("xml")
	assert.Error(t, err)
}

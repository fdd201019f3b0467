package analyze

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type OutputContext struct {
	Truncate bool
	NoColor  bool
}

type Outputter interface {
	Print(w io.Writer, r *Report, ctx OutputContext) error
}

type OutputterFunc func(w io.Writer, r *Report, ctx OutputContext) error

func (f OutputterFunc) Print(w io.Writer, r *Report, ctx OutputContext) error {
	return f(w, r, ctx)
}

var outputters = map[OutputFlag]Outputter{
	OutputTable: OutputterFunc(PrintTable),
	OutputJSON:  OutputterFunc(PrintJSON),
}

func GetOutputter(name OutputFlag) (Outputter, error) {
	o, ok := outputters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return o, nil
}

func PrintJSON(w io.Writer, r *Report, _ OutputContext) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoWrap(tw.WrapNone),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithPadding(tw.Padding{
			Left:      "  ",
			Right:     "  ",
			Overwrite: true,
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
	)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := newTable(w)
	if header != nil {
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = h
		}
		table.Header(cells...)
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatBytes(n int64) string {
	return humanize.IBytes(uint64(max(n, 0)))
}

func rankingRows(items []KeyCount, truncate bool) [][]string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		key := item.Key
		if truncate {
			key = TruncateURLPath(key)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), key, humanize.Comma(int64(item.Requests)), formatBytes(item.Size),
		})
	}
	return rows
}

// PrintTable renders the human-readable report.
func PrintTable(w io.Writer, r *Report, ctx OutputContext) error {
	heading := color.New(color.Bold)
	if ctx.NoColor {
		heading.DisableColor()
	}
	section := func(title string) {
		fmt.Fprintln(w)
		heading.Fprintln(w, title)
	}

	heading.Fprintf(w, "Traffic report for %s\n", r.Source)
	fmt.Fprintf(w, "Filter: %s\n", r.Filter)
	fmt.Fprintf(w, "Lines: %s, parsed: %s, rejected: %s, after filter: %s\n",
		humanize.Comma(int64(r.Lines)), humanize.Comma(int64(r.ParsedRecords)),
		humanize.Comma(int64(len(r.ParseErrors))), humanize.Comma(int64(r.FilteredRecords)))

	section("Overview")
	if err := renderTable(w, nil, [][]string{
		{"Total requests", humanize.Comma(int64(r.Basic.TotalRequests))},
		{"Unique IPs", humanize.Comma(int64(r.Basic.UniqueIPs))},
		{"Total data", formatBytes(r.Basic.TotalData)},
	}); err != nil {
		return err
	}

	section(fmt.Sprintf("Top %d IPs (by %s)", r.TopN, r.SortBy))
	if err := renderTable(w, []string{"#", "IP", "Reqs", "Bytes"}, rankingRows(r.TopIPs, false)); err != nil {
		return err
	}

	section("HTTP methods")
	var methodRows [][]string
	for _, m := range SortedMethods(r.MethodDistribution) {
		methodRows = append(methodRows, []string{m.Method, fmt.Sprintf("%.1f%%", m.Percent)})
	}
	if err := renderTable(w, []string{"Method", "Share"}, methodRows); err != nil {
		return err
	}

	section(fmt.Sprintf("Top %d URLs (by %s)", r.TopN, r.SortBy))
	if err := renderTable(w, []string{"#", "URL", "Reqs", "Bytes"}, rankingRows(r.TopURLs, ctx.Truncate)); err != nil {
		return err
	}

	section("Status codes")
	if err := renderTable(w, nil, [][]string{
		{"2xx success", humanize.Comma(int64(r.Status.Success2xx))},
		{"4xx client errors", humanize.Comma(int64(r.Status.Errors4xx))},
		{"5xx server errors", humanize.Comma(int64(r.Status.Errors5xx))},
		{"Avg 2xx response", fmt.Sprintf("%s (%.2f B)", formatBytes(int64(r.Status.AvgResponse2xx)), r.Status.AvgResponse2xx)},
	}); err != nil {
		return err
	}

	section("Last 24 hours")
	fmt.Fprintf(w, "Unique IPs: %s\n", humanize.Comma(int64(r.LastDay.UniqueIPs)))
	var hourRows [][]string
	for _, h := range SortedHours(r.LastDay) {
		hourRows = append(hourRows, []string{fmt.Sprintf("%02d:00", h), humanize.Comma(int64(r.LastDay.RequestsPerHour[h]))})
	}
	return renderTable(w, []string{"Hour", "Reqs"}, hourRows)
}

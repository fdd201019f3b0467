package analyze

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/taoky/accesstat/pkg/filter"
	"github.com/taoky/accesstat/pkg/parser"
)

// ErrNoRecords means the input held no valid record at all.
var ErrNoRecords = errors.New("no valid records found")

type AnalyzerConfig struct {
	Filter    filter.Criteria
	LogOutput string
	NoColor   bool
	Output    OutputFlag
	Progress  bool
	SortBy    SortByFlag
	TopN      int
	Truncate  bool
	UTC       bool
}

func (c *AnalyzerConfig) InstallFlags(flags *pflag.FlagSet) {
	c.Filter.InstallFlags(flags)

	flags.StringVarP(&c.LogOutput, "outlog", "o", c.LogOutput, "Write warnings to this file instead of stderr")
	flags.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable colored output")
	flags.VarP(&c.Output, "output", "O", "Report format (table|json)")
	flags.BoolVar(&c.Progress, "progress", c.Progress, "Show a progress bar while reading")
	flags.VarP(&c.SortBy, "sort-by", "S", "Rank top IPs and URLs by (requests|size)")
	flags.IntVarP(&c.TopN, "top", "n", c.TopN, "Number of top items to show")
	flags.BoolVar(&c.Truncate, "truncate", c.Truncate, "Truncate long URLs in the table output")
	flags.BoolVar(&c.UTC, "utc", c.UTC, "Use UTC instead of local time for hours of day")
}

func DefaultConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Output: OutputTable,
		SortBy: SortByRequests,
		TopN:   3,
	}
}

func (c *AnalyzerConfig) Validate() error {
	if c.TopN < 1 {
		return &filter.ConfigError{Option: "top", Value: strconv.Itoa(c.TopN), Reason: "must be at least 1"}
	}
	return c.Filter.Validate()
}

func (c *AnalyzerConfig) Location() *time.Location {
	if c.UTC {
		return time.UTC
	}
	return time.Local
}

// Analyzer runs the read, parse, filter and analyze steps for one input.
type Analyzer struct {
	Config AnalyzerConfig

	logger      *log.Logger
	logFile     *os.File
	warnPrefix  string
	progressOut io.Writer
}

// NewAnalyzer validates c. Diagnostics go to diag unless c.LogOutput is set.
func NewAnalyzer(c AnalyzerConfig, diag io.Writer) (*Analyzer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		Config:      c,
		logger:      log.New(diag, "", 0),
		progressOut: diag,
	}
	if err := a.redirectWarnings(); err != nil {
		return nil, fmt.Errorf("open warning log %s: %w", c.LogOutput, err)
	}

	warn := color.New(color.FgYellow, color.Bold)
	if c.NoColor || c.LogOutput != "" {
		warn.DisableColor()
	}
	a.warnPrefix = warn.Sprint("warning:")
	return a, nil
}

// redirectWarnings appends warnings to Config.LogOutput when it is set.
// The file stays open until Close.
func (a *Analyzer) redirectWarnings() error {
	if a.Config.LogOutput == "" {
		return nil
	}
	f, err := os.OpenFile(a.Config.LogOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	a.logFile = f
	a.logger.SetOutput(f)
	return nil
}

// Close releases the warning log file, if any. Later warnings are dropped.
func (a *Analyzer) Close() error {
	if a.logFile == nil {
		return nil
	}
	a.logger.SetOutput(io.Discard)
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// Warn logs rejected lines in the order given.
func (a *Analyzer) Warn(errs []parser.ParseError) {
	for _, e := range errs {
		a.logger.Printf("%s line %d: %s: %q", a.warnPrefix, e.Line, e.Reason, e.Text)
	}
}

// AnalyzeFile reads the whole file, then reports rejected lines, filters
// and computes statistics. A read failure returns no report. When no line
// was valid the partial report comes back with ErrNoRecords.
func (a *Analyzer) AnalyzeFile(filename string) (*Report, error) {
	res, err := a.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	a.Warn(res.Errors)
	return a.Analyze(filename, res)
}

func (a *Analyzer) Analyze(source string, res *parser.Result) (*Report, error) {
	report := &Report{
		Source:        source,
		Filter:        a.Config.Filter.String(),
		TopN:          a.Config.TopN,
		SortBy:        a.Config.SortBy,
		Lines:         res.Lines,
		ParsedRecords: len(res.Records),
		ParseErrors:   res.Errors,
	}
	if report.ParseErrors == nil {
		report.ParseErrors = []parser.ParseError{}
	}
	if len(res.Records) == 0 {
		return report, fmt.Errorf("%w in %s", ErrNoRecords, source)
	}

	records := a.Config.Filter.Apply(res.Records)
	NewTrafficAnalyzer(records, a.Config.Location()).Fill(report)
	return report, nil
}

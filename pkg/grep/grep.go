package grep

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/pflag"
	"github.com/taoky/accesstat/pkg/fileiter"
	"github.com/taoky/accesstat/pkg/filter"
	"github.com/taoky/accesstat/pkg/parser"
	"github.com/taoky/accesstat/pkg/util"
)

// Grepper writes the lines whose records pass the filter, unchanged.
type Grepper struct {
	f      *filter.Criteria
	out    io.Writer
	logger *log.Logger

	Matched int
}

type GrepperConfig struct {
	f *filter.Criteria
	// Quiet suppresses warnings about rejected lines.
	Quiet bool
}

func DefaultConfig() GrepperConfig {
	return GrepperConfig{
		f: &filter.Criteria{},
	}
}

func (c *GrepperConfig) InstallFlags(flags *pflag.FlagSet) {
	c.f.InstallFlags(flags)

	flags.BoolVarP(&c.Quiet, "quiet", "q", c.Quiet, "Do not warn about rejected lines")
}

func New(c GrepperConfig, w, diag io.Writer) (*Grepper, error) {
	if err := c.f.Validate(); err != nil {
		return nil, err
	}
	if c.Quiet {
		diag = io.Discard
	}
	return &Grepper{
		f:      c.f,
		out:    w,
		logger: log.New(diag, "", 0),
	}, nil
}

func (g *Grepper) IsEmpty() bool {
	return g.f.IsEmpty()
}

// RunLoop copies matching lines of iter to the output. Rejected lines are
// warned about and skipped; a failed write stops the loop.
func (g *Grepper) RunLoop(iter fileiter.Iterator, name string) error {
	for lineNo := 1; ; lineNo++ {
		line, err := iter.Next()
		if errors.Is(err, fileiter.ErrLineTooLong) {
			g.logger.Printf("warning: %s:%d: %v: %q...", name, lineNo, err, line)
			continue
		}
		if err != nil {
			return err
		}
		if line == nil {
			break
		}
		ok, err := g.match(line)
		if err != nil {
			g.logger.Printf("warning: %s:%d: %v", name, lineNo, err)
			continue
		}
		if !ok {
			continue
		}
		g.Matched++
		if err := g.emit(line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func (g *Grepper) GrepFile(filename string) error {
	f, err := util.OpenFile(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.RunLoop(fileiter.NewWithReader(f), filename)
}

func (g *Grepper) match(line []byte) (bool, error) {
	record, err := parser.ParseLine(line)
	if errors.Is(err, parser.ErrEmptyLine) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %q", err, line)
	}
	return g.f.Match(record) == nil, nil
}

func (g *Grepper) emit(line []byte) error {
	if _, err := g.out.Write(line); err != nil {
		return err
	}
	_, err := g.out.Write([]byte{'\n'})
	return err
}

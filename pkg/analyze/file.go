package analyze

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/taoky/accesstat/pkg/parser"
	"github.com/taoky/accesstat/pkg/util"
)

func (a *Analyzer) newProgressBar(filename string) *progressbar.ProgressBar {
	size := int64(-1)
	// Compressed input has no known uncompressed size
	if !util.IsCompressed(filename) {
		if fi, err := os.Stat(filename); err == nil {
			size = fi.Size()
		}
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(a.progressOut),
		progressbar.OptionSetDescription(filepath.Base(filename)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

// ParseFile reads and parses the whole file. The file is closed on every
// path; any open, read or close failure is fatal.
func (a *Analyzer) ParseFile(filename string) (res *parser.Result, err error) {
	f, err := util.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			res, err = nil, fmt.Errorf("close log file: %w", cerr)
		}
	}()

	var r io.Reader = f
	if a.Config.Progress {
		bar := a.newProgressBar(filename)
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	res, err = parser.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return res, nil
}

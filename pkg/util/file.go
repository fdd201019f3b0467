package util

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type filteredReader struct {
	cmd *exec.Cmd
	r   io.ReadCloser
}

func (fr *filteredReader) Read(p []byte) (n int, err error) {
	return fr.r.Read(p)
}

func (fr *filteredReader) Close() error {
	return errors.Join(fr.r.Close(), fr.cmd.Wait())
}

func filterByCommand(r io.Reader, args []string) (io.ReadCloser, error) {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = r
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &filteredReader{cmd: cmd, r: stdout}, nil
}

// decodedReader closes both the decoder and the underlying file.
type decodedReader struct {
	io.Reader
	closers []func() error
}

func (d *decodedReader) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

type filterFunc func(f *os.File) (io.ReadCloser, error)

var fileTypes = map[string]filterFunc{
	".gz": func(f *os.File) (io.ReadCloser, error) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &decodedReader{Reader: zr, closers: []func() error{zr.Close, f.Close}}, nil
	},
	".zst": func(f *os.File) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &decodedReader{Reader: zr, closers: []func() error{
			func() error { zr.Close(); return nil },
			f.Close,
		}}, nil
	},
	".xz": func(f *os.File) (io.ReadCloser, error) {
		fr, err := filterByCommand(f, []string{"xz", "-cd", "-T", "0"})
		if err != nil {
			return nil, err
		}
		return &decodedReader{Reader: fr, closers: []func() error{fr.Close, f.Close}}, nil
	},
}

func IsCompressed(filename string) bool {
	_, ok := fileTypes[filepath.Ext(filename)]
	return ok
}

// OpenFile opens filename, decompressing .gz, .zst and .xz transparently.
// Closing the result releases the file.
func OpenFile(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if filter, ok := fileTypes[filepath.Ext(filename)]; ok {
		r, err := filter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return r, nil
	}
	return f, nil
}

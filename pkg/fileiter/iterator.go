package fileiter

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"slices"
)

// MaxLineSize is the longest line Next returns in full.
const MaxLineSize = 1024 * 1024

// headSize bounds the part of an over-long line kept for diagnostics.
const headSize = 64

// ErrLineTooLong is returned together with the head of a line longer than
// MaxLineSize. The rest of that line is skipped and iteration may continue.
var ErrLineTooLong = errors.New("line too long")

// Iterator yields lines without their terminator. Next returns a nil line
// and a nil error at the end of input. The returned slice is only valid
// until the next call.
type Iterator interface {
	Next() ([]byte, error)
}

type readerIterator struct {
	r    *bufio.Reader
	done bool
}

func NewWithReader(r io.Reader) Iterator {
	return &readerIterator{r: bufio.NewReaderSize(r, MaxLineSize)}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

func (it *readerIterator) Next() ([]byte, error) {
	if it.done {
		return nil, nil
	}
	line, err := it.r.ReadSlice('\n')
	switch {
	case err == nil:
		return trimEOL(line), nil
	case errors.Is(err, bufio.ErrBufferFull):
		head := slices.Clone(line[:min(len(line), headSize)])
		if err := it.skipLine(); err != nil {
			return nil, err
		}
		return head, ErrLineTooLong
	case errors.Is(err, io.EOF):
		it.done = true
		if len(line) == 0 {
			return nil, nil
		}
		return trimEOL(line), nil
	default:
		return nil, err
	}
}

func (it *readerIterator) skipLine() error {
	for {
		_, err := it.r.ReadSlice('\n')
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			it.done = true
			return nil
		default:
			return err
		}
	}
}

type sliceIterator struct {
	lines []string
	pos   int
}

// NewWithLines iterates over in-memory lines.
func NewWithLines(lines []string) Iterator {
	return &sliceIterator{lines: lines}
}

func (s *sliceIterator) Next() ([]byte, error) {
	if s.pos >= len(s.lines) {
		return nil, nil
	}
	line := s.lines[s.pos]
	s.pos++
	if len(line) > MaxLineSize {
		return []byte(line[:headSize]), ErrLineTooLong
	}
	return []byte(line), nil
}

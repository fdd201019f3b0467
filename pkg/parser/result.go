package parser

import (
	"errors"
	"io"

	"github.com/taoky/accesstat/pkg/fileiter"
)

// Result holds the records of one input in file order, and the lines that
// were rejected, in line order.
type Result struct {
	Records []LogRecord
	Errors  []ParseError
	Lines   int
}

func (r *Result) add(lineNo int, line []byte) {
	record, err := ParseLine(line)
	if err == nil {
		r.Records = append(r.Records, record)
		return
	}
	if errors.Is(err, ErrEmptyLine) {
		return
	}
	r.Errors = append(r.Errors, ParseError{
		Line:   lineNo,
		Text:   string(line),
		Reason: err.Error(),
	})
}

// Parse consumes iter until exhaustion. Per-line failures, over-long lines
// included, are collected in the result; any other iterator error aborts and
// no partial result is returned.
func Parse(iter fileiter.Iterator) (*Result, error) {
	res := &Result{}
	for {
		line, err := iter.Next()
		if errors.Is(err, fileiter.ErrLineTooLong) {
			res.Lines++
			res.Errors = append(res.Errors, ParseError{
				Line:   res.Lines,
				Text:   string(line) + "...",
				Reason: err.Error(),
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		if line == nil {
			break
		}
		res.Lines++
		res.add(res.Lines, line)
	}
	return res, nil
}

func ParseReader(r io.Reader) (*Result, error) {
	return Parse(fileiter.NewWithReader(r))
}

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ParseError is a rejected input line. Line is 1-based.
type ParseError struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseLine converts a single line into a record. Blank lines yield
// ErrEmptyLine; any other failure is returned as a plain error whose message
// is the rejection reason.
func ParseLine(line []byte) (LogRecord, error) {
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return LogRecord{}, ErrEmptyLine
	}
	if len(fields) != FieldCount {
		return LogRecord{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}

	timestamp, err := parseInt(fields[0], "timestamp")
	if err != nil {
		return LogRecord{}, err
	}
	status, err := parseInt(fields[4], "status_code")
	if err != nil {
		return LogRecord{}, err
	}
	size, err := parseInt(fields[5], "response_size")
	if err != nil {
		return LogRecord{}, err
	}
	return NewLogRecord(timestamp, string(fields[1]), string(fields[2]), string(fields[3]), int(status), size)
}

func parseInt(field []byte, name string) (int64, error) {
	v, err := strconv.ParseInt(string(field), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("invalid %s %q: out of range", name, field)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not an integer", name, field)
	}
	return v, nil
}

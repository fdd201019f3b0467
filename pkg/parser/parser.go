package parser

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// FieldCount is the number of whitespace separated fields in an access log line:
// timestamp ip_address http_method url status_code response_size
const FieldCount = 6

// Methods lists the accepted HTTP methods, in display order.
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// ErrEmptyLine is returned by ParseLine for blank lines, which are skipped silently.
var ErrEmptyLine = errors.New("empty line")

func IsValidMethod(method string) bool {
	return slices.Contains(Methods, method)
}

// LogRecord is one validated request. The zero value is not a valid record;
// use NewLogRecord.
type LogRecord struct {
	timestamp    int64
	ip           string
	method       string
	url          string
	status       int
	responseSize int64
}

func (r LogRecord) Timestamp() int64    { return r.timestamp }
func (r LogRecord) IP() string          { return r.ip }
func (r LogRecord) Method() string      { return r.method }
func (r LogRecord) URL() string         { return r.url }
func (r LogRecord) Status() int         { return r.status }
func (r LogRecord) ResponseSize() int64 { return r.responseSize }

// Time returns the timestamp in loc. A nil loc means time.Local.
func (r LogRecord) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(r.timestamp, 0).In(loc)
}

// Fields returns the six fields in log order, as they would appear in a line.
func (r LogRecord) Fields() []string {
	return []string{
		fmt.Sprint(r.timestamp),
		r.ip,
		r.method,
		r.url,
		fmt.Sprint(r.status),
		fmt.Sprint(r.responseSize),
	}
}

func (r LogRecord) String() string {
	return fmt.Sprintf("%d %s %s %s %d %d", r.timestamp, r.ip, r.method, r.url, r.status, r.responseSize)
}

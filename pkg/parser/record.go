package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError names the first field of a candidate record that breaks its constraint.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

// NewLogRecord validates the candidate fields and returns a record, or a
// *ValidationError for the first violated constraint. The method is
// uppercased before validation. Checks run in a fixed order: timestamp,
// IP format, IP octet range, method, URL, status code, response size.
func NewLogRecord(timestamp int64, ip, method, url string, status int, responseSize int64) (LogRecord, error) {
	method = strings.ToUpper(method)

	if timestamp < 0 {
		return LogRecord{}, &ValidationError{"timestamp", timestamp, "must not be negative"}
	}
	octets, ok := splitIPv4(ip)
	if !ok {
		return LogRecord{}, &ValidationError{"ip_address", ip, "expected 4 dot-separated decimal octets"}
	}
	for _, o := range octets {
		if o > 255 {
			return LogRecord{}, &ValidationError{"ip_address", ip, "octet out of range 0-255"}
		}
	}
	if !IsValidMethod(method) {
		return LogRecord{}, &ValidationError{"http_method", method, "must be one of " + strings.Join(Methods, ", ")}
	}
	if !strings.HasPrefix(url, "/") {
		return LogRecord{}, &ValidationError{"url", url, `must start with "/"`}
	}
	if status < 100 || status > 599 {
		return LogRecord{}, &ValidationError{"status_code", status, "must be within 100-599"}
	}
	if responseSize < 0 {
		return LogRecord{}, &ValidationError{"response_size", responseSize, "must not be negative"}
	}

	return LogRecord{
		timestamp:    timestamp,
		ip:           ip,
		method:       method,
		url:          url,
		status:       status,
		responseSize: responseSize,
	}, nil
}

// MustNewLogRecord is like NewLogRecord but panics on invalid input.
func MustNewLogRecord(timestamp int64, ip, method, url string, status int, responseSize int64) LogRecord {
	r, err := NewLogRecord(timestamp, ip, method, url, status, responseSize)
	if err != nil {
		panic(err)
	}
	return r
}

// splitIPv4 checks the dotted-quad shape only; range is checked by the caller
// so the two failures report differently.
func splitIPv4(s string) ([4]int, bool) {
	var octets [4]int
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return octets, false
	}
	for i, p := range parts {
		if len(p) == 0 || len(p) > 3 {
			return octets, false
		}
		for j := 0; j < len(p); j++ {
			if p[j] < '0' || p[j] > '9' {
				return octets, false
			}
		}
		octets[i], _ = strconv.Atoi(p)
	}
	return octets, true
}

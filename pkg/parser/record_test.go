package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogRecord(t *testing.T) {
	as := assert.New(t)
	r, err := NewLogRecord(1000, "10.0.0.1", "get", "/a", 200, 500)
	if !as.NoError(err) {
		return
	}
	as.EqualValues(1000, r.Timestamp())
	as.Equal("10.0.0.1", r.IP())
	as.Equal("GET", r.Method())
	as.Equal("/a", r.URL())
	as.Equal(200, r.Status())
	as.EqualValues(500, r.ResponseSize())
}

func TestNewLogRecordBounds(t *testing.T) {
	valid := []struct {
		ip     string
		status int
	}{
		{"0.0.0.0", 100},
		{"255.255.255.255", 599},
		{"192.168.001.1", 404},
	}
	for _, c := range valid {
		_, err := NewLogRecord(0, c.ip, "HEAD", "/", c.status, 0)
		assert.NoError(t, err, "%s %d", c.ip, c.status)
	}
}

func TestNewLogRecordRejects(t *testing.T) {
	type testCase struct {
		timestamp int64
		ip        string
		method    string
		url       string
		status    int
		size      int64
		field     string
		reason    string
	}
	testCases := []testCase{
		{-1, "1.2.3.4", "GET", "/", 200, 0, "timestamp", "must not be negative"},
		{0, "1.2.3", "GET", "/", 200, 0, "ip_address", "expected 4 dot-separated decimal octets"},
		{0, "1.2.3.4.5", "GET", "/", 200, 0, "ip_address", "expected 4 dot-separated decimal octets"},
		{0, ".1.2.3", "GET", "/", 200, 0, "ip_address", "expected 4 dot-separated decimal octets"},
		{0, "1.2.3.4.", "GET", "/", 200, 0, "ip_address", "expected 4 dot-separated decimal octets"},
		{0, "1.2.3.a", "GET", "/", 200, 0, "ip_address", "expected 4 dot-separated decimal octets"},
		{0, "1.2.3.1000", "GET", "/", 200, 0, "ip_address", "expected 4 dot-separated decimal octets"},
		{0, "1.2.3.256", "GET", "/", 200, 0, "ip_address", "octet out of range 0-255"},
		{0, "1.2.3.4", "FETCH", "/", 200, 0, "http_method", "must be one of GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS"},
		{0, "1.2.3.4", "GET", "index.html", 200, 0, "url", `must start with "/"`},
		{0, "1.2.3.4", "GET", "/", 99, 0, "status_code", "must be within 100-599"},
		{0, "1.2.3.4", "GET", "/", 600, 0, "status_code", "must be within 100-599"},
		{0, "1.2.3.4", "GET", "/", 200, -1, "response_size", "must not be negative"},
	}
	for _, c := range testCases {
		_, err := NewLogRecord(c.timestamp, c.ip, c.method, c.url, c.status, c.size)
		var verr *ValidationError
		if assert.True(t, errors.As(err, &verr), "%+v", c) {
			assert.Equal(t, c.field, verr.Field)
			assert.Equal(t, c.reason, verr.Reason)
		}
	}
}

func TestNewLogRecordCheckOrder(t *testing.T) {
	// every field is invalid: the timestamp is reported first
	_, err := NewLogRecord(-5, "999.1", "nope", "x", 1, -1)
	assert.EqualError(t, err, `invalid timestamp "-5": must not be negative`)

	_, err = NewLogRecord(5, "300.1.1.1", "nope", "x", 1, -1)
	assert.EqualError(t, err, `invalid ip_address "300.1.1.1": octet out of range 0-255`)

	_, err = NewLogRecord(5, "1.1.1.1", "nope", "x", 1, -1)
	assert.EqualError(t, err, `invalid http_method "NOPE": must be one of GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS`)

	_, err = NewLogRecord(5, "1.1.1.1", "put", "x", 1, -1)
	assert.EqualError(t, err, `invalid url "x": must start with "/"`)

	_, err = NewLogRecord(5, "1.1.1.1", "put", "/x", 1, -1)
	assert.EqualError(t, err, `invalid status_code "1": must be within 100-599`)

	_, err = NewLogRecord(5, "1.1.1.1", "put", "/x", 201, -1)
	assert.EqualError(t, err, `invalid response_size "-1": must not be negative`)
}

func TestMustNewLogRecord(t *testing.T) {
	assert.Panics(t, func() { MustNewLogRecord(0, "1.1.1.1", "GET", "", 200, 0) })
	assert.NotPanics(t, func() { MustNewLogRecord(0, "1.1.1.1", "GET", "/", 200, 0) })
}

package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taoky/accesstat/pkg/parser"
)

// ConfigError is an unusable filter setting. It is raised before any
// record is looked at.
type ConfigError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid --%s %q: %s", e.Option, e.Value, e.Reason)
}

var (
	ErrMethodNoMatch = errors.New("method does not match")
	ErrStatusNoMatch = errors.New("status does not match")
	ErrTimeNoMatch   = errors.New("time does not match")
)

// Criteria narrows a record set. Unset criteria do not constrain; set ones
// are combined with AND.
type Criteria struct {
	Method string
	Status StatusCriterion
	Start  *int64
	End    *int64
}

func (c *Criteria) IsEmpty() bool {
	return c.Method == "" && !c.Status.IsSet() && c.Start == nil && c.End == nil
}

// Validate normalizes the method and checks the combination.
func (c *Criteria) Validate() error {
	if c.Method != "" {
		c.Method = strings.ToUpper(c.Method)
		if !parser.IsValidMethod(c.Method) {
			return &ConfigError{Option: "method", Value: c.Method, Reason: "must be one of " + strings.Join(parser.Methods, ", ")}
		}
	}
	if c.Start != nil && c.End != nil && *c.Start > *c.End {
		return &ConfigError{
			Option: "start",
			Value:  strconv.FormatInt(*c.Start, 10),
			Reason: fmt.Sprintf("start is after end (%d)", *c.End),
		}
	}
	return nil
}

// Match returns nil when the record passes every set criterion, or the
// reason for the first one it fails.
func (c *Criteria) Match(r parser.LogRecord) error {
	if c.Method != "" && r.Method() != strings.ToUpper(c.Method) {
		return ErrMethodNoMatch
	}
	if !c.Status.Match(r.Status()) {
		return ErrStatusNoMatch
	}
	if c.Start != nil && r.Timestamp() < *c.Start {
		return ErrTimeNoMatch
	}
	if c.End != nil && r.Timestamp() > *c.End {
		return ErrTimeNoMatch
	}
	return nil
}

// Predicate reports whether a record is kept.
type Predicate func(parser.LogRecord) bool

// Predicates splits the criteria into one predicate per set dimension.
func (c *Criteria) Predicates() []Predicate {
	var ps []Predicate
	if c.Method != "" {
		method := strings.ToUpper(c.Method)
		ps = append(ps, func(r parser.LogRecord) bool { return r.Method() == method })
	}
	if c.Status.IsSet() {
		status := c.Status
		ps = append(ps, func(r parser.LogRecord) bool { return status.Match(r.Status()) })
	}
	if c.Start != nil {
		start := *c.Start
		ps = append(ps, func(r parser.LogRecord) bool { return r.Timestamp() >= start })
	}
	if c.End != nil {
		end := *c.End
		ps = append(ps, func(r parser.LogRecord) bool { return r.Timestamp() <= end })
	}
	return ps
}

// And combines predicates; no predicates accepts everything.
func And(ps ...Predicate) Predicate {
	return func(r parser.LogRecord) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Select returns the records accepted by p, in their original order, in a new slice.
func Select(records []parser.LogRecord, p Predicate) []parser.LogRecord {
	res := make([]parser.LogRecord, 0, len(records))
	for _, r := range records {
		if p(r) {
			res = append(res, r)
		}
	}
	return res
}

// Apply returns the records matching c. With no criteria set the input is
// returned unchanged.
func (c *Criteria) Apply(records []parser.LogRecord) []parser.LogRecord {
	if c.IsEmpty() {
		return records
	}
	return Select(records, And(c.Predicates()...))
}

func (c *Criteria) String() string {
	if c.IsEmpty() {
		return "none"
	}
	var parts []string
	if c.Method != "" {
		parts = append(parts, "method="+strings.ToUpper(c.Method))
	}
	if c.Status.IsSet() {
		parts = append(parts, "status="+c.Status.String())
	}
	if c.Start != nil {
		parts = append(parts, "start="+strconv.FormatInt(*c.Start, 10))
	}
	if c.End != nil {
		parts = append(parts, "end="+strconv.FormatInt(*c.End, 10))
	}
	return strings.Join(parts, ", ")
}

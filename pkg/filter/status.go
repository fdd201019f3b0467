package filter

import (
	"fmt"
	"strconv"
	"strings"
)

type statusMode int

const (
	statusAny statusMode = iota
	statusSingle
	statusRange
)

// StatusCriterion matches either one status code or an inclusive range.
// The zero value matches everything.
type StatusCriterion struct {
	mode   statusMode
	lo, hi int
}

func SingleStatus(code int) StatusCriterion {
	return StatusCriterion{mode: statusSingle, lo: code, hi: code}
}

func StatusRange(lo, hi int) (StatusCriterion, error) {
	if lo > hi {
		return StatusCriterion{}, &ConfigError{
			Option: "status",
			Value:  fmt.Sprintf("%d-%d", lo, hi),
			Reason: "range start is greater than end",
		}
	}
	return StatusCriterion{mode: statusRange, lo: lo, hi: hi}, nil
}

// ParseStatus accepts "404" or "400-499".
func ParseStatus(s string) (StatusCriterion, error) {
	lo, hi, isRange := strings.Cut(s, "-")
	if !isRange {
		code, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return StatusCriterion{}, &ConfigError{Option: "status", Value: s, Reason: "not an integer"}
		}
		return SingleStatus(code), nil
	}
	if strings.Contains(hi, "-") {
		return StatusCriterion{}, &ConfigError{Option: "status", Value: s, Reason: "range must have exactly one '-'"}
	}
	loCode, err1 := strconv.Atoi(strings.TrimSpace(lo))
	hiCode, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil {
		return StatusCriterion{}, &ConfigError{Option: "status", Value: s, Reason: "range bounds must be integers"}
	}
	return StatusRange(loCode, hiCode)
}

func (c StatusCriterion) IsSet() bool {
	return c.mode != statusAny
}

func (c StatusCriterion) Match(status int) bool {
	switch c.mode {
	case statusSingle:
		return status == c.lo
	case statusRange:
		return c.lo <= status && status <= c.hi
	}
	return true
}

func (c StatusCriterion) String() string {
	switch c.mode {
	case statusSingle:
		return strconv.Itoa(c.lo)
	case statusRange:
		return fmt.Sprintf("%d-%d", c.lo, c.hi)
	}
	return ""
}

// Set and Type make a *StatusCriterion usable as a pflag.Value.
func (c *StatusCriterion) Set(value string) error {
	parsed, err := ParseStatus(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *StatusCriterion) Type() string {
	return "status"
}

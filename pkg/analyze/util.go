package analyze

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

type SortByFlag string

const (
	SortByRequests SortByFlag = "requests"
	SortBySize     SortByFlag = "size"
)

func (s SortByFlag) String() string {
	return string(s)
}

func (s *SortByFlag) Set(value string) error {
	switch value {
	case "requests", "reqs":
		*s = SortByRequests
	case "size", "bytes":
		*s = SortBySize
	default:
		return errors.New(`must be one of "requests" or "size"`)
	}
	return nil
}

func (s SortByFlag) Type() string {
	return "string"
}

type OutputFlag string

const (
	OutputTable OutputFlag = "table"
	OutputJSON  OutputFlag = "json"
)

func (o OutputFlag) String() string {
	return string(o)
}

func (o *OutputFlag) Set(value string) error {
	if _, ok := outputters[OutputFlag(value)]; !ok {
		return errors.New(`must be one of "table" or "json"`)
	}
	*o = OutputFlag(value)
	return nil
}

func (o OutputFlag) Type() string {
	return "string"
}

// TruncateURLPath keeps the first and the last path segment of long URLs
// and hides the query string.
func TruncateURLPath(input string) string {
	p, _, hasQuery := strings.Cut(input, "?")
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	args := ""
	if hasQuery {
		args = "?..."
	}

	segments := strings.Split(strings.Trim(cleaned, "/"), "/")
	if len(segments) <= 2 {
		return cleaned + args
	}
	last := segments[len(segments)-1]
	if strings.HasSuffix(cleaned, "/") {
		last += "/"
	}
	return fmt.Sprintf("/%s/.../%s%s", segments[0], last, args)
}

package filter

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102150405",
}

var errBadTime = errors.New("expected epoch seconds or a date/time")

// ParseTimestamp accepts epoch seconds or one of timeFormats, the latter
// read in local time unless the layout carries a zone. A 14 digit number
// is taken as a compact date, not as epoch seconds.
func ParseTimestamp(value string) (int64, error) {
	if ts, err := strconv.ParseInt(value, 10, 64); err == nil && len(value) != len("20060102150405") {
		return ts, nil
	}
	for _, layout := range timeFormats {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, errBadTime
}

func (c *Criteria) InstallFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Method, "method", "m", c.Method, "Only keep requests with this HTTP method")
	flags.VarP(&c.Status, "status", "s", `Only keep this status code or inclusive range (e.g. "404" or "400-499")`)
	flags.Func("start", "Only keep requests at or after this time (epoch seconds or date/time)", func(value string) error {
		ts, err := ParseTimestamp(value)
		if err != nil {
			return err
		}
		c.Start = &ts
		return nil
	})
	flags.Func("end", "Only keep requests at or before this time (epoch seconds or date/time)", func(value string) error {
		ts, err := ParseTimestamp(value)
		if err != nil {
			return err
		}
		c.End = &ts
		return nil
	})
}

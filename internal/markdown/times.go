package markdown

import (
	"fmt"
	"strings"
	"time"
)

// timeLayouts enumerates the ISO-8601-like formats observed in corpus front
// matter, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime interprets a front-matter timestamp string. It accepts RFC3339
// and the date-only and space-separated variants that appear across the
// corpus. Empty input yields a zero time without error.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("markdown: unrecognised timestamp %q", value)
}

// timeFromAny coerces the YAML-decoded value of a date field. yaml decodes
// unquoted timestamps into strings or time.Time depending on the node shape.
func timeFromAny(value any) (time.Time, string, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, "", nil
	case time.Time:
		return v, v.Format(time.RFC3339), nil
	case string:
		ts, err := ParseTime(v)
		return ts, v, err
	default:
		raw := fmt.Sprint(v)
		ts, err := ParseTime(raw)
		return ts, raw, err
	}
}

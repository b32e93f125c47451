// Package interval renders elapsed time as compact English, e.g. "2 hours, 5 minutes".
package interval

import (
	"strconv"
	"strings"
	"time"
)

// DefaultGranularity is the number of units FormatDefault emits.
const DefaultGranularity = 2

type unit struct {
	name    string
	seconds int64
}

var units = [...]unit{
	{"weeks", 604800},
	{"days", 86400},
	{"hours", 3600},
	{"minutes", 60},
	{"seconds", 1},
}

// Format decomposes totalSeconds into weeks, days, hours, minutes and seconds
// and joins the first granularity nonzero parts with ", ". Unit names are
// singular for a count of one. Zero, negative input and a granularity below
// one all yield "".
func Format(totalSeconds int64, granularity int) string {
	if totalSeconds <= 0 || granularity <= 0 {
		return ""
	}

	parts := make([]string, 0, min(granularity, len(units)))
	left := totalSeconds
	for _, u := range units {
		if len(parts) == granularity {
			break
		}
		n := left / u.seconds
		if n == 0 {
			continue
		}
		left -= n * u.seconds
		name := u.name
		if n == 1 {
			name = strings.TrimSuffix(name, "s")
		}
		parts = append(parts, strconv.FormatInt(n, 10)+" "+name)
	}
	return strings.Join(parts, ", ")
}

// FormatDefault is Format with DefaultGranularity.
func FormatDefault(totalSeconds int64) string {
	return Format(totalSeconds, DefaultGranularity)
}

// Duration formats d truncated to whole seconds.
func Duration(d time.Duration, granularity int) string {
	return Format(int64(d/time.Second), granularity)
}

// Package dates parses the date and time arguments accepted on the
// command line: compact yyyyMMdd dates, HHmmss or H:m:s clock times,
// and relative day presets.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Ymd is a calendar date from an 8-digit yyyyMMdd string.
type Ymd struct {
	Year  int
	Month time.Month
	Day   int
}

// Hms is a wall-clock time.
type Hms struct {
	Hour   int
	Minute int
	Second int
}

var (
	ymdPattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	hmsPattern = regexp.MustCompile(`^(?:(\d{2})(\d{2})(\d{2})|(\d{1,2})[:](\d{1,2})[:](\d{1,2}))$`)
)

// DateError reports date text that is malformed, out of range, or
// names a day missing from the calendar.
type DateError struct {
	Text string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q, want yyyyMMdd between 19000101 and 29991231", e.Text)
}

// TimeError reports clock-time text that is malformed or out of range.
type TimeError struct {
	Text string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("invalid time %q, want HHmmss or H:m:s", e.Text)
}

// ParseYmd parses an 8-digit date. Years run 1900-2999 and the date
// must exist on the calendar, so 20190229 is rejected.
func ParseYmd(s string) (Ymd, error) {
	m := ymdPattern.FindStringSubmatch(s)
	if m == nil {
		return Ymd{}, &DateError{Text: s}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if year < 1900 || year > 2999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Ymd{}, &DateError{Text: s}
	}
	// time.Date normalizes day overflow into the next month.
	if norm := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC); norm.Day() != day {
		return Ymd{}, &DateError{Text: s}
	}
	return Ymd{Year: year, Month: time.Month(month), Day: day}, nil
}

// ParseHms parses a clock time, either six compact digits or three
// colon-separated fields.
func ParseHms(s string) (Hms, error) {
	m := hmsPattern.FindStringSubmatch(s)
	if m == nil {
		return Hms{}, &TimeError{Text: s}
	}
	hourText, minText, secText := m[1], m[2], m[3]
	if hourText == "" {
		hourText, minText, secText = m[4], m[5], m[6]
	}
	hour, _ := strconv.Atoi(hourText)
	min, _ := strconv.Atoi(minText)
	sec, _ := strconv.Atoi(secText)
	if hour > 23 || min > 59 || sec > 59 {
		return Hms{}, &TimeError{Text: s}
	}
	return Hms{Hour: hour, Minute: min, Second: sec}, nil
}

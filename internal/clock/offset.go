package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Offset is a fixed UTC offset. The zero value is UTC itself.
type Offset struct {
	seconds int
}

var offsetPattern = regexp.MustCompile(`^([-+])?(?:(\d{2})(\d{2})|(\d{1,2})(?:[:](\d{1,2}))?)$`)

// OffsetError reports offset text that cannot be parsed.
type OffsetError struct {
	Text string
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("invalid UTC offset %q, want forms like +9, -0530 or +5:45", e.Text)
}

// ParseOffset parses a UTC offset written as HHMM, H, or H:M with an
// optional sign. Hours run 0-23 and minutes 0-59; a bare "100" is
// rejected as ambiguous between 1:00 and 10:0.
func ParseOffset(s string) (Offset, error) {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return Offset{}, &OffsetError{Text: s}
	}
	hourText, minText := m[2], m[3]
	if hourText == "" {
		hourText, minText = m[4], m[5]
	}
	hours, _ := strconv.Atoi(hourText)
	minutes := 0
	if minText != "" {
		minutes, _ = strconv.Atoi(minText)
	}
	if hours > 23 || minutes > 59 {
		return Offset{}, &OffsetError{Text: s}
	}
	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return Offset{seconds: seconds}, nil
}

// Seconds returns the offset east of UTC in seconds.
func (o Offset) Seconds() int {
	return o.seconds
}

// String formats the offset as +HH:MM.
func (o Offset) String() string {
	sign, s := "+", o.seconds
	if s < 0 {
		sign, s = "-", -s
	}
	return fmt.Sprintf("%s%02d:%02d", sign, s/3600, s%3600/60)
}

// Location returns a fixed zone named after the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), o.seconds)
}

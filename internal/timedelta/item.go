package timedelta

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/aidanlsb/epoch/internal/timeunit"
)

// Item is a single signed quantity of one calendar unit, parsed from
// compact text such as "+2mon" or "-10d".
type Item struct {
	Unit  timeunit.Unit
	Value int32
}

var itemPattern = regexp.MustCompile(`^([-+]?\d+)([a-zA-Z]+)$`)

// FormatError reports delta text without the <sign><digits><unit>
// shape.
type FormatError struct {
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed delta %q, want [+-]<digits><unit>", e.Text)
}

// ParseItem parses one delta expression. The unit part accepts any
// name or unambiguous prefix known to timeunit.Find; the value must
// fit in 32 bits. A bad unit is reported before a bad value.
func ParseItem(s string) (Item, error) {
	m := itemPattern.FindStringSubmatch(s)
	if m == nil {
		return Item{}, &FormatError{Text: s}
	}
	unit, err := timeunit.Find(m[2])
	if err != nil {
		return Item{}, fmt.Errorf("delta %q: %w", s, err)
	}
	value, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return Item{}, fmt.Errorf("delta %q: value out of range", s)
	}
	return Item{Unit: unit, Value: int32(value)}, nil
}

// Package precision selects the timestamp scale, seconds or
// milliseconds, for both generating and parsing.
package precision

import (
	"time"

	"github.com/aidanlsb/epoch/internal/lookup"
)

// Precision is a timestamp scale.
type Precision int

const (
	Second Precision = iota
	Millisecond
)

var names = [...]string{"second", "millisecond"}

var table = []lookup.Entry[Precision]{
	{Value: Second, Name: "second"},
	{Value: Millisecond, Name: "millisecond", Aliases: []string{"ms"}},
}

func (p Precision) String() string {
	if p < Second || p > Millisecond {
		return "unknown"
	}
	return names[p]
}

// Find resolves a precision name or prefix; "ms" is an exact alias
// for millisecond.
func Find(name string) (Precision, error) {
	return lookup.Find(name, table)
}

// Names returns the canonical precision names.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// FromTimestamp interprets ts at this scale in loc.
func (p Precision) FromTimestamp(ts int64, loc *time.Location) time.Time {
	if p == Millisecond {
		return time.UnixMilli(ts).In(loc)
	}
	return time.Unix(ts, 0).In(loc)
}

// Timestamp returns t at this scale.
func (p Precision) Timestamp(t time.Time) int64 {
	if p == Millisecond {
		return t.UnixMilli()
	}
	return t.Unix()
}

// Layout is the display layout for parsed timestamps.
func (p Precision) Layout() string {
	if p == Millisecond {
		return "2006-01-02 15:04:05.000 (MST)"
	}
	return "2006-01-02 15:04:05 (MST)"
}

// Format renders t in the display layout.
func (p Precision) Format(t time.Time) string {
	return t.Format(p.Layout())
}

// Package timeunit defines the calendar units accepted by delta
// expressions and truncation.
package timeunit

import (
	"time"

	"github.com/aidanlsb/epoch/internal/lookup"
)

// Unit is a calendar unit, ordered from coarsest to finest.
type Unit int

const (
	Year Unit = iota
	Month
	Day
	Hour
	Minute
	Second
	Millisecond
)

var names = [...]string{"year", "month", "day", "hour", "minute", "second", "millisecond"}

// table order decides how ambiguous prefixes are reported, so it must
// stay in declaration order.
var table = []lookup.Entry[Unit]{
	{Value: Year, Name: "year"},
	{Value: Month, Name: "month"},
	{Value: Day, Name: "day"},
	{Value: Hour, Name: "hour"},
	{Value: Minute, Name: "minute"},
	{Value: Second, Name: "second"},
	{Value: Millisecond, Name: "millisecond", Aliases: []string{"ms"}},
}

func (u Unit) String() string {
	if u < Year || u > Millisecond {
		return "unknown"
	}
	return names[u]
}

// Find resolves a unit name or unambiguous prefix, case-insensitively.
// "ms" is an exact alias for millisecond.
func Find(name string) (Unit, error) {
	return lookup.Find(name, table)
}

// Names returns the canonical unit names in declaration order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// Truncate zeroes every field of t finer than u. The location is
// preserved.
func (u Unit) Truncate(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	loc := t.Location()
	switch u {
	case Year:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Day:
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	case Hour:
		return time.Date(year, month, day, hour, 0, 0, 0, loc)
	case Minute:
		return time.Date(year, month, day, hour, min, 0, 0, loc)
	case Second:
		return time.Date(year, month, day, hour, min, sec, 0, loc)
	case Millisecond:
		ns := t.Nanosecond() / int(time.Millisecond) * int(time.Millisecond)
		return time.Date(year, month, day, hour, min, sec, ns, loc)
	}
	return t
}

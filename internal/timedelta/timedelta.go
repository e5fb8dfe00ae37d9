// Package timedelta implements signed calendar deltas: parsing single
// delta items, accumulating them in a builder, normalizing fields into
// canonical ranges, and applying the result to an instant with
// calendar-aware month and year shifts.
package timedelta

import (
	"fmt"
	"time"

	"github.com/aidanlsb/epoch/internal/timeunit"
)

const (
	microsPerSecond  = 1_000_000
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	monthsPerYear    = 12
	secondsPerDay    = 24 * 60 * 60
)

// Delta is a normalized signed calendar shift. Normalization carries
// whole radix multiples into the next coarser field using truncating
// division, so every remainder keeps its own sign: -1 microsecond
// stays -1 microsecond rather than borrowing a second. Days are never
// carried into months because a month has no fixed day count.
type Delta struct {
	years   int64
	months  int64
	days    int64
	hours   int64
	minutes int64
	seconds int64
	micros  int64
}

// Builder accumulates delta fields before normalization. The zero
// value is empty and ready to use.
type Builder struct {
	years   int64
	months  int64
	days    int64
	hours   int64
	minutes int64
	seconds int64
	micros  int64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Years(v int) *Builder        { b.years = int64(v); return b }
func (b *Builder) Months(v int) *Builder       { b.months = int64(v); return b }
func (b *Builder) Days(v int) *Builder         { b.days = int64(v); return b }
func (b *Builder) Hours(v int) *Builder        { b.hours = int64(v); return b }
func (b *Builder) Minutes(v int) *Builder      { b.minutes = int64(v); return b }
func (b *Builder) Seconds(v int) *Builder      { b.seconds = int64(v); return b }
func (b *Builder) Microseconds(v int) *Builder { b.micros = int64(v); return b }

func (b *Builder) AddYears(v int) *Builder        { b.years += int64(v); return b }
func (b *Builder) AddMonths(v int) *Builder       { b.months += int64(v); return b }
func (b *Builder) AddDays(v int) *Builder         { b.days += int64(v); return b }
func (b *Builder) AddHours(v int) *Builder        { b.hours += int64(v); return b }
func (b *Builder) AddMinutes(v int) *Builder      { b.minutes += int64(v); return b }
func (b *Builder) AddSeconds(v int) *Builder      { b.seconds += int64(v); return b }
func (b *Builder) AddMicroseconds(v int) *Builder { b.micros += int64(v); return b }

// AddMilliseconds contributes v milliseconds as microseconds.
func (b *Builder) AddMilliseconds(v int) *Builder {
	b.micros += int64(v) * 1000
	return b
}

// Add folds one parsed item into the matching field.
func (b *Builder) Add(item Item) *Builder {
	v := int(item.Value)
	switch item.Unit {
	case timeunit.Year:
		return b.AddYears(v)
	case timeunit.Month:
		return b.AddMonths(v)
	case timeunit.Day:
		return b.AddDays(v)
	case timeunit.Hour:
		return b.AddHours(v)
	case timeunit.Minute:
		return b.AddMinutes(v)
	case timeunit.Second:
		return b.AddSeconds(v)
	case timeunit.Millisecond:
		return b.AddMilliseconds(v)
	}
	return b
}

// Build normalizes the accumulated fields into a Delta.
func (b *Builder) Build() Delta {
	d := Delta{b.years, b.months, b.days, b.hours, b.minutes, b.seconds, b.micros}
	return d.normalized()
}

func (d Delta) normalized() Delta {
	d.micros, d.seconds = carry(d.micros, d.seconds, microsPerSecond)
	d.seconds, d.minutes = carry(d.seconds, d.minutes, secondsPerMinute)
	d.minutes, d.hours = carry(d.minutes, d.hours, minutesPerHour)
	d.hours, d.days = carry(d.hours, d.days, hoursPerDay)
	d.months, d.years = carry(d.months, d.years, monthsPerYear)
	return d
}

// carry moves whole multiples of radix from lower into upper. Go's
// truncating division keeps the remainder's sign.
func carry(lower, upper, radix int64) (int64, int64) {
	return lower % radix, upper + lower/radix
}

// InvalidDateError reports a shift that lands on a calendar date that
// does not exist, such as adding one month to January 31.
type InvalidDateError struct {
	Year  int
	Month time.Month
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date does not exist: %04d-%02d-%02d", e.Year, int(e.Month), e.Day)
}

// Apply shifts t by the delta. Days are added as whole 86,400-second
// steps and microseconds through hours as a fixed duration, then
// months and years move the calendar fields directly while keeping
// the day of month and clock time. Apply fails if the final day does
// not exist in the target month; the result is never clamped to a
// nearby valid date.
func (d Delta) Apply(t time.Time) (time.Time, error) {
	shifted := addDays(t, d.days).Add(d.clockDuration())
	offset := d.years*monthsPerYear + d.months
	if offset == 0 {
		return shifted, nil
	}
	year, month, day := shifted.Date()
	sum := int64(month) + offset
	var carryYears int64
	var newMonth time.Month
	if sum > 0 {
		carryYears = (sum - 1) / monthsPerYear
		newMonth = time.Month((sum-1)%monthsPerYear + 1)
	} else {
		carryYears = sum/monthsPerYear - 1
		newMonth = time.Month(sum%monthsPerYear + monthsPerYear)
	}
	newYear := year + int(carryYears)
	if day > daysIn(newYear, newMonth) {
		return time.Time{}, &InvalidDateError{Year: newYear, Month: newMonth, Day: day}
	}
	hour, min, sec := shifted.Clock()
	return time.Date(newYear, newMonth, day, hour, min, sec, shifted.Nanosecond(), shifted.Location()), nil
}

// clockDuration is the sub-day part of the delta. Normalized fields
// stay far inside time.Duration's range.
func (d Delta) clockDuration() time.Duration {
	return time.Duration(d.micros)*time.Microsecond +
		time.Duration(d.seconds)*time.Second +
		time.Duration(d.minutes)*time.Minute +
		time.Duration(d.hours)*time.Hour
}

// addDays moves t by whole days in integer seconds. A day count in
// the hundreds of thousands exceeds what time.Duration can hold in
// nanoseconds, so days never go through it.
func addDays(t time.Time, days int64) time.Time {
	if days == 0 {
		return t
	}
	return time.Unix(t.Unix()+days*secondsPerDay, int64(t.Nanosecond())).In(t.Location())
}

// daysIn returns the day count of a month; day zero of the following
// month normalizes to its last day.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

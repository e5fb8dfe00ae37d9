package dates

import (
	"time"

	"github.com/aidanlsb/epoch/internal/lookup"
)

// Preset is a named relative day.
type Preset int

const (
	Today Preset = iota
	Tomorrow
	Yesterday
)

var presetNames = [...]string{"today", "tomorrow", "yesterday"}

var presetTable = []lookup.Entry[Preset]{
	{Value: Today, Name: "today"},
	{Value: Tomorrow, Name: "tomorrow"},
	{Value: Yesterday, Name: "yesterday"},
}

func (p Preset) String() string {
	if p < Today || p > Yesterday {
		return "unknown"
	}
	return presetNames[p]
}

// FindPreset resolves a preset name or unambiguous prefix, so "tod"
// works but "to" is ambiguous between today and tomorrow.
func FindPreset(name string) (Preset, error) {
	return lookup.Find(name, presetTable)
}

// PresetNames returns the preset names in declaration order.
func PresetNames() []string {
	out := make([]string, len(presetNames))
	copy(out, presetNames[:])
	return out
}

// DaySource yields midnight-anchored days. clock.Provider satisfies
// it.
type DaySource interface {
	Today() time.Time
	Tomorrow() time.Time
	Yesterday() time.Time
}

// Resolve returns the preset's day from src.
func (p Preset) Resolve(src DaySource) time.Time {
	switch p {
	case Tomorrow:
		return src.Tomorrow()
	case Yesterday:
		return src.Yesterday()
	default:
		return src.Today()
	}
}

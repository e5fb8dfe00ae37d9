// Package clock supplies the current instant in UTC, the system zone,
// or a fixed UTC offset, together with midnight-anchored presets.
package clock

import (
	"time"

	"github.com/aidanlsb/epoch/internal/timedelta"
)

var (
	nextDay = timedelta.NewBuilder().Days(1).Build()
	prevDay = timedelta.NewBuilder().Days(-1).Build()
)

// Provider yields instants in one fixed location.
type Provider struct {
	loc *time.Location
	now func() time.Time
}

// UTC returns a provider pinned to UTC.
func UTC() *Provider {
	return &Provider{loc: time.UTC, now: time.Now}
}

// Local returns a provider in the system time zone.
func Local() *Provider {
	return &Provider{loc: time.Local, now: time.Now}
}

// Fixed returns a provider at a fixed UTC offset.
func Fixed(off Offset) *Provider {
	return &Provider{loc: off.Location(), now: time.Now}
}

// Location returns the provider's time zone.
func (p *Provider) Location() *time.Location {
	return p.loc
}

// Now returns the current instant in the provider's zone.
func (p *Provider) Now() time.Time {
	return p.now().In(p.loc)
}

// Today returns midnight of the current day.
func (p *Provider) Today() time.Time {
	year, month, day := p.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, p.loc)
}

// Tomorrow returns midnight of the next day.
func (p *Provider) Tomorrow() time.Time {
	t, _ := nextDay.Apply(p.Today()) // a day shift cannot hit a missing date
	return t
}

// Yesterday returns midnight of the previous day.
func (p *Provider) Yesterday() time.Time {
	t, _ := prevDay.Apply(p.Today())
	return t
}

// Package slots proposes mock interview times.
package slots

import "time"

// Layout renders a slot with its numeric zone offset. Slots are always built
// in Zone, so the offset is always +05:30, e.g. 2025-06-15T11:00:00+05:30.
const Layout = "2006-01-02T15:04:05-07:00"

// DefaultZone is the named zone used when no other zone is configured.
const DefaultZone = "Asia/Kolkata"

const istOffset = 5*60*60 + 30*60

// Zone is the fixed +05:30 zone every slot is proposed in, whatever the host
// or configured zone.
var Zone = time.FixedZone("IST", istOffset)

// wallClock is a time of day.
type wallClock struct {
	dayOffset    int
	hour, minute int
}

// canonical lists the proposed slots: today 11:00, today 15:00, tomorrow 10:30.
var canonical = []wallClock{
	{dayOffset: 0, hour: 11},
	{dayOffset: 0, hour: 15},
	{dayOffset: 1, hour: 10, minute: 30},
}

// LoadLocation resolves name, falling back to a fixed +05:30 zone when the
// name is empty or unknown to the tz database.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return Zone
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator builds interview slots relative to now.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Times returns the three proposed slots as instants in Zone.
func (g *Generator) Times() []time.Time {
	y, m, d := g.now().In(Zone).Date()
	out := make([]time.Time, 0, len(canonical))
	for _, c := range canonical {
		out = append(out, time.Date(y, m, d+c.dayOffset, c.hour, c.minute, 0, 0, Zone))
	}
	return out
}

// Next returns exactly three formatted slots.
func (g *Generator) Next() []string {
	times := g.Times()
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.Format(Layout)
	}
	return out
}

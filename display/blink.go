package display

import "time"

// DefaultBlink is the blink interval when none is asked for.
const DefaultBlink = 500 * time.Millisecond

// Toggler is anything that can blink.
type Toggler interface {
	On()
	Off()
	Toggle()
}

// Blinker toggles a group of units together.  It keeps no timer: whoever owns
// the schedule calls Step every Interval.
type Blinker struct {
	units    []Toggler
	interval time.Duration
	active   bool
}

// NewBlinker groups units.
func NewBlinker(units ...Toggler) *Blinker {
	return &Blinker{units: units, interval: DefaultBlink}
}

// Start begins blinking with everything on.  A zero interval means
// DefaultBlink.
func (b *Blinker) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultBlink
	}
	b.interval = interval
	b.active = true
	for _, u := range b.units {
		u.On()
	}
}

// Stop ends blinking and leaves everything on.
func (b *Blinker) Stop() {
	b.active = false
	for _, u := range b.units {
		u.On()
	}
}

// Step toggles every unit if blinking.  It reports whether anything changed.
func (b *Blinker) Step() bool {
	if !b.active {
		return false
	}
	for _, u := range b.units {
		u.Toggle()
	}
	return true
}

func (b *Blinker) Active() bool {
	return b.active
}

func (b *Blinker) Interval() time.Duration {
	return b.interval
}

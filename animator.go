package main

import (
	"math/rand"
	"time"

	"dscheirer.com/segtimer/rgb"
)

// animation kinds
const (
	animSmooth = "smooth-color-change"
	animRandom = "random-color-change"
)

// AnimationSpec asks for an animation.  Colors are the waypoints for a
// smooth change; a random change makes its own.
type AnimationSpec struct {
	Kind   string
	Colors []rgb.Color
}

func (a AnimationSpec) validate() error {
	switch a.Kind {
	case animSmooth:
		if len(a.Colors) == 0 {
			return invalid("colors", "%s needs at least one color", a.Kind)
		}
	case animRandom:
	default:
		return invalid("animation", "unknown animation %q", a.Kind)
	}
	return nil
}

// fader walks a color through waypoints: delta per channel per step, then a
// dwell once a waypoint is reached, forever.
type fader struct {
	waypoints []rgb.Color
	next      int
	current   rgb.Color
	delta     int
	step      time.Duration
	dwell     time.Duration
	refill    func(n int) []rgb.Color // new waypoints on every lap, if set
}

func newFader(from rgb.Color, waypoints []rgb.Color, delta int, step, dwell time.Duration) *fader {
	return &fader{
		waypoints: append([]rgb.Color(nil), waypoints...),
		current:   from,
		delta:     delta,
		step:      step,
		dwell:     dwell,
	}
}

// randomWaypoints makes a generator of n random colors for a fader
func randomWaypoints(r *rand.Rand) func(n int) []rgb.Color {
	return func(n int) []rgb.Color {
		ret := make([]rgb.Color, n)
		for i := range ret {
			ret[i] = rgb.Random(r)
		}
		return ret
	}
}

func (f *fader) target() rgb.Color {
	return f.waypoints[f.next]
}

// arrive moves on to the next waypoint after the current one is reached
func (f *fader) arrive() {
	f.next++
	if f.next >= len(f.waypoints) {
		f.next = 0
		if f.refill != nil {
			f.waypoints = f.refill(len(f.waypoints))
		}
	}
}

// begin is the delay before the first advance.  Starting on the first
// waypoint counts as arriving there.
func (f *fader) begin() time.Duration {
	if f.current == f.target() {
		f.arrive()
		return f.dwell
	}
	return f.step
}

// advance runs one tick.  changed is false for a dwell that needed no step.
func (f *fader) advance() (c rgb.Color, changed bool, delay time.Duration) {
	if f.current == f.target() {
		f.arrive()
		return f.current, false, f.dwell
	}
	f.current = rgb.StepToward(f.current, f.target(), f.delta)
	if f.current == f.target() {
		f.arrive()
		return f.current, true, f.dwell
	}
	return f.current, true, f.step
}

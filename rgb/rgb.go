// Package rgb is the color value shared by the strip, the display units and
// the animations, plus the handful of pure helpers they need.
package rgb

import (
	"fmt"
	"image/color"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is one LED's intensity per channel.
type Color struct {
	R, G, B uint8
}

// some named colors
var (
	Black = Color{}
	Red   = Color{R: 255}
	Green = Color{G: 255}
	Blue  = Color{B: 255}
	White = Color{R: 255, G: 255, B: 255}
)

// RangeError reports a channel value outside [0,255].
type RangeError struct {
	Channel string
	Value   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s channel %d out of range [0,255]", e.Channel, e.Value)
}

// FromInts builds a Color from untrusted ints, as they arrive from JSON.
func FromInts(r, g, b int) (Color, error) {
	for _, ch := range []struct {
		name string
		val  int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.val < 0 || ch.val > 255 {
			return Black, &RangeError{Channel: ch.name, Value: ch.val}
		}
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// ParseHex reads "#rrggbb" (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Black, errors.Errorf("bad color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Black, errors.Wrapf(err, "bad color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA converts to an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func stepChannel(cur, target uint8, step int) uint8 {
	d := int(target) - int(cur)
	switch {
	case d > step:
		return uint8(int(cur) + step)
	case d < -step:
		return uint8(int(cur) - step)
	default:
		// close enough, snap
		return target
	}
}

// StepToward moves every channel of c at most step closer to target, never
// past it.
func StepToward(c, target Color, step int) Color {
	if step <= 0 {
		return c
	}
	return Color{
		R: stepChannel(c.R, target.R, step),
		G: stepChannel(c.G, target.G, step),
		B: stepChannel(c.B, target.B, step),
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Distance is the largest per-channel difference between a and b.
func Distance(a, b Color) int {
	d := absDiff(a.R, b.R)
	if g := absDiff(a.G, b.G); g > d {
		d = g
	}
	if bl := absDiff(a.B, b.B); bl > d {
		d = bl
	}
	return d
}

// Steps is how many StepToward calls it takes to get from a to b.
func Steps(a, b Color, step int) int {
	if step <= 0 {
		return 0
	}
	return (Distance(a, b) + step - 1) / step
}

// Random picks a fully random color.
func Random(r *rand.Rand) Color {
	v := r.Uint32()
	return Color{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
}

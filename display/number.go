package display

import (
	"fmt"

	"dscheirer.com/segtimer/strip"
)

// NumberDisplay is a two digit number on the strip.  It only writes to the
// strip's buffer; rendering is up to the caller.
type NumberDisplay struct {
	surface     strip.Surface
	layout      Layout
	offset      int
	paint       Paint
	value       int
	lit         bool
	leadingZero bool
}

// NewNumber places a number at offset on the surface.
func NewNumber(s strip.Surface, l Layout, offset int) *NumberDisplay {
	return &NumberDisplay{
		surface:     s,
		layout:      l,
		offset:      offset,
		paint:       Single(defaultColor),
		leadingZero: true,
	}
}

// SetLeadingZero picks between "07" and " 7".
func (n *NumberDisplay) SetLeadingZero(on bool) {
	n.leadingZero = on
	n.draw()
}

// Show lights value (0-99) in the current paint.
func (n *NumberDisplay) Show(value int) error {
	if value < 0 || value > 99 {
		return fmt.Errorf("number %d out of range [0,99]", value)
	}
	n.value = value
	n.lit = true
	n.draw()
	return nil
}

// Value is the last number shown.
func (n *NumberDisplay) Value() int {
	return n.value
}

// SetPaint changes the color(s), redrawing if lit.
func (n *NumberDisplay) SetPaint(p Paint) {
	n.paint = p
	n.draw()
}

// Paint is the current paint.
func (n *NumberDisplay) Paint() Paint {
	return n.paint
}

// On shows the last value again.
func (n *NumberDisplay) On() {
	n.lit = true
	n.draw()
}

// Off blanks the digits but keeps the value.
func (n *NumberDisplay) Off() {
	n.lit = false
	n.draw()
}

// Toggle flips between On and Off.
func (n *NumberDisplay) Toggle() {
	n.lit = !n.lit
	n.draw()
}

// Lit reports whether the number is showing.
func (n *NumberDisplay) Lit() bool {
	return n.lit
}

// Clear blanks the digits and forgets the value.
func (n *NumberDisplay) Clear() {
	n.value = 0
	n.Off()
}

func (n *NumberDisplay) draw() {
	digits := [DigitsPerNumber]int{n.value / 10, n.value % 10}
	for d, v := range digits {
		mask := Segments(v)
		if !n.lit || (d == 0 && v == 0 && !n.leadingZero) {
			mask = 0
		}
		base := n.offset + d*n.layout.DigitLEDs()
		for seg := 0; seg < SegmentsPerDigit; seg++ {
			start := base + seg*n.layout.LEDsPerSegment
			if mask&(1<<uint(seg)) != 0 {
				n.surface.SetRegion(start, n.layout.LEDsPerSegment, n.paint.SegmentColor(seg))
			} else {
				n.surface.ClearRegion(start, n.layout.LEDsPerSegment)
			}
		}
	}
}

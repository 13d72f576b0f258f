// Package display composes seven-segment digits and the divider dots out of
// runs of LEDs on a strip.Surface.
//
// Strip order is: left number (tens, units), divider, right number (tens,
// units).  Within a digit the segments run a..g:
//
//	 -a-
//	f   b
//	 -g-
//	e   c
//	 -d-
package display

// fixed geometry
const (
	SegmentsPerDigit = 7
	DigitsPerNumber  = 2
	DotsPerDivider   = 2
)

// Layout is the part of the geometry that depends on how the LEDs were cut.
type Layout struct {
	LEDsPerSegment int
	LEDsPerDot     int
}

// DefaultLayout is 3 LEDs per segment and 1 per dot, 86 LEDs in all.
var DefaultLayout = Layout{LEDsPerSegment: 3, LEDsPerDot: 1}

// DigitLEDs is the number of LEDs in one digit.
func (l Layout) DigitLEDs() int {
	return SegmentsPerDigit * l.LEDsPerSegment
}

// NumberLEDs is the number of LEDs in a two digit number.
func (l Layout) NumberLEDs() int {
	return DigitsPerNumber * l.DigitLEDs()
}

// DividerLEDs is the number of LEDs in the divider.
func (l Layout) DividerLEDs() int {
	return DotsPerDivider * l.LEDsPerDot
}

// Total is the number of LEDs on the whole strip.
func (l Layout) Total() int {
	return 2*l.NumberLEDs() + l.DividerLEDs()
}

// segment bitmasks for 0-9, bit 0 is segment a
var digitSegments = [10]byte{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
}

// Segments returns the lit-segment mask for a single digit 0-9.
func Segments(digit int) byte {
	if digit < 0 || digit > 9 {
		return 0
	}
	return digitSegments[digit]
}

package display

import (
	"dscheirer.com/segtimer/rgb"
	"dscheirer.com/segtimer/strip"
)

var defaultColor = rgb.Green

// DividerDisplay is the pair of dots between the numbers.
type DividerDisplay struct {
	surface strip.Surface
	layout  Layout
	offset  int
	color   rgb.Color
	lit     bool
}

// NewDivider places the divider at offset on the surface.
func NewDivider(s strip.Surface, l Layout, offset int) *DividerDisplay {
	return &DividerDisplay{surface: s, layout: l, offset: offset, color: defaultColor}
}

// SetColor changes the dot color, redrawing if lit.
func (dd *DividerDisplay) SetColor(c rgb.Color) {
	dd.color = c
	dd.draw()
}

// Color is the dot color.
func (dd *DividerDisplay) Color() rgb.Color {
	return dd.color
}

func (dd *DividerDisplay) On() {
	dd.lit = true
	dd.draw()
}

func (dd *DividerDisplay) Off() {
	dd.lit = false
	dd.draw()
}

func (dd *DividerDisplay) Toggle() {
	dd.lit = !dd.lit
	dd.draw()
}

func (dd *DividerDisplay) Lit() bool {
	return dd.lit
}

func (dd *DividerDisplay) draw() {
	if dd.lit {
		dd.surface.SetRegion(dd.offset, dd.layout.DividerLEDs(), dd.color)
	} else {
		dd.surface.ClearRegion(dd.offset, dd.layout.DividerLEDs())
	}
}

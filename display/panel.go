package display

import (
	"dscheirer.com/segtimer/rgb"
	"dscheirer.com/segtimer/strip"
)

// Panel is the whole clock face: two numbers and the divider on one surface.
type Panel struct {
	Left    *NumberDisplay
	Right   *NumberDisplay
	Divider *DividerDisplay

	surface strip.Surface
	layout  Layout
}

// NewPanel lays the face out on s.
func NewPanel(s strip.Surface, l Layout) *Panel {
	return &Panel{
		Left:    NewNumber(s, l, 0),
		Divider: NewDivider(s, l, l.NumberLEDs()),
		Right:   NewNumber(s, l, l.NumberLEDs()+l.DividerLEDs()),
		surface: s,
		layout:  l,
	}
}

// Layout is the geometry the panel was built with.
func (p *Panel) Layout() Layout {
	return p.layout
}

// SetPaint paints both numbers; the divider takes the primary color.
func (p *Panel) SetPaint(pt Paint) {
	p.Left.SetPaint(pt)
	p.Right.SetPaint(pt)
	p.Divider.SetColor(pt.Primary())
}

// SetColor is SetPaint with a single color.
func (p *Panel) SetColor(c rgb.Color) {
	p.SetPaint(Single(c))
}

// Show puts left and right up with the divider lit.
func (p *Panel) Show(left, right int) error {
	if err := p.Left.Show(left); err != nil {
		return err
	}
	if err := p.Right.Show(right); err != nil {
		return err
	}
	p.Divider.On()
	return nil
}

// On lights all three units with their last values.
func (p *Panel) On() {
	p.Left.On()
	p.Right.On()
	p.Divider.On()
}

// Clear blanks all three units.
func (p *Panel) Clear() {
	p.Left.Clear()
	p.Right.Clear()
	p.Divider.Off()
}

// Blinker groups all three units.
func (p *Panel) Blinker() *Blinker {
	return NewBlinker(p.Left, p.Right, p.Divider)
}

// Render flushes the surface.
func (p *Panel) Render() error {
	return p.surface.Render()
}

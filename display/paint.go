package display

import "dscheirer.com/segtimer/rgb"

type paintKind int

const (
	paintSingle paintKind = iota
	paintPerSegment
)

// Paint is either one color for everything, or a list of colors handed out
// by segment index (segment i of every digit gets colors[i%len]).
type Paint struct {
	kind   paintKind
	colors []rgb.Color
}

// Single paints everything c.
func Single(c rgb.Color) Paint {
	return Paint{kind: paintSingle, colors: []rgb.Color{c}}
}

// PerSegment paints segment by segment.  An empty list paints black.
func PerSegment(cs []rgb.Color) Paint {
	if len(cs) == 0 {
		return Single(rgb.Black)
	}
	return Paint{kind: paintPerSegment, colors: append([]rgb.Color(nil), cs...)}
}

// IsSingle is true for a one color paint.
func (p Paint) IsSingle() bool {
	return p.kind == paintSingle
}

// SegmentColor is the color for segment i of a digit.
func (p Paint) SegmentColor(i int) rgb.Color {
	switch p.kind {
	case paintPerSegment:
		return p.colors[i%len(p.colors)]
	default:
		if len(p.colors) == 0 {
			return rgb.Black
		}
		return p.colors[0]
	}
}

// Primary is the first color, used where only one color fits (the divider,
// the start of an animation).
func (p Paint) Primary() rgb.Color {
	return p.SegmentColor(0)
}

// Colors returns a copy of the paint's colors.
func (p Paint) Colors() []rgb.Color {
	if len(p.colors) == 0 {
		return []rgb.Color{rgb.Black}
	}
	return append([]rgb.Color(nil), p.colors...)
}

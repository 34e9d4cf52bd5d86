package dom

import "strconv"

type Rect struct {
	Left, Top, Right, Bottom float64
	Width, Height            float64
}

func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// AttributeLayout reads geometry from data-left, data-top, data-width and data-height attributes.
// Missing or malformed values count as zero.
func AttributeLayout(e *Element) Rect {
	return NewRect(
		floatAttr(e, "data-left"),
		floatAttr(e, "data-top"),
		floatAttr(e, "data-width"),
		floatAttr(e, "data-height"),
	)
}

func floatAttr(e *Element, name string) float64 {
	value, ok := e.GetAttribute(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

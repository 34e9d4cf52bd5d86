package brief

import (
	"github.com/hack-pad/brief/dom"
)

// GetAttribute returns the value of 'name' for every element, "" where it is missing.
func (c *Collection) GetAttribute(name string) []string {
	values := make([]string, 0, len(c.elements))
	for _, elem := range c.elements {
		value, _ := elem.GetAttribute(name)
		values = append(values, value)
	}
	return values
}

// LookupAttribute returns the value of 'name' for every element and whether the element has it,
// telling a missing attribute apart from an empty one.
func (c *Collection) LookupAttribute(name string) ([]string, []bool) {
	values := make([]string, 0, len(c.elements))
	present := make([]bool, 0, len(c.elements))
	for _, elem := range c.elements {
		value, ok := elem.GetAttribute(name)
		values = append(values, value)
		present = append(present, ok)
	}
	return values, present
}

func (c *Collection) SetAttribute(name, value string) *Collection {
	for _, elem := range c.elements {
		elem.SetAttribute(name, value)
	}
	return c
}

func (c *Collection) RemoveAttribute(name string) *Collection {
	for _, elem := range c.elements {
		elem.RemoveAttribute(name)
	}
	return c
}

func (c *Collection) GetOffsets() []dom.Rect {
	rects := make([]dom.Rect, 0, len(c.elements))
	for _, elem := range c.elements {
		rects = append(rects, elem.GetBoundingClientRect())
	}
	return rects
}

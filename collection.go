package brief

import (
	"strings"

	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/internal/errcode"
	"github.com/hack-pad/brief/internal/log"
)

// Collection is an ordered list of elements plus the selector and context it was built from.
//
// Add, Remove, Filter, FilterFunc, Find, GetChildren and Empty(true) change the collection in place
// and first push a snapshot of the previous contents, which Revert restores.
type Collection struct {
	brief    *Brief
	elements []*dom.Element
	selector string
	context  any
	stack    []snapshot
}

type snapshot struct {
	elements []*dom.Element
	selector string
}

// Predicate tests one element of a collection.
type Predicate func(elem *dom.Element, index int, c *Collection) bool

func (b *Brief) newCollection(selector string, context any) *Collection {
	return &Collection{
		brief:    b,
		selector: selector,
		context:  context,
	}
}

func (c *Collection) Brief() *Brief {
	return c.brief
}

// IsCollection distinguishes a collection from the plain element slices accepted alongside it.
func (c *Collection) IsCollection() bool {
	return true
}

func (c *Collection) Selector() string {
	return c.selector
}

func (c *Collection) Context() any {
	return c.context
}

func (c *Collection) Len() int {
	return len(c.elements)
}

// Get returns the element at 'index', or nil when out of range.
func (c *Collection) Get(index int) *dom.Element {
	if index < 0 || index >= len(c.elements) {
		return nil
	}
	return c.elements[index]
}

// ToArray returns a copy of the elements, unaffected by later changes to the collection.
func (c *Collection) ToArray() []*dom.Element {
	return append([]*dom.Element(nil), c.elements...)
}

// Clone copies the elements and provenance. The clone starts with an empty history.
func (c *Collection) Clone() *Collection {
	clone := c.brief.newCollection(c.selector, c.context)
	clone.elements = c.ToArray()
	return clone
}

func (c *Collection) pushState() {
	c.stack = append(c.stack, snapshot{
		elements: c.ToArray(),
		selector: c.selector,
	})
}

// History returns the number of snapshots Revert can restore.
func (c *Collection) History() int {
	return len(c.stack)
}

// Revert restores the contents and selector from before the last recorded change. No-op without history.
func (c *Collection) Revert() *Collection {
	if len(c.stack) == 0 {
		return c
	}
	last := len(c.stack) - 1
	c.elements = c.stack[last].elements
	c.selector = c.stack[last].selector
	c.stack[last] = snapshot{}
	c.stack = c.stack[:last]
	return c
}

// Add appends each item: a *Collection or []*dom.Element is flattened, a *dom.Element is appended
// directly. Other kinds are skipped.
func (c *Collection) Add(items ...any) *Collection {
	c.pushState()
	c.elements = appendItems(c.elements, items)
	return c
}

func appendItems(elements []*dom.Element, items []any) []*dom.Element {
	for _, item := range items {
		switch item := item.(type) {
		case *Collection:
			if item != nil {
				elements = append(elements, item.elements...)
			}
		case []*dom.Element:
			for _, elem := range item {
				if elem != nil {
					elements = append(elements, elem)
				}
			}
		case *dom.Element:
			if item != nil {
				elements = append(elements, item)
			}
		default:
			log.Warnf("skipping unsupported item of type %T", item)
		}
	}
	return elements
}

// Remove deletes elements. Remove() drops the last element, Remove(i) the element at i and
// Remove(i, n) n elements starting at i. Out of range values are clamped.
func (c *Collection) Remove(args ...int) *Collection {
	c.pushState()
	index, count := len(c.elements)-1, 1
	if len(args) > 0 {
		index = args[0]
	}
	if len(args) > 1 {
		count = args[1]
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c.elements) || count <= 0 {
		return c
	}
	if count > len(c.elements)-index {
		count = len(c.elements) - index
	}
	end := index + count
	elements := make([]*dom.Element, 0, len(c.elements)-(end-index))
	elements = append(elements, c.elements[:index]...)
	c.elements = append(elements, c.elements[end:]...)
	return c
}

// Empty removes every element, recording a snapshot first when 'addStack' is true.
func (c *Collection) Empty(addStack bool) *Collection {
	if addStack {
		c.pushState()
	}
	c.elements = nil
	return c
}

// Filter keeps the elements matching 'selector', in their original order.
func (c *Collection) Filter(selector string) (*Collection, error) {
	compiled, err := c.brief.doc.Matcher().Compile(selector)
	if err != nil {
		return c, err
	}
	return c.FilterFunc(func(elem *dom.Element, _ int, _ *Collection) bool {
		return compiled.Match(elem.Node())
	})
}

// FilterFunc keeps the elements for which 'keep' returns true, in their original order.
func (c *Collection) FilterFunc(keep Predicate) (*Collection, error) {
	if keep == nil {
		return c, errcode.InvalidArgument("nil filter predicate")
	}
	previous := c.ToArray()
	var kept []*dom.Element
	for i, elem := range previous {
		if keep(elem, i, c) {
			kept = append(kept, elem)
		}
	}
	c.pushState()
	c.elements = kept
	return c, nil
}

// Find replaces the contents with the descendants of every element matching 'selector'.
func (c *Collection) Find(selector string) (*Collection, error) {
	compiled, err := c.brief.doc.Matcher().Compile(selector)
	if err != nil {
		return c, err
	}
	var found []*dom.Element
	for _, elem := range c.elements {
		for _, node := range compiled.QueryAll(elem.Node()) {
			found = append(found, c.brief.doc.Wrap(node))
		}
	}
	c.pushState()
	c.elements = found
	c.selector = strings.TrimSpace(c.selector + " " + selector)
	return c, nil
}

// GetChildren replaces the contents with the element children of every element.
func (c *Collection) GetChildren() *Collection {
	var children []*dom.Element
	for _, elem := range c.elements {
		children = append(children, elem.Children()...)
	}
	c.pushState()
	c.elements = children
	return c
}

func (c *Collection) Children() *Collection {
	return c.GetChildren()
}

// IndexOf returns the index of the first element matching 'selector', or -1.
func (c *Collection) IndexOf(selector string) (int, error) {
	compiled, err := c.brief.doc.Matcher().Compile(selector)
	if err != nil {
		return -1, err
	}
	return c.IndexFunc(func(elem *dom.Element, _ int, _ *Collection) bool {
		return compiled.Match(elem.Node())
	})
}

// IndexFunc returns the index of the first element satisfying 'match', or -1.
func (c *Collection) IndexFunc(match Predicate) (int, error) {
	if match == nil {
		return -1, errcode.InvalidArgument("nil index predicate")
	}
	for i, elem := range c.ToArray() {
		if match(elem, i, c) {
			return i, nil
		}
	}
	return -1, nil
}

// ForEach calls 'fn' for every element. Changes made by 'fn' to the collection do not affect the iteration.
func (c *Collection) ForEach(fn func(elem *dom.Element, index int, c *Collection)) error {
	if fn == nil {
		return errcode.InvalidArgument("nil ForEach func")
	}
	for i, elem := range c.ToArray() {
		fn(elem, i, c)
	}
	return nil
}

// Map returns fn applied to every element of 'c', in order.
func Map[T any](c *Collection, fn func(elem *dom.Element, index int, c *Collection) T) ([]T, error) {
	if fn == nil {
		return nil, errcode.InvalidArgument("nil Map func")
	}
	elements := c.ToArray()
	results := make([]T, 0, len(elements))
	for i, elem := range elements {
		results = append(results, fn(elem, i, c))
	}
	return results, nil
}

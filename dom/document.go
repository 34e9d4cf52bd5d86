package dom

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	node    *html.Node
	matcher *Matcher
	target  *eventTarget
	layout  func(*Element) Rect
}

type documentConfig struct {
	selectorCacheSize int
	layout            func(*Element) Rect
}

// DocumentOption configures a Document.
type DocumentOption func(*documentConfig)

// WithSelectorCacheSize sets how many compiled selectors are kept. Defaults to DefaultSelectorCacheSize.
func WithSelectorCacheSize(size int) DocumentOption {
	return func(c *documentConfig) {
		c.selectorCacheSize = size
	}
}

// WithLayout supplies element geometry. Without a layout every element reports a zero Rect.
func WithLayout(layout func(*Element) Rect) DocumentOption {
	return func(c *documentConfig) {
		c.layout = layout
	}
}

// NewDocument returns an empty document with html, head and body elements.
func NewDocument(opts ...DocumentOption) *Document {
	doc, err := Parse(strings.NewReader(""), opts...)
	if err != nil {
		// the HTML5 parser never fails on an in-memory reader
		panic(err)
	}
	return doc
}

func ParseString(contents string, opts ...DocumentOption) (*Document, error) {
	return Parse(strings.NewReader(contents), opts...)
}

func Parse(r io.Reader, opts ...DocumentOption) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "Failed parsing HTML document")
	}
	return newDocument(node, opts...), nil
}

func newDocument(node *html.Node, opts ...DocumentOption) *Document {
	config := documentConfig{
		selectorCacheSize: DefaultSelectorCacheSize,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Document{
		node:    node,
		matcher: NewMatcher(config.selectorCacheSize),
		target:  newEventTarget(),
		layout:  config.layout,
	}
}

func (d *Document) Node() *html.Node {
	return d.node
}

func (d *Document) Matcher() *Matcher {
	return d.matcher
}

// Wrap returns the Element for 'node', or nil if node is not an element.
func (d *Document) Wrap(node *html.Node) *Element {
	if node == nil || node.Type != html.ElementNode {
		return nil
	}
	return &Element{node: node, doc: d}
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	elements := make([]*Element, 0, len(nodes))
	for _, node := range nodes {
		if elem := d.Wrap(node); elem != nil {
			elements = append(elements, elem)
		}
	}
	return elements
}

func (d *Document) DocumentElement() *Element {
	for child := d.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			return d.Wrap(child)
		}
	}
	return nil
}

func (d *Document) Body() *Element {
	return d.Wrap(findFirst(d.node, atom.Body))
}

func (d *Document) Head() *Element {
	return d.Wrap(findFirst(d.node, atom.Head))
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == a {
			return child
		}
		if found := findFirst(child, a); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) GetElementByID(id string) *Element {
	var found *html.Node
	walk(d.node, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.Wrap(found)
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if !visit(child) || !walk(child, visit) {
			return false
		}
	}
	return true
}

func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	return d.Wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// QuerySelector returns the first element in document order matching 'selector', or nil.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	elements, err := d.QuerySelectorAll(selector)
	if err != nil || len(elements) == 0 {
		return nil, err
	}
	return elements[0], nil
}

func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	nodes, err := d.matcher.QueryAll(d.node, selector)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(nodes), nil
}

func (d *Document) AddEventListener(name string, listener EventListener, capture bool) ListenerID {
	return d.target.Listen(name, capture, listener)
}

func (d *Document) RemoveEventListener(name string, id ListenerID, capture bool) bool {
	return d.target.Unlisten(name, capture, id)
}

// ListenerCount returns the number of physical listeners installed for 'name' in either phase.
func (d *Document) ListenerCount(name string) int {
	return d.target.Count(name)
}

// DispatchEvent delivers 'event' to the document's capturing listeners, then its bubbling listeners
// when the event bubbles and propagation was not stopped. Returns false if the default was prevented.
func (d *Document) DispatchEvent(event *Event) bool {
	d.target.Emit(event)
	return !event.DefaultPrevented()
}

// Dispatch fires a bubbling event of type 'name' whose target is 'target'.
func (d *Document) Dispatch(target *Element, name string) *Event {
	event := NewEvent(name, target)
	d.DispatchEvent(event)
	return event
}

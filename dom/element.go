package dom

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Element is a handle to an element node. Handles are cheap; two handles refer to the same element
// when Equal reports true.
type Element struct {
	node *html.Node
	doc  *Document
}

func (e *Element) Node() *html.Node {
	return e.node
}

func (e *Element) Document() *Document {
	return e.doc
}

func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

func (e *Element) TagName() string {
	return e.node.Data
}

func (e *Element) ID() string {
	return attr(e.node, "id")
}

// String describes the element like a simple selector, e.g. div#main.wide.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(e.node.Data)
	if id := e.ID(); id != "" {
		sb.WriteString("#" + id)
	}
	for _, class := range strings.Fields(attr(e.node, "class")) {
		sb.WriteString("." + class)
	}
	return sb.String()
}

func (e *Element) Parent() *Element {
	return e.doc.Wrap(e.node.Parent)
}

func (e *Element) Children() []*Element {
	var children []*Element
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if elem := e.doc.Wrap(child); elem != nil {
			children = append(children, elem)
		}
	}
	return children
}

func (e *Element) FirstChild() *Element {
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			return e.doc.Wrap(child)
		}
	}
	return nil
}

// Contains reports whether 'other' is this element or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	return IsAncestorOrSelf(e.node, other.node)
}

// IsAncestorOrSelf reports whether 'ancestor' is 'node' or one of its ancestors.
func IsAncestorOrSelf(ancestor, node *html.Node) bool {
	for n := node; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

func (e *Element) AppendChild(child *Element) {
	detach(child.node)
	e.node.AppendChild(child.node)
}

func (e *Element) InsertBefore(newChild, referenceNode *Element) {
	detach(newChild.node)
	e.node.InsertBefore(newChild.node, referenceNode.node)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (e *Element) Remove() {
	detach(e.node)
}

func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace != "" || a.Key != name {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

func (e *Element) classes() []string {
	return strings.Fields(attr(e.node, "class"))
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.classes() {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(class string) {
	if !e.HasClass(class) {
		e.SetAttribute("class", strings.Join(append(e.classes(), class), " "))
	}
}

func (e *Element) RemoveClass(class string) {
	var kept []string
	for _, c := range e.classes() {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

func (e *Element) ToggleClass(class string) {
	if e.HasClass(class) {
		e.RemoveClass(class)
	} else {
		e.AddClass(class)
	}
}

func (e *Element) InnerText() string {
	var sb strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

func (e *Element) SetInnerText(contents string) {
	e.clearChildren()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: contents})
}

func (e *Element) SetInnerHTML(contents string) error {
	nodes, err := html.ParseFragment(strings.NewReader(contents), e.node)
	if err != nil {
		return errors.Wrap(err, "Failed parsing inner HTML")
	}
	e.clearChildren()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

func (e *Element) clearChildren() {
	for child := e.node.FirstChild; child != nil; child = e.node.FirstChild {
		e.node.RemoveChild(child)
	}
}

func (e *Element) OuterHTML() string {
	var sb strings.Builder
	if err := html.Render(&sb, e.node); err != nil {
		return ""
	}
	return sb.String()
}

func (e *Element) Matches(selector string) (bool, error) {
	return e.doc.matcher.Match(e.node, selector)
}

func (e *Element) QuerySelector(query string) (*Element, error) {
	elements, err := e.QuerySelectorAll(query)
	if err != nil || len(elements) == 0 {
		return nil, err
	}
	return elements[0], nil
}

func (e *Element) QuerySelectorAll(query string) ([]*Element, error) {
	nodes, err := e.doc.matcher.QueryAll(e.node, query)
	if err != nil {
		return nil, err
	}
	return e.doc.wrapAll(nodes), nil
}

func (e *Element) GetBoundingClientRect() Rect {
	if e.doc.layout == nil {
		return Rect{}
	}
	return e.doc.layout(e)
}

package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/hack-pad/brief/internal/common"
	"github.com/hack-pad/brief/internal/errcode"
	"github.com/hack-pad/brief/internal/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
)

const (
	DefaultSelectorCacheSize = 256
	// XPathPrefix marks a selector as an XPath expression instead of CSS, e.g. "xpath://ul/li[2]".
	XPathPrefix = "xpath:"
)

// Selector is a compiled CSS or XPath selector.
type Selector interface {
	// Match reports whether element node 'n' is selected.
	Match(n *html.Node) bool
	// QueryAll returns the selected descendants of 'scope' in document order, excluding scope itself.
	QueryAll(scope *html.Node) []*html.Node
	String() string
}

// Matcher compiles selectors and caches the results.
type Matcher struct {
	cache *lru.Cache[string, Selector]
}

func NewMatcher(cacheSize int) *Matcher {
	if cacheSize <= 0 {
		cacheSize = DefaultSelectorCacheSize
	}
	cache, err := lru.New[string, Selector](cacheSize)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Matcher{cache: cache}
}

func (m *Matcher) Compile(selector string) (Selector, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, errcode.InvalidArgument("empty selector")
	}
	if compiled, ok := m.cache.Get(selector); ok {
		return compiled, nil
	}
	compiled, err := compile(selector)
	if err != nil {
		log.Debugf("rejected selector %q: %v", selector, err)
		return nil, errcode.InvalidSelector(selector, err)
	}
	m.cache.Add(selector, compiled)
	return compiled, nil
}

func compile(selector string) (_ Selector, err error) {
	// some malformed XPath expressions panic instead of failing to compile
	defer common.CatchException(&err)
	if expr, ok := strings.CutPrefix(selector, XPathPrefix); ok {
		compiled, err := xpath.Compile(expr)
		if err != nil {
			return nil, err
		}
		return &xpathSelector{source: selector, expr: compiled}, nil
	}
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	return &cssSelector{source: selector, group: group}, nil
}

func (m *Matcher) Match(n *html.Node, selector string) (bool, error) {
	compiled, err := m.Compile(selector)
	if err != nil {
		return false, err
	}
	return compiled.Match(n), nil
}

func (m *Matcher) QueryAll(scope *html.Node, selector string) ([]*html.Node, error) {
	compiled, err := m.Compile(selector)
	if err != nil {
		return nil, err
	}
	return compiled.QueryAll(scope), nil
}

// Len returns the number of cached selectors.
func (m *Matcher) Len() int {
	return m.cache.Len()
}

type cssSelector struct {
	source string
	group  cascadia.SelectorGroup
}

func (s *cssSelector) Match(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && s.group.Match(n)
}

func (s *cssSelector) QueryAll(scope *html.Node) []*html.Node {
	return cascadia.QueryAll(scope, s.group)
}

func (s *cssSelector) String() string {
	return s.source
}

type xpathSelector struct {
	source string
	expr   *xpath.Expr
}

func (s *xpathSelector) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, selected := range htmlquery.QuerySelectorAll(topmost(n), s.expr) {
		if selected == n {
			return true
		}
	}
	return false
}

func (s *xpathSelector) QueryAll(scope *html.Node) []*html.Node {
	var nodes []*html.Node
	for _, selected := range htmlquery.QuerySelectorAll(scope, s.expr) {
		if selected != scope && selected.Type == html.ElementNode && IsAncestorOrSelf(scope, selected) {
			nodes = append(nodes, selected)
		}
	}
	return nodes
}

func (s *xpathSelector) String() string {
	return s.source
}

func topmost(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

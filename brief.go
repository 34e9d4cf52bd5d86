// Package brief queries an HTML document into ordered element collections and attaches managed,
// delegated and once-only event listeners to them.
//
//	doc, err := dom.ParseString(page)
//	...
//	b := brief.New(doc)
//	items, err := b.Query("li", "#menu")
//	...
//	_, err = items.OnAll("click", listener.NewHandler(func(current *dom.Element, event *listener.Event) {
//		current.ToggleClass("selected")
//	}))
package brief

import (
	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/internal/errcode"
	"github.com/hack-pad/brief/internal/log"
	"github.com/hack-pad/brief/listener"
)

// Brief builds collections from one document and owns the listener registry they share.
type Brief struct {
	doc      *dom.Document
	registry *listener.Registry
}

type config struct {
	registry     *listener.Registry
	registryOpts []listener.RegistryOption
}

// Option configures a Brief.
type Option func(*config)

// WithRegistry shares an existing registry. It must be bound to the same document.
func WithRegistry(registry *listener.Registry) Option {
	return func(c *config) {
		c.registry = registry
	}
}

// WithRegistryOptions configures the registry created by New. Ignored when WithRegistry is used.
func WithRegistryOptions(opts ...listener.RegistryOption) Option {
	return func(c *config) {
		c.registryOpts = append(c.registryOpts, opts...)
	}
}

// WithInstrumentation reports listener activity of the created registry to 'i'.
func WithInstrumentation(i listener.Instrumentation) Option {
	return WithRegistryOptions(listener.WithInstrumentation(i))
}

// New returns a Brief for 'doc'. A nil document is replaced by an empty one.
func New(doc *dom.Document, opts ...Option) *Brief {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if doc == nil {
		doc = dom.NewDocument()
	}
	registry := c.registry
	if registry == nil {
		registry = listener.NewRegistry(doc, c.registryOpts...)
	} else if registry.Document() != doc {
		log.Warn("registry is bound to another document, listeners will not see events dispatched on this one")
	}
	return &Brief{
		doc:      doc,
		registry: registry,
	}
}

func (b *Brief) Document() *dom.Document {
	return b.doc
}

func (b *Brief) Registry() *listener.Registry {
	return b.registry
}

// Query builds a collection from 'selector' within 'context'.
//
// Context may be nil, a selector string, a *dom.Element, a []*dom.Element or a *Collection.
// A string context resolves to its first match in the document; when nothing matches the whole
// document is searched instead. Element contexts are searched one by one and the results are
// concatenated in order without removing duplicates. An empty selector yields an empty collection.
func (b *Brief) Query(selector string, context any) (*Collection, error) {
	c := b.newCollection(selector, context)
	scope, scoped, err := b.resolveContext(context)
	if err != nil {
		return nil, err
	}
	if selector == "" {
		return c, nil
	}
	if !scoped {
		c.elements, err = b.doc.QuerySelectorAll(selector)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	for _, elem := range scope {
		found, err := elem.QuerySelectorAll(selector)
		if err != nil {
			return nil, err
		}
		c.elements = append(c.elements, found...)
	}
	return c, nil
}

func (b *Brief) resolveContext(context any) ([]*dom.Element, bool, error) {
	switch context := context.(type) {
	case nil:
		return nil, false, nil
	case string:
		if context == "" {
			return nil, false, nil
		}
		elem, err := b.doc.QuerySelector(context)
		if err != nil {
			return nil, false, err
		}
		if elem == nil {
			log.Debugf("context %q matched nothing, searching the whole document", context)
			return nil, false, nil
		}
		return []*dom.Element{elem}, true, nil
	case *dom.Element:
		if context == nil {
			return nil, false, nil
		}
		return []*dom.Element{context}, true, nil
	case []*dom.Element:
		return context, true, nil
	case *Collection:
		if context == nil {
			return nil, false, nil
		}
		return context.ToArray(), true, nil
	default:
		return nil, false, errcode.InvalidArgument("unsupported context type %T", context)
	}
}

// Collection returns a collection of 'items', flattened as in Collection.Add.
func (b *Brief) Collection(items ...any) *Collection {
	c := b.newCollection("", nil)
	c.elements = appendItems(nil, items)
	return c
}

// Collect normalizes 'target' into a collection. Target may be a selector string, a *dom.Element,
// a []*dom.Element or a *Collection, which is returned as is.
func (b *Brief) Collect(target any) (*Collection, error) {
	switch target := target.(type) {
	case string:
		if target == "" {
			return nil, errcode.InvalidArgument("empty target selector")
		}
		return b.Query(target, nil)
	case *dom.Element:
		if target == nil {
			return nil, errcode.InvalidArgument("nil target element")
		}
		return b.Collection(target), nil
	case []*dom.Element:
		return b.Collection(target), nil
	case *Collection:
		if target == nil {
			return nil, errcode.InvalidArgument("nil target collection")
		}
		return target, nil
	default:
		return nil, errcode.InvalidArgument("unsupported target type %T", target)
	}
}

func (b *Brief) On(target any, types string, h *listener.Handler, opts ...listener.Option) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.On(types, h, opts...)
	})
}

func (b *Brief) Off(target any, types string, h *listener.Handler, opts ...listener.Option) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.Off(types, h, opts...)
	})
}

func (b *Brief) Once(target any, types string, h *listener.Handler, opts ...listener.Option) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.Once(types, h, opts...)
	})
}

func (b *Brief) OnAll(target any, types string, h *listener.Handler, opts ...listener.Option) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.OnAll(types, h, opts...)
	})
}

func (b *Brief) OffAll(target any, types string, h *listener.Handler, opts ...listener.Option) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.OffAll(types, h, opts...)
	})
}

func (b *Brief) OnceAll(target any, types string, h *listener.Handler, opts ...listener.Option) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.OnceAll(types, h, opts...)
	})
}

func (b *Brief) Trigger(target any, types string) error {
	return b.apply(target, func(c *Collection) (*Collection, error) {
		return c.Trigger(types)
	})
}

func (b *Brief) apply(target any, fn func(*Collection) (*Collection, error)) error {
	c, err := b.Collect(target)
	if err != nil {
		return err
	}
	_, err = fn(c)
	return err
}

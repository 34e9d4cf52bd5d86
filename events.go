package brief

import (
	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/internal/errcode"
	"github.com/hack-pad/brief/listener"
)

// On subscribes 'h' on the first element. Use OnAll for every element.
func (c *Collection) On(types string, h *listener.Handler, opts ...listener.Option) (*Collection, error) {
	return c.each(c.first(), types, h, opts, c.brief.registry.On)
}

// Off removes a subscription made with On from the first element.
func (c *Collection) Off(types string, h *listener.Handler, opts ...listener.Option) (*Collection, error) {
	return c.each(c.first(), types, h, opts, c.brief.registry.Off)
}

// Once subscribes 'h' on the first element until its first invocation.
func (c *Collection) Once(types string, h *listener.Handler, opts ...listener.Option) (*Collection, error) {
	return c.each(c.first(), types, h, opts, c.brief.registry.Once)
}

func (c *Collection) OnAll(types string, h *listener.Handler, opts ...listener.Option) (*Collection, error) {
	return c.each(c.ToArray(), types, h, opts, c.brief.registry.On)
}

func (c *Collection) OffAll(types string, h *listener.Handler, opts ...listener.Option) (*Collection, error) {
	return c.each(c.ToArray(), types, h, opts, c.brief.registry.Off)
}

// OnceAll subscribes 'h' on every element; each subscription removes itself after firing once.
func (c *Collection) OnceAll(types string, h *listener.Handler, opts ...listener.Option) (*Collection, error) {
	return c.each(c.ToArray(), types, h, opts, c.brief.registry.Once)
}

// Trigger fires each type in 'types' at every element. Only listeners owned by that element run.
func (c *Collection) Trigger(types string) (*Collection, error) {
	if _, err := listener.ParseTypes(types); err != nil {
		return c, err
	}
	for _, elem := range c.ToArray() {
		if err := c.brief.registry.Trigger(elem, types); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (c *Collection) first() []*dom.Element {
	if len(c.elements) == 0 {
		return nil
	}
	return c.elements[:1:1]
}

type subscribeFunc func(el *dom.Element, types string, h *listener.Handler, opts ...listener.Option) error

func (c *Collection) each(elements []*dom.Element, types string, h *listener.Handler, opts []listener.Option, subscribe subscribeFunc) (*Collection, error) {
	if len(elements) == 0 {
		// nothing to subscribe, but malformed arguments still fail fast
		if h == nil {
			return c, errcode.InvalidArgument("nil handler")
		}
		_, err := listener.ParseTypes(types)
		return c, err
	}
	for _, elem := range elements {
		if err := subscribe(elem, types, h, opts...); err != nil {
			return c, err
		}
	}
	return c, nil
}

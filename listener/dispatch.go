package listener

import (
	"weak"

	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/internal/common"
	"github.com/hack-pad/brief/internal/errcode"
	"github.com/hack-pad/brief/internal/log"
	"golang.org/x/net/html"
)

func (r *Registry) physicalListener(eventType string, st style) dom.EventListener {
	return func(raw *dom.Event) {
		r.countDispatch(raw)
		records := r.snapshot(eventType, st)
		if len(records) == 0 || raw.Target == nil {
			return
		}
		r.propagate(raw.Target, newEvent(raw), st, records, true)
	}
}

func (r *Registry) countDispatch(raw *dom.Event) {
	ref := weak.Make(raw)
	r.mu.Lock()
	seen := r.lastDispatch == ref
	r.lastDispatch = ref
	r.mu.Unlock()
	if !seen {
		r.dispatched.Inc()
	}
}

// Trigger fires each type in 'types' at 'el' without propagation: only listeners owned by 'el' run,
// delegated ones first and only if 'el' itself matches their selector.
func (r *Registry) Trigger(el *dom.Element, types string) error {
	if el == nil {
		return errcode.InvalidArgument("nil element")
	}
	eventTypes, err := ParseTypes(types)
	if err != nil {
		return err
	}
	for _, eventType := range eventTypes {
		raw := dom.NewEvent(eventType, el)
		raw.Bubbles = false
		event := newEvent(raw)
		r.dispatched.Inc()
		if r.propagate(el, event, styleDelegated, r.snapshot(eventType, styleDelegated), false) {
			r.propagate(el, event, styleManaged, r.snapshot(eventType, styleManaged), false)
		}
	}
	return nil
}

// propagate walks from 'target' towards the root invoking each applicable record, in registration
// order per node. Without 'bubble' only 'target' is visited. Returns false once propagation stopped.
func (r *Registry) propagate(target *dom.Element, event *Event, st style, records []*record, bubble bool) bool {
	for current := target; current != nil; current = current.Parent() {
		for _, rec := range records {
			if event.PropagationStopped() {
				return false
			}
			if rec.removed.Load() {
				continue
			}
			owner := rec.owner.Value()
			if owner == nil {
				r.discard(rec)
				continue
			}
			if !bubble && owner != target.Node() {
				continue
			}
			if !r.applies(rec, owner, current, st) {
				continue
			}
			r.invoke(rec, current, event, st)
		}
		if !bubble {
			break
		}
	}
	return !event.PropagationStopped()
}

func (r *Registry) applies(rec *record, owner *html.Node, current *dom.Element, st style) bool {
	if st == styleManaged {
		return owner == current.Node()
	}
	if !dom.IsAncestorOrSelf(owner, current.Node()) {
		return false
	}
	match, err := r.doc.Matcher().Match(current.Node(), rec.delegate)
	return err == nil && match
}

func (r *Registry) invoke(rec *record, current *dom.Element, event *Event, st style) {
	if rec.once {
		if !rec.removed.CAS(false, true) {
			return
		}
		r.discard(rec)
	}
	r.invoked.Inc()
	r.config.instrumentation.ListenerInvoked(rec.eventType, st == styleDelegated)

	defer common.CatchExceptionHandler(func(err error) {
		log.Errorf("%s listener for %q on %s panicked: %+v", st, rec.eventType, current, err)
		r.config.instrumentation.ListenerPanicked(rec.eventType, err)
		if r.config.errorHandler != nil {
			r.config.errorHandler(rec.eventType, err)
		}
	})
	rec.handler.fn(current, event)
}

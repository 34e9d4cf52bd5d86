package listener

import (
	"time"

	"github.com/hack-pad/brief/dom"
)

// Event is the view of a raw dom.Event handed to callbacks. Stopping propagation or preventing the
// default is forwarded to the raw event.
type Event struct {
	Type      string
	Target    *dom.Element
	TimeStamp time.Time

	raw                *dom.Event
	defaultPrevented   bool
	propagationStopped bool
}

func newEvent(raw *dom.Event) *Event {
	return &Event{
		Type:             raw.Type,
		Target:           raw.Target,
		TimeStamp:        raw.TimeStamp,
		raw:              raw,
		defaultPrevented: raw.DefaultPrevented(),
	}
}

func (e *Event) Raw() *dom.Event {
	return e.raw
}

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
	e.raw.PreventDefault()
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *Event) StopPropagation() {
	e.propagationStopped = true
	e.raw.StopPropagation()
}

func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

package dom

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/hack-pad/brief/internal/common"
	"github.com/hack-pad/brief/internal/log"
	"go.uber.org/atomic"
)

// Event is a raw event as delivered to physical listeners.
type Event struct {
	Type      string
	Target    *Element
	TimeStamp time.Time
	Bubbles   bool

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent returns a bubbling event of type 'name' targeted at 'target'.
func NewEvent(name string, target *Element) *Event {
	return &Event{
		Type:      name,
		Target:    target,
		TimeStamp: time.Now(),
		Bubbles:   true,
	}
}

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

type EventListener = func(event *Event)

// ListenerID identifies an installed physical listener. Go funcs are not comparable, so removal is by ID.
type ListenerID uint64

type listenerEntry struct {
	id       ListenerID
	listener EventListener
}

type eventTarget struct {
	mu      sync.Mutex
	lastID  *atomic.Uint64
	capture map[string][]listenerEntry
	bubble  map[string][]listenerEntry
}

func newEventTarget() *eventTarget {
	return &eventTarget{
		lastID:  atomic.NewUint64(0),
		capture: make(map[string][]listenerEntry),
		bubble:  make(map[string][]listenerEntry),
	}
}

func (e *eventTarget) phase(capture bool) map[string][]listenerEntry {
	if capture {
		return e.capture
	}
	return e.bubble
}

func (e *eventTarget) Listen(eventName string, capture bool, listener EventListener) ListenerID {
	id := ListenerID(e.lastID.Inc())
	e.mu.Lock()
	listeners := e.phase(capture)
	listeners[eventName] = append(listeners[eventName], listenerEntry{id: id, listener: listener})
	e.mu.Unlock()
	return id
}

func (e *eventTarget) Unlisten(eventName string, capture bool, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	listeners := e.phase(capture)
	entries := listeners[eventName]
	for i, entry := range entries {
		if entry.id == id {
			remaining := make([]listenerEntry, 0, len(entries)-1)
			remaining = append(remaining, entries[:i]...)
			remaining = append(remaining, entries[i+1:]...)
			if len(remaining) == 0 {
				delete(listeners, eventName)
			} else {
				listeners[eventName] = remaining
			}
			return true
		}
	}
	return false
}

func (e *eventTarget) Count(eventName string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.capture[eventName]) + len(e.bubble[eventName])
}

func (e *eventTarget) Emit(event *Event) {
	e.mu.Lock()
	capturing := e.capture[event.Type]
	bubbling := e.bubble[event.Type]
	e.mu.Unlock()

	for _, l := range capturing {
		callListener(l.listener, event)
	}
	if !event.Bubbles || event.PropagationStopped() {
		return
	}
	for _, l := range bubbling {
		callListener(l.listener, event)
	}
}

func callListener(listener EventListener, event *Event) {
	defer common.CatchExceptionHandler(func(err error) {
		log.Error("recovered from panic: ", err, "\n", string(debug.Stack()))
	})
	listener(event)
}

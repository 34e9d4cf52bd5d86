package listener

import (
	"github.com/hack-pad/brief/dom"
)

// Callback receives the node the listener fired for and the dispatched event. For delegated listeners
// 'current' is the node that matched the delegate selector, not the element the listener was bound to.
type Callback func(current *dom.Element, event *Event)

// Handler gives a Callback a stable identity for later removal.
type Handler struct {
	fn Callback
}

func NewHandler(fn Callback) *Handler {
	return &Handler{fn: fn}
}

func (h *Handler) valid() bool {
	return h != nil && h.fn != nil
}

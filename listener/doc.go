// Package listener maps logical event subscriptions onto a single physical listener per event type.
//
// A Registry is bound to one dom.Document. Listeners are either managed (bound directly to an
// element) or delegated (bound to an ancestor and filtered by a selector matched against each node
// between the event target and that ancestor). For each event type the registry installs at most one
// physical listener per style on the document: delegated listeners are served from the capture phase,
// managed listeners from the bubble phase. Dispatch walks from the event target up to the root,
// deepest node first, invoking matching listeners in registration order until propagation stops.
//
// Handlers are compared by identity, so the same *Handler must be passed to Off that was passed to On:
//
//	clicked := listener.NewHandler(func(current *dom.Element, event *listener.Event) {
//		fmt.Println("clicked", current)
//	})
//	err := registry.On(list, "click", clicked, listener.Delegate("li"))
//	...
//	err = registry.Off(list, "click", clicked, listener.Delegate("li"))
package listener

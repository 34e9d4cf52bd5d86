package listener

// Instrumentation observes registry activity. Implementations must not call back into the registry.
type Instrumentation interface {
	PhysicalListenerInstalled(eventType string, delegated bool)
	PhysicalListenerRemoved(eventType string, delegated bool)
	ListenerInvoked(eventType string, delegated bool)
	ListenerPanicked(eventType string, err error)
}

type nopInstrumentation struct{}

func (nopInstrumentation) PhysicalListenerInstalled(string, bool) {}
func (nopInstrumentation) PhysicalListenerRemoved(string, bool)   {}
func (nopInstrumentation) ListenerInvoked(string, bool)           {}
func (nopInstrumentation) ListenerPanicked(string, error)         {}

package listener

import (
	"strings"
	"sync"
	"weak"

	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/internal/errcode"
	"github.com/hack-pad/brief/internal/log"
	"go.uber.org/atomic"
	"golang.org/x/net/html"
)

type style int

const (
	styleManaged style = iota
	styleDelegated
)

func (s style) String() string {
	if s == styleDelegated {
		return "delegated"
	}
	return "managed"
}

// delegated listeners are served from the capture phase so they run before managed ones
func (s style) capture() bool {
	return s == styleDelegated
}

type record struct {
	owner     weak.Pointer[html.Node]
	eventType string
	handler   *Handler
	delegate  string
	once      bool
	removed   *atomic.Bool
}

func (r *record) style() style {
	if r.delegate != "" {
		return styleDelegated
	}
	return styleManaged
}

func (r *record) matches(owner *html.Node, h *Handler, delegate string) bool {
	return r.handler == h && r.delegate == delegate && r.owner.Value() == owner
}

type bucket struct {
	// records is replaced, never edited in place, so dispatch can iterate a stable snapshot
	records  []*record
	physical dom.ListenerID
}

// Registry tracks logical listeners for one document.
type Registry struct {
	doc    *dom.Document
	config registryConfig

	mu      sync.Mutex
	buckets [2]map[string]*bucket

	// both physical listeners of a type see the same raw event, count it once
	lastDispatch weak.Pointer[dom.Event]

	dispatched *atomic.Uint64
	invoked    *atomic.Uint64
}

func NewRegistry(doc *dom.Document, opts ...RegistryOption) *Registry {
	config := registryConfig{
		instrumentation: nopInstrumentation{},
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Registry{
		doc:        doc,
		config:     config,
		buckets:    [2]map[string]*bucket{make(map[string]*bucket), make(map[string]*bucket)},
		dispatched: atomic.NewUint64(0),
		invoked:    atomic.NewUint64(0),
	}
}

func (r *Registry) Document() *dom.Document {
	return r.doc
}

// ParseTypes splits a space separated list of event types.
func ParseTypes(types string) ([]string, error) {
	eventTypes := strings.Fields(types)
	if len(eventTypes) == 0 {
		return nil, errcode.InvalidArgument("no event types in %q", types)
	}
	return eventTypes, nil
}

// Validate checks a subscription the way On would, without registering anything.
func (r *Registry) Validate(types string, h *Handler, opts ...Option) error {
	_, _, err := r.validate(types, h, opts)
	return err
}

func (r *Registry) validate(types string, h *Handler, opts []Option) ([]string, Options, error) {
	if !h.valid() {
		return nil, Options{}, errcode.InvalidArgument("handler must wrap a non-nil callback")
	}
	eventTypes, err := ParseTypes(types)
	if err != nil {
		return nil, Options{}, err
	}
	o := buildOptions(opts)
	if o.Delegate != "" {
		if _, err := r.doc.Matcher().Compile(o.Delegate); err != nil {
			return nil, Options{}, err
		}
	}
	return eventTypes, o, nil
}

// On subscribes 'h' to every type in 'types' on 'el'. Subscribing the same handler, element, type and
// delegate selector twice has no further effect.
func (r *Registry) On(el *dom.Element, types string, h *Handler, opts ...Option) error {
	eventTypes, o, err := r.validate(types, h, opts)
	if err != nil {
		return err
	}
	if el == nil {
		return errcode.InvalidArgument("nil element")
	}
	for _, eventType := range eventTypes {
		r.add(el.Node(), eventType, h, o)
	}
	return nil
}

// Once is On with the Once option forced.
func (r *Registry) Once(el *dom.Element, types string, h *Handler, opts ...Option) error {
	return r.On(el, types, h, append(opts[:len(opts):len(opts)], Once())...)
}

func (r *Registry) add(owner *html.Node, eventType string, h *Handler, o Options) {
	st := o.style()
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.buckets[st][eventType]
	if b == nil {
		b = &bucket{
			physical: r.doc.AddEventListener(eventType, r.physicalListener(eventType, st), st.capture()),
		}
		r.buckets[st][eventType] = b
		log.Debugf("installed %s physical listener for %q", st, eventType)
		r.config.instrumentation.PhysicalListenerInstalled(eventType, st == styleDelegated)
	}
	for _, rec := range b.records {
		if rec.matches(owner, h, o.Delegate) {
			return
		}
	}
	records := make([]*record, 0, len(b.records)+1)
	records = append(records, b.records...)
	b.records = append(records, &record{
		owner:     weak.Make(owner),
		eventType: eventType,
		handler:   h,
		delegate:  o.Delegate,
		once:      o.Once,
		removed:   atomic.NewBool(false),
	})
}

// Off removes the subscriptions of 'h' on 'el' for each type in 'types' whose delegate selector equals
// the Delegate option. Without a Delegate option only managed subscriptions are removed.
// Removing a subscription that does not exist is not an error.
func (r *Registry) Off(el *dom.Element, types string, h *Handler, opts ...Option) error {
	if h == nil {
		return errcode.InvalidArgument("nil handler")
	}
	if el == nil {
		return errcode.InvalidArgument("nil element")
	}
	eventTypes, err := ParseTypes(types)
	if err != nil {
		return err
	}
	o := buildOptions(opts)
	owner := el.Node()
	for _, eventType := range eventTypes {
		r.removeMatching(eventType, o.style(), func(rec *record) bool {
			return rec.matches(owner, h, o.Delegate)
		})
	}
	return nil
}

// discard removes one record, e.g. after a once listener fired or its owner was collected.
func (r *Registry) discard(rec *record) {
	rec.removed.Store(true)
	r.removeMatching(rec.eventType, rec.style(), func(other *record) bool {
		return other == rec
	})
}

func (r *Registry) removeMatching(eventType string, st style, match func(*record) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.buckets[st][eventType]
	if b == nil {
		return 0
	}
	kept := make([]*record, 0, len(b.records))
	removed := 0
	for _, rec := range b.records {
		if match(rec) {
			rec.removed.Store(true)
			removed++
		} else {
			kept = append(kept, rec)
		}
	}
	b.records = kept
	if len(kept) == 0 {
		r.uninstall(eventType, st, b)
	}
	return removed
}

// uninstall must be called with r.mu held.
func (r *Registry) uninstall(eventType string, st style, b *bucket) {
	r.doc.RemoveEventListener(eventType, b.physical, st.capture())
	delete(r.buckets[st], eventType)
	log.Debugf("removed %s physical listener for %q", st, eventType)
	r.config.instrumentation.PhysicalListenerRemoved(eventType, st == styleDelegated)
}

func (r *Registry) snapshot(eventType string, st style) []*record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.buckets[st][eventType]; b != nil {
		return b.records
	}
	return nil
}

// Prune drops subscriptions whose owning element has been garbage collected.
func (r *Registry) Prune() int {
	pruned := 0
	for _, st := range []style{styleManaged, styleDelegated} {
		r.mu.Lock()
		eventTypes := make([]string, 0, len(r.buckets[st]))
		for eventType := range r.buckets[st] {
			eventTypes = append(eventTypes, eventType)
		}
		r.mu.Unlock()
		for _, eventType := range eventTypes {
			pruned += r.removeMatching(eventType, st, func(rec *record) bool {
				return rec.owner.Value() == nil
			})
		}
	}
	return pruned
}

// Close removes every subscription and physical listener.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range []style{styleManaged, styleDelegated} {
		for eventType, b := range r.buckets[st] {
			for _, rec := range b.records {
				rec.removed.Store(true)
			}
			r.uninstall(eventType, st, b)
		}
	}
}

// Stats is a point-in-time view of the registry.
type Stats struct {
	// Managed and Delegated count logical listeners by event type.
	Managed   map[string]int
	Delegated map[string]int

	// Dispatched counts raw events that reached the registry plus one per triggered type.
	Dispatched uint64
	Invoked    uint64
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := Stats{
		Managed:    make(map[string]int, len(r.buckets[styleManaged])),
		Delegated:  make(map[string]int, len(r.buckets[styleDelegated])),
		Dispatched: r.dispatched.Load(),
		Invoked:    r.invoked.Load(),
	}
	for eventType, b := range r.buckets[styleManaged] {
		stats.Managed[eventType] = len(b.records)
	}
	for eventType, b := range r.buckets[styleDelegated] {
		stats.Delegated[eventType] = len(b.records)
	}
	return stats
}

// Len returns the number of logical listeners for 'eventType' in both styles.
func (r *Registry) Len(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, buckets := range r.buckets {
		if b := buckets[eventType]; b != nil {
			count += len(b.records)
		}
	}
	return count
}

// PhysicalListeners returns how many physical listeners this registry installed for 'eventType'.
func (r *Registry) PhysicalListeners(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, buckets := range r.buckets {
		if _, ok := buckets[eventType]; ok {
			count++
		}
	}
	return count
}

package listener

import (
	"runtime"
	"testing"

	"github.com/hack-pad/brief/dom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedHTML = `<div id="outer" class="zone">
	<div id="inner" class="zone">
		<a id="link" href="#"><span id="leaf">x</span></a>
	</div>
</div>
<button id="button">b</button>`

func setup(t *testing.T, opts ...RegistryOption) (*dom.Document, *Registry) {
	t.Helper()
	doc, err := dom.ParseString(nestedHTML)
	require.NoError(t, err)
	return doc, NewRegistry(doc, opts...)
}

func byID(t *testing.T, doc *dom.Document, id string) *dom.Element {
	t.Helper()
	elem := doc.GetElementByID(id)
	require.NotNil(t, elem, id)
	return elem
}

func counter(count *int) *Handler {
	return NewHandler(func(current *dom.Element, event *Event) {
		*count++
	})
}

func TestOnInvalidArguments(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	valid := NewHandler(func(*dom.Element, *Event) {})

	for _, tc := range []struct {
		description string
		el          *dom.Element
		types       string
		handler     *Handler
		opts        []Option
		expectErr   error
	}{
		{"nil handler", button, "click", nil, nil, ErrInvalidArgument},
		{"nil callback", button, "click", NewHandler(nil), nil, ErrInvalidArgument},
		{"no types", button, "   ", valid, nil, ErrInvalidArgument},
		{"nil element", nil, "click", valid, nil, ErrInvalidArgument},
		{"bad delegate", button, "click", valid, []Option{Delegate("a[")}, ErrInvalidSelector},
	} {
		t.Run(tc.description, func(t *testing.T) {
			err := registry.On(tc.el, tc.types, tc.handler, tc.opts...)
			assert.True(t, errors.Is(err, tc.expectErr), "got %v", err)
		})
	}
	assert.Zero(t, doc.ListenerCount("click"))
	assert.Zero(t, registry.Len("click"))
}

func TestOffIsIdempotent(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	calls := 0
	registered := counter(&calls)
	require.NoError(t, registry.On(button, "click", registered))

	never := NewHandler(func(*dom.Element, *Event) {})
	assert.NoError(t, registry.Off(button, "click", never))
	assert.NoError(t, registry.Off(button, "keydown", registered))
	assert.NoError(t, registry.Off(button, "click", registered, Delegate("a")))
	assert.Equal(t, 1, registry.Len("click"))
	assert.Equal(t, 1, doc.ListenerCount("click"))

	assert.True(t, errors.Is(registry.Off(button, "click", nil), ErrInvalidArgument))
	assert.True(t, errors.Is(registry.Off(nil, "click", never), ErrInvalidArgument))
	assert.True(t, errors.Is(registry.Off(button, "", never), ErrInvalidArgument))
}

func TestRegisterDispatchRoundTrip(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	calls := 0
	h := counter(&calls)

	require.NoError(t, registry.On(button, "click", h))
	assert.Equal(t, 1, registry.PhysicalListeners("click"))
	doc.Dispatch(button, "click")
	assert.Equal(t, 1, calls)

	require.NoError(t, registry.Off(button, "click", h))
	doc.Dispatch(button, "click")
	assert.Equal(t, 1, calls)
	assert.Zero(t, registry.PhysicalListeners("click"))
	assert.Zero(t, doc.ListenerCount("click"))
}

func TestDuplicateRegistrationIsIgnored(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	calls := 0
	h := counter(&calls)
	require.NoError(t, registry.On(button, "click", h))
	require.NoError(t, registry.On(button, "click", h))
	assert.Equal(t, 1, registry.Len("click"))

	doc.Dispatch(button, "click")
	assert.Equal(t, 1, calls)
}

func TestMultipleTypes(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	calls := 0
	h := counter(&calls)
	require.NoError(t, registry.On(button, "click  keydown", h))
	assert.Equal(t, Stats{
		Managed:   map[string]int{"click": 1, "keydown": 1},
		Delegated: map[string]int{},
	}, registry.Stats())

	doc.Dispatch(button, "keydown")
	doc.Dispatch(button, "click")
	assert.Equal(t, 2, calls)

	require.NoError(t, registry.Off(button, "click keydown", h))
	assert.Empty(t, registry.Stats().Managed)
	assert.Zero(t, doc.ListenerCount("click")+doc.ListenerCount("keydown"))
}

func TestManagedListenersBubble(t *testing.T) {
	doc, registry := setup(t)
	leaf, outer := byID(t, doc, "leaf"), byID(t, doc, "outer")
	var order []string
	record := NewHandler(func(current *dom.Element, event *Event) {
		order = append(order, current.ID())
		assert.Equal(t, "leaf", event.Target.ID())
	})
	require.NoError(t, registry.On(outer, "click", record))
	require.NoError(t, registry.On(leaf, "click", record))

	doc.Dispatch(leaf, "click")
	assert.Equal(t, []string{"leaf", "outer"}, order)
}

func TestOnce(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	calls := 0
	require.NoError(t, registry.Once(button, "click", counter(&calls)))

	doc.Dispatch(button, "click")
	doc.Dispatch(button, "click")
	assert.Equal(t, 1, calls)
	assert.Zero(t, registry.Len("click"))
	assert.Zero(t, doc.ListenerCount("click"), "self removal uninstalls the physical listener")
}

func TestOnceOptionDoesNotAliasCallerOptions(t *testing.T) {
	doc, registry := setup(t)
	outer := byID(t, doc, "outer")
	opts := make([]Option, 1, 4)
	opts[0] = Delegate("a")
	calls := 0
	require.NoError(t, registry.Once(outer, "click", counter(&calls), opts...))
	require.NoError(t, registry.On(outer, "keydown", counter(&calls), opts...))

	doc.Dispatch(byID(t, doc, "leaf"), "keydown")
	doc.Dispatch(byID(t, doc, "leaf"), "keydown")
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, registry.Len("keydown"))
}

func TestOffMatchesDelegate(t *testing.T) {
	doc, registry := setup(t)
	outer := byID(t, doc, "outer")
	h := NewHandler(func(*dom.Element, *Event) {})
	require.NoError(t, registry.On(outer, "click", h, Delegate("a")))

	require.NoError(t, registry.Off(outer, "click", h))
	assert.Equal(t, 1, registry.Len("click"))
	require.NoError(t, registry.Off(outer, "click", h, Delegate("span")))
	assert.Equal(t, 1, registry.Len("click"))
	require.NoError(t, registry.Off(byID(t, doc, "inner"), "click", h, Delegate("a")))
	assert.Equal(t, 1, registry.Len("click"))

	require.NoError(t, registry.Off(outer, "click", h, WithOptions(Options{Delegate: "a"})))
	assert.Zero(t, registry.Len("click"))
	assert.Zero(t, doc.ListenerCount("click"))
}

func TestPhysicalListenerPerStyle(t *testing.T) {
	doc, registry := setup(t)
	outer, inner := byID(t, doc, "outer"), byID(t, doc, "inner")
	first := NewHandler(func(*dom.Element, *Event) {})
	second := NewHandler(func(*dom.Element, *Event) {})

	require.NoError(t, registry.On(outer, "click", first))
	require.NoError(t, registry.On(inner, "click", second))
	assert.Equal(t, 1, doc.ListenerCount("click"))
	require.NoError(t, registry.On(outer, "click", first, Delegate("a")))
	require.NoError(t, registry.On(inner, "click", second, Delegate("a")))
	assert.Equal(t, 2, doc.ListenerCount("click"))
	assert.Equal(t, 2, registry.PhysicalListeners("click"))
	assert.Equal(t, 4, registry.Len("click"))

	require.NoError(t, registry.Off(outer, "click", first))
	require.NoError(t, registry.Off(inner, "click", second))
	assert.Equal(t, 1, doc.ListenerCount("click"))

	registry.Close()
	assert.Zero(t, doc.ListenerCount("click"))
	assert.Zero(t, registry.Len("click"))
}

type instrumentationRecorder struct {
	installed, removed, invoked int
	panics                      []string
}

func (i *instrumentationRecorder) PhysicalListenerInstalled(string, bool) { i.installed++ }
func (i *instrumentationRecorder) PhysicalListenerRemoved(string, bool)   { i.removed++ }
func (i *instrumentationRecorder) ListenerInvoked(string, bool)           { i.invoked++ }
func (i *instrumentationRecorder) ListenerPanicked(eventType string, err error) {
	i.panics = append(i.panics, eventType+": "+err.Error())
}

func TestInstrumentation(t *testing.T) {
	recorder := &instrumentationRecorder{}
	doc, registry := setup(t, WithInstrumentation(recorder))
	button := byID(t, doc, "button")
	calls := 0
	h := counter(&calls)

	require.NoError(t, registry.On(button, "click", h))
	require.NoError(t, registry.On(button, "click", h, Delegate("button")))
	doc.Dispatch(button, "click")
	require.NoError(t, registry.Off(button, "click", h))
	require.NoError(t, registry.Off(button, "click", h, Delegate("button")))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, recorder.installed)
	assert.Equal(t, 2, recorder.removed)
	assert.Equal(t, 2, recorder.invoked)
	assert.Empty(t, recorder.panics)

	stats := registry.Stats()
	assert.Equal(t, uint64(1), stats.Dispatched, "both physical listeners share one raw event")
	assert.Equal(t, uint64(2), stats.Invoked)
}

func TestDispatchedCountsRawEvents(t *testing.T) {
	doc, registry := setup(t)
	button := byID(t, doc, "button")
	h := NewHandler(func(*dom.Element, *Event) {})
	require.NoError(t, registry.On(button, "click", h))
	require.NoError(t, registry.On(byID(t, doc, "outer"), "click", h, Delegate("a")))

	doc.Dispatch(button, "click")
	doc.Dispatch(byID(t, doc, "leaf"), "click")
	assert.Equal(t, uint64(2), registry.Stats().Dispatched)

	require.NoError(t, registry.Trigger(button, "click focus"))
	assert.Equal(t, uint64(4), registry.Stats().Dispatched)
}

func registerDetached(t *testing.T, doc *dom.Document, registry *Registry, h *Handler) {
	t.Helper()
	detached := doc.CreateElement("div")
	require.NoError(t, registry.On(detached, "click", h))
}

func TestPruneCollectedOwners(t *testing.T) {
	doc, registry := setup(t)
	h := NewHandler(func(*dom.Element, *Event) {})
	registerDetached(t, doc, registry, h)
	require.NoError(t, registry.On(byID(t, doc, "button"), "click", h))
	require.Equal(t, 2, registry.Len("click"))

	pruned := 0
	for attempt := 0; attempt < 10 && pruned == 0; attempt++ {
		runtime.GC()
		pruned = registry.Prune()
	}
	assert.Equal(t, 1, pruned)
	assert.Equal(t, 1, registry.Len("click"))
	assert.Equal(t, 1, doc.ListenerCount("click"))
}

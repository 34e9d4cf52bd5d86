package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchPhases(t *testing.T) {
	doc := parseTest(t, listHTML)
	leaf := doc.GetElementByID("leaf")

	var calls []string
	doc.AddEventListener("click", func(event *Event) {
		calls = append(calls, "bubble")
	}, false)
	doc.AddEventListener("click", func(event *Event) {
		calls = append(calls, "capture")
		assert.True(t, event.Target.Equal(leaf))
	}, true)
	doc.AddEventListener("keydown", func(event *Event) {
		calls = append(calls, "other type")
	}, true)
	assert.Equal(t, 2, doc.ListenerCount("click"))

	event := doc.Dispatch(leaf, "click")
	assert.Equal(t, []string{"capture", "bubble"}, calls)
	assert.Equal(t, "click", event.Type)
	assert.False(t, event.TimeStamp.IsZero())
}

func TestDispatchStopPropagation(t *testing.T) {
	doc := parseTest(t, listHTML)
	var calls []string
	doc.AddEventListener("click", func(event *Event) {
		calls = append(calls, "capture 1")
		event.StopPropagation()
		event.PreventDefault()
	}, true)
	doc.AddEventListener("click", func(event *Event) {
		calls = append(calls, "capture 2")
	}, true)
	doc.AddEventListener("click", func(event *Event) {
		calls = append(calls, "bubble")
	}, false)

	notPrevented := doc.DispatchEvent(NewEvent("click", doc.Body()))
	assert.False(t, notPrevented)
	assert.Equal(t, []string{"capture 1", "capture 2"}, calls)
}

func TestDispatchNonBubbling(t *testing.T) {
	doc := NewDocument()
	var calls []string
	doc.AddEventListener("focus", func(event *Event) {
		calls = append(calls, "bubble")
	}, false)
	event := NewEvent("focus", doc.Body())
	event.Bubbles = false
	assert.True(t, doc.DispatchEvent(event))
	assert.Empty(t, calls)
}

func TestRemoveEventListener(t *testing.T) {
	doc := NewDocument()
	calls := 0
	id := doc.AddEventListener("click", func(event *Event) {
		calls++
	}, true)
	require.Equal(t, 1, doc.ListenerCount("click"))

	assert.False(t, doc.RemoveEventListener("click", id, false), "phase must match")
	assert.True(t, doc.RemoveEventListener("click", id, true))
	assert.False(t, doc.RemoveEventListener("click", id, true))
	assert.Zero(t, doc.ListenerCount("click"))

	doc.Dispatch(doc.Body(), "click")
	assert.Zero(t, calls)
}

func TestPanickingListenerIsRecovered(t *testing.T) {
	doc := NewDocument()
	reached := false
	doc.AddEventListener("click", func(event *Event) {
		panic("listener failure")
	}, true)
	doc.AddEventListener("click", func(event *Event) {
		reached = true
	}, true)
	assert.NotPanics(t, func() {
		doc.Dispatch(doc.Body(), "click")
	})
	assert.True(t, reached)
}

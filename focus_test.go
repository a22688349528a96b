package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusRegistryStep(t *testing.T) {
	var r focusRegistry
	_, ok := r.step(0, true)
	assert.False(t, ok, "nothing registered")

	r.register(10)
	r.register(20)
	r.register(30)
	_, ok = r.step(0, true)
	assert.False(t, ok, "the current frame's items are not navigable yet")

	r.beginFrame()
	tests := []struct {
		from    ID
		forward bool
		want    ID
	}{
		{from: 10, forward: true, want: 20},
		{from: 30, forward: true, want: 10},
		{from: 10, forward: false, want: 30},
		{from: 20, forward: false, want: 10},
		{from: 0, forward: true, want: 10},
		{from: 0, forward: false, want: 30},
		{from: 99, forward: true, want: 10},
	}
	for _, tt := range tests {
		got, ok := r.step(tt.from, tt.forward)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "step(%d, %v)", tt.from, tt.forward)
	}

	r.beginFrame()
	_, ok = r.step(10, true)
	assert.False(t, ok, "an empty frame empties the tab order")
}

func TestTabMovesFocusBetweenFields(t *testing.T) {
	h := newTestHarness(t)
	a, b := "aaa", "bbbb"
	var idA, idB ID
	fields := func() {
		idA = h.ctx.GetID("##a")
		h.ctx.InputText("##a", &a)
		idB = h.ctx.GetID("##b")
		h.ctx.InputText("##b", &b)
	}

	h.click(5, 5, fields)
	require.Equal(t, idA, h.ctx.ActiveID())

	h.key(KeyTab, KeyModNone, fields)
	h.frame(fields)
	assert.Equal(t, idB, h.ctx.ActiveID())
	lo, hi := h.selection()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 4, hi, "tabbing in selects all")
	assert.Equal(t, idB, h.ctx.NavID())

	h.key(KeyTab, KeyModShift, fields)
	h.frame(fields)
	assert.Equal(t, idA, h.ctx.ActiveID(), "Shift+Tab goes back")

	h.key(KeyTab, KeyModShift, fields)
	h.frame(fields)
	assert.Equal(t, idB, h.ctx.ActiveID(), "tab order wraps")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "bbbb", b)
}

func TestTabEntersFocusOrder(t *testing.T) {
	h := newTestHarness(t)
	a, b := "", ""
	var idA ID
	fields := func() {
		idA = h.ctx.GetID("##a")
		h.ctx.InputText("##a", &a)
		h.ctx.InputText("##b", &b)
	}

	h.frame(fields)
	require.Zero(t, h.ctx.ActiveID())

	h.key(KeyTab, KeyModNone, fields)
	assert.Equal(t, idA, h.ctx.ActiveID())
}

func TestTabStaysInFieldThatConsumesIt(t *testing.T) {
	h := newTestHarness(t)
	a, b := "", ""
	var idA ID
	fields := func() {
		idA = h.ctx.GetID("##a")
		h.ctx.InputText("##a", &a, WithFlags(InputTextFlagsAllowTabInput))
		h.ctx.InputText("##b", &b)
	}

	h.click(5, 5, fields)
	h.key(KeyTab, KeyModNone, fields)
	h.frame(fields)
	assert.Equal(t, idA, h.ctx.ActiveID())
	assert.Equal(t, "\t", a)
}

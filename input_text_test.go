package gui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHarness drives a Context frame by frame with a 7x13 monospace font
// and no padding, so a field submitted first sits at (0, 0) and glyph i
// spans x in [7i, 7i+7).
type testHarness struct {
	t    *testing.T
	ctx  *Context
	in   *InputState
	clip *MemoryClipboard
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	ctx := NewContext()
	ctx.SetFont(MonoFont{CharWidth: 7, CharHeight: 13})
	st := DefaultStyle()
	st.WindowPadding = Vec2{}
	st.FramePadding = Vec2{}
	st.ItemSpacing = Vec2{}
	st.ItemWidth = 200
	ctx.SetStyle(st)
	clip := &MemoryClipboard{}
	ctx.SetClipboardProvider(clip)
	return &testHarness{t: t, ctx: ctx, in: ctx.Input, clip: clip}
}

func (h *testHarness) frame(fn func()) {
	h.ctx.NewFrame(h.in, Vec2{X: 800, Y: 600}, 1.0/60)
	fn()
	h.ctx.EndFrame()
}

// click presses the left button at (x, y) for one frame and releases it.
func (h *testHarness) click(x, y float32, fn func()) {
	h.in.SetMousePos(x, y)
	h.in.SetMouseButton(MouseButtonLeft, true)
	h.frame(fn)
	h.in.SetMouseButton(MouseButtonLeft, false)
}

func (h *testHarness) typeText(text string, fn func()) {
	for _, c := range text {
		h.in.AddInputChar(c)
	}
	h.frame(fn)
}

func (h *testHarness) key(k Key, mods KeyMod, fn func()) {
	h.in.ModCtrl = mods&KeyModCtrl != 0
	h.in.ModShift = mods&KeyModShift != 0
	h.in.ModAlt = mods&KeyModAlt != 0
	h.in.ModSuper = mods&KeyModSuper != 0
	h.in.SetKey(k, true)
	h.frame(fn)
	h.in.SetKey(k, false)
	h.in.ModCtrl, h.in.ModShift, h.in.ModAlt, h.in.ModSuper = false, false, false, false
}

func (h *testHarness) selection() (int, int) {
	return h.ctx.inputTextState.selectionRange()
}

func TestInputTextTyping(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	var changed bool
	field := func() { changed = h.ctx.InputText("##name", &s) }

	h.click(5, 5, field)
	require.NotZero(t, h.ctx.ActiveID(), "click activates the field")
	assert.True(t, h.ctx.WantCaptureKeyboard)
	assert.True(t, h.ctx.WantTextInput)
	assert.False(t, changed)

	h.typeText("héllo", field)
	assert.True(t, changed)
	assert.Equal(t, "héllo", s)

	h.frame(field)
	assert.False(t, changed, "no edit, no change")
}

func TestInputTextClickOutsideDeactivates(t *testing.T) {
	h := newTestHarness(t)
	s := "abc"
	field := func() { h.ctx.InputText("##f", &s) }

	h.click(5, 5, field)
	require.NotZero(t, h.ctx.ActiveID())

	h.click(500, 500, field)
	assert.Zero(t, h.ctx.ActiveID())
}

func TestInputTextActiveVanishes(t *testing.T) {
	h := newTestHarness(t)
	s := "abc"
	h.click(5, 5, func() { h.ctx.InputText("##f", &s) })
	require.NotZero(t, h.ctx.ActiveID())

	h.frame(func() {})
	h.frame(func() {})
	assert.Zero(t, h.ctx.ActiveID(), "a field that stops being submitted loses focus")
}

func TestInputTextEscapeReverts(t *testing.T) {
	h := newTestHarness(t)
	s := "abc"
	field := func() { h.ctx.InputText("##f", &s) }

	h.click(150, 5, field)
	h.typeText("de", field)
	require.Equal(t, "abcde", s, "edits are applied live")

	h.key(KeyEscape, KeyModNone, field)
	assert.Equal(t, "abc", s)
	assert.Zero(t, h.ctx.ActiveID())
}

func TestInputTextEscapeClearsAll(t *testing.T) {
	h := newTestHarness(t)
	s := "abc"
	field := func() { h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsEscapeClearsAll)) }

	h.click(5, 5, field)
	h.key(KeyEscape, KeyModNone, field)
	assert.Equal(t, "", s)
	assert.NotZero(t, h.ctx.ActiveID(), "first Escape only clears")

	h.key(KeyEscape, KeyModNone, field)
	assert.Zero(t, h.ctx.ActiveID(), "Escape on empty text leaves")
}

func TestInputTextEnterReturnsTrue(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	var entered bool
	field := func() {
		entered = h.ctx.InputText("##cmd", &s, WithFlags(InputTextFlagsEnterReturnsTrue))
	}

	h.click(5, 5, field)
	h.typeText("go", field)
	assert.False(t, entered, "typing alone does not report")

	h.key(KeyEnter, KeyModNone, field)
	assert.True(t, entered)
	assert.Equal(t, "go", s)
	assert.Zero(t, h.ctx.ActiveID(), "Enter leaves single-line fields")
}

func TestInputTextEnterKeepActive(t *testing.T) {
	h := newTestHarness(t)
	cfg := DefaultConfig()
	cfg.InputTextEnterKeepActive = true
	h.ctx.SetConfig(cfg)

	s := "abc"
	field := func() { h.ctx.InputText("##f", &s) }
	h.click(5, 5, field)
	h.key(KeyEnter, KeyModNone, field)

	assert.NotZero(t, h.ctx.ActiveID())
	a, b := h.selection()
	assert.Equal(t, 0, a)
	assert.Equal(t, 3, b)
}

func TestInputTextUndoRedo(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	field := func() { h.ctx.InputText("##f", &s) }

	h.click(5, 5, field)
	h.typeText("ab", field)
	require.Equal(t, "ab", s)

	h.key(KeyZ, KeyModCtrl, field)
	assert.Equal(t, "a", s)
	h.key(KeyY, KeyModCtrl, field)
	assert.Equal(t, "ab", s)
}

func TestInputTextNoUndoRedo(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	field := func() { h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsNoUndoRedo)) }

	h.click(5, 5, field)
	h.typeText("ab", field)
	h.key(KeyZ, KeyModCtrl, field)
	assert.Equal(t, "ab", s)
}

func TestInputTextMacShortcuts(t *testing.T) {
	h := newTestHarness(t)
	cfg := DefaultConfig()
	cfg.MacBehaviors = true
	h.ctx.SetConfig(cfg)

	s := ""
	field := func() { h.ctx.InputText("##f", &s) }
	h.click(5, 5, field)
	h.typeText("ab", field)

	h.key(KeyZ, KeyModCtrl, field)
	assert.Equal(t, "ab", s, "Ctrl is not the shortcut key on Mac")
	h.key(KeyZ, KeyModSuper, field)
	assert.Equal(t, "a", s)
	h.key(KeyZ, KeyModSuper|KeyModShift, field)
	assert.Equal(t, "ab", s, "Cmd+Shift+Z redoes")
}

func TestInputTextClipboard(t *testing.T) {
	h := newTestHarness(t)
	s := "hello"
	field := func() { h.ctx.InputText("##f", &s) }

	h.click(5, 5, field)
	h.key(KeyA, KeyModCtrl, field)
	h.key(KeyC, KeyModCtrl, field)
	assert.Equal(t, "hello", h.clip.Text)

	h.key(KeyX, KeyModCtrl, field)
	assert.Equal(t, "", s)

	h.clip.Text = "ab\x00cd"
	h.key(KeyV, KeyModCtrl, field)
	assert.Equal(t, "ab", s, "paste stops at NUL")
}

func TestInputTextPasteIsFiltered(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	field := func() { h.ctx.InputText("##n", &s, WithFlags(InputTextFlagsCharsDecimal)) }

	h.click(5, 5, field)
	h.clip.Text = "1a2b3"
	h.key(KeyV, KeyModCtrl, field)
	assert.Equal(t, "123", s)

	h.clip.Text = "xyz"
	h.key(KeyV, KeyModCtrl, field)
	assert.Equal(t, "123", s, "fully filtered paste is a no-op")
}

func TestInputTextPasswordBlocksCopy(t *testing.T) {
	h := newTestHarness(t)
	s := "secret"
	h.clip.Text = "unchanged"
	field := func() { h.ctx.InputText("##pw", &s, WithFlags(InputTextFlagsPassword)) }

	h.click(5, 5, field)
	h.key(KeyA, KeyModCtrl, field)
	h.key(KeyC, KeyModCtrl, field)
	h.key(KeyX, KeyModCtrl, field)
	assert.Equal(t, "unchanged", h.clip.Text)
	assert.Equal(t, "secret", s)
}

func TestInputTextReadOnly(t *testing.T) {
	h := newTestHarness(t)
	s := "fixed"
	field := func() { h.ctx.InputText("##ro", &s, WithFlags(InputTextFlagsReadOnly)) }

	h.click(5, 5, field)
	h.typeText("x", field)
	h.key(KeyBackspace, KeyModNone, field)
	assert.Equal(t, "fixed", s)

	h.key(KeyA, KeyModCtrl, field)
	h.key(KeyC, KeyModCtrl, field)
	assert.Equal(t, "fixed", h.clip.Text, "read-only text can still be copied")
}

func TestInputTextDoubleClickSelectsWord(t *testing.T) {
	tests := []struct {
		name   string
		x      float32
		wantLo int
		wantHi int
	}{
		{name: "first word", x: 15, wantLo: 0, wantHi: 5},
		{name: "second word", x: 50, wantLo: 6, wantHi: 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			s := "hello world"
			field := func() { h.ctx.InputText("##f", &s) }

			h.click(tt.x, 5, field)
			h.click(tt.x, 5, field)
			lo, hi := h.selection()
			assert.Equal(t, tt.wantLo, lo)
			assert.Equal(t, tt.wantHi, hi)
		})
	}
}

func TestInputTextTripleClickSelectsLine(t *testing.T) {
	h := newTestHarness(t)
	s := "line1\nline2\nline3"
	field := func() { h.ctx.InputTextMultiline("##m", &s) }

	for range 3 {
		h.click(10, 19, field)
	}
	lo, hi := h.selection()
	assert.Equal(t, "line2\n", string(h.ctx.inputTextState.text[lo:hi]))
}

func TestInputTextShiftClickExtends(t *testing.T) {
	h := newTestHarness(t)
	s := "hello world"
	field := func() { h.ctx.InputText("##f", &s) }

	h.click(0, 5, field)
	h.in.ModShift = true
	h.click(35, 5, field)
	h.in.ModShift = false

	lo, hi := h.selection()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 5, hi)
}

func TestInputTextMultilineKeys(t *testing.T) {
	h := newTestHarness(t)
	s := "ab"
	var changed bool
	field := func() { changed = h.ctx.InputTextMultiline("##m", &s) }

	h.click(150, 5, field)
	h.key(KeyEnter, KeyModNone, field)
	h.typeText("cd", field)
	assert.Equal(t, "ab\ncd", s)
	assert.True(t, changed)

	h.key(KeyEnter, KeyModCtrl, field)
	assert.Zero(t, h.ctx.ActiveID(), "Ctrl+Enter validates a multiline field")
}

func TestInputTextCtrlEnterForNewLine(t *testing.T) {
	h := newTestHarness(t)
	s := "ab"
	field := func() {
		h.ctx.InputTextMultiline("##m", &s, WithFlags(InputTextFlagsCtrlEnterForNewLine))
	}

	h.click(150, 5, field)
	h.key(KeyEnter, KeyModCtrl, field)
	assert.Equal(t, "ab\n", s)

	h.key(KeyEnter, KeyModNone, field)
	assert.Zero(t, h.ctx.ActiveID())
}

func TestInputTextTabInput(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	field := func() { h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsAllowTabInput)) }

	h.click(5, 5, field)
	h.key(KeyTab, KeyModNone, field)
	assert.Equal(t, "\t", s)
}

func TestInputTextAutoSelectAll(t *testing.T) {
	h := newTestHarness(t)
	s := "abc"
	field := func() { h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsAutoSelectAll)) }

	h.click(5, 5, field)
	h.typeText("z", field)
	assert.Equal(t, "z", s, "typing replaces the auto selection")
}

func TestInputTextActivateItem(t *testing.T) {
	h := newTestHarness(t)
	s := "abc"
	var id ID
	field := func() {
		id = h.ctx.GetID("##f")
		h.ctx.InputText("##f", &s)
	}
	h.frame(field)

	h.ctx.ActivateItem(id, false)
	h.frame(field)
	assert.Equal(t, id, h.ctx.ActiveID())
	lo, hi := h.selection()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi, "navigation activation selects all")
}

func TestInputTextFixedBuffer(t *testing.T) {
	h := newTestHarness(t)
	buf := make([]byte, 4)
	copy(buf, "ab")
	field := func() {
		h.ctx.InputTextEx("##fixed", "", &buf, Vec2{}, InputTextFlagsNone, nil, nil)
	}

	h.click(150, 5, field)
	h.typeText("cdef", field)
	assert.Equal(t, "abc", string(buf[:cstrlen(buf)]), "capacity includes the terminator")
	assert.Len(t, buf, 4)
}

func TestInputTextResizeCallbackOnlyWhenNeeded(t *testing.T) {
	h := newTestHarness(t)
	buf := make([]byte, 16)
	var sizes []int
	cb := func(data *InputTextCallbackData) int {
		if data.EventFlag == InputTextFlagsCallbackResize {
			sizes = append(sizes, data.BufSize)
			grown := make([]byte, 64)
			copy(grown, data.Buf)
			data.Buf = grown
		}
		return 0
	}
	field := func() {
		h.ctx.InputTextEx("##grow", "", &buf, Vec2{}, InputTextFlagsCallbackResize, cb, nil)
	}

	h.click(5, 5, field)
	h.typeText("short", field)
	assert.Empty(t, sizes, "text that fits does not resize")

	long := strings.Repeat("x", 20)
	h.typeText(long, field)
	require.Equal(t, []int{26}, sizes)
	assert.Len(t, buf, 64)
	assert.Equal(t, "short"+long, string(buf[:cstrlen(buf)]))
}

func TestInputTextCharFilterCallback(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	cb := func(data *InputTextCallbackData) int {
		switch data.EventChar {
		case 'a':
			data.EventChar = 'A'
		case 'x':
			return 1
		}
		return 0
	}
	field := func() {
		h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsCallbackCharFilter), WithCallback(cb, nil))
	}

	h.click(5, 5, field)
	h.typeText("abxc", field)
	assert.Equal(t, "Abc", s)
}

func TestInputTextCompletionCallback(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	var gotUserData any
	cb := func(data *InputTextCallbackData) int {
		gotUserData = data.UserData
		if data.EventFlag == InputTextFlagsCallbackCompletion && string(data.Buf[:data.BufTextLen]) == "he" {
			data.InsertChars(data.CursorPos, "lp")
		}
		return 0
	}
	field := func() {
		h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsCallbackCompletion), WithCallback(cb, "ud"))
	}

	h.click(5, 5, field)
	h.typeText("he", field)
	h.key(KeyTab, KeyModNone, field)
	assert.Equal(t, "help", s)
	assert.Equal(t, "ud", gotUserData)
	assert.Equal(t, 4, h.ctx.inputTextState.cursor)

	h.key(KeyZ, KeyModCtrl, field)
	assert.Equal(t, "he", s, "callback edits are undoable")
}

func TestInputTextHistoryCallback(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	history := []string{"first", "second"}
	pos := len(history)
	cb := func(data *InputTextCallbackData) int {
		if data.EventKey == KeyUp && pos > 0 {
			pos--
		}
		data.DeleteChars(0, data.BufTextLen)
		data.InsertChars(0, history[pos])
		return 0
	}
	field := func() {
		h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsCallbackHistory), WithCallback(cb, nil))
	}

	h.click(5, 5, field)
	h.key(KeyUp, KeyModNone, field)
	assert.Equal(t, "second", s)
	h.key(KeyUp, KeyModNone, field)
	assert.Equal(t, "first", s)
}

func TestInputTextEditCallbackSeesByteOffsets(t *testing.T) {
	h := newTestHarness(t)
	s := ""
	var cursors []int
	cb := func(data *InputTextCallbackData) int {
		cursors = append(cursors, data.CursorPos)
		return 0
	}
	field := func() {
		h.ctx.InputText("##f", &s, WithFlags(InputTextFlagsCallbackEdit), WithCallback(cb, nil))
	}

	h.click(5, 5, field)
	h.typeText("é", field)
	h.frame(field)
	h.typeText("a", field)
	assert.Equal(t, []int{2, 3}, cursors, "only edits fire, with byte offsets")
}

func TestInputTextFilterCharacter(t *testing.T) {
	tests := []struct {
		name  string
		flags InputTextFlags
		in    string
		want  string
	}{
		{name: "decimal", flags: InputTextFlagsCharsDecimal, in: "1a2.b-", want: "12.-"},
		{name: "scientific", flags: InputTextFlagsCharsScientific, in: "1e5x", want: "1e5"},
		{name: "hex uppercase", flags: InputTextFlagsCharsHexadecimal | InputTextFlagsCharsUppercase, in: "fgA1", want: "FA1"},
		{name: "no blank", flags: InputTextFlagsCharsNoBlank, in: "a b\u3000c", want: "abc"},
		{name: "control chars", in: "a\x01\x7fb", want: "ab"},
		{name: "newline single line", in: "a\nb", want: "ab"},
		{name: "newline multiline", flags: InputTextFlagsMultiline, in: "a\nb", want: "a\nb"},
		{name: "tab", flags: InputTextFlagsAllowTabInput, in: "a\tb", want: "a\tb"},
		{name: "private use", in: "a\ue000b", want: "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []rune
			for _, c := range tt.in {
				if inputTextFilterCharacter(&c, tt.flags, nil, nil) {
					out = append(out, c)
				}
			}
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestInputTextMultilineScrollsToCursor(t *testing.T) {
	h := newTestHarness(t)
	s := strings.Repeat("line\n", 30)
	var id ID
	field := func() {
		id = h.ctx.GetID("##m")
		h.ctx.InputTextMultiline("##m", &s, WithHeight(52))
	}

	h.click(5, 5, field)
	h.key(KeyEnd, KeyModCtrl, field)
	h.frame(field)

	sc := h.ctx.textScrollStore.GetIfExists(id)
	require.NotNil(t, sc)
	assert.Greater(t, sc.ScrollY, float32(0))
	assert.LessOrEqual(t, sc.ScrollY, sc.ContentHeight-52)
}

func TestInputTextLogDecoration(t *testing.T) {
	h := newTestHarness(t)
	s := "logged"
	h.ctx.LogToBuffer()
	h.frame(func() { h.ctx.InputText("##f", &s) })
	assert.Equal(t, "{logged}", h.ctx.LogFinish())
}

func TestInputTextAllowsOverlapWhileActive(t *testing.T) {
	h := newTestHarness(t)
	a, b := "aaa", "bbb"
	fields := func() {
		h.ctx.InputText("##a", &a)
		h.ctx.InputText("##b", &b)
	}

	h.click(5, 5, fields)
	first := h.ctx.ActiveID()
	require.NotZero(t, first)

	h.click(5, 18, fields)
	second := h.ctx.ActiveID()
	assert.NotZero(t, second)
	assert.NotEqual(t, first, second, "clicking another field moves focus")
}

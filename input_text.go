package gui

// InputTextFlags control text field behavior.
type InputTextFlags uint32

const (
	InputTextFlagsNone InputTextFlags = 0

	// Built-in character filters
	InputTextFlagsCharsDecimal     InputTextFlags = 1 << 0 // Allow 0123456789.+-*/
	InputTextFlagsCharsHexadecimal InputTextFlags = 1 << 1 // Allow 0123456789ABCDEFabcdef
	InputTextFlagsCharsUppercase   InputTextFlags = 1 << 2 // Turn a..z into A..Z
	InputTextFlagsCharsNoBlank     InputTextFlags = 1 << 3 // Filter out spaces and tabs
	InputTextFlagsCharsScientific  InputTextFlags = 1 << 4 // Allow 0123456789.+-*/eE

	InputTextFlagsAutoSelectAll       InputTextFlags = 1 << 5  // Select all text when first taking focus
	InputTextFlagsEnterReturnsTrue    InputTextFlags = 1 << 6  // Return true on Enter instead of on every edit
	InputTextFlagsAllowTabInput       InputTextFlags = 1 << 7  // Tab inserts '\t'
	InputTextFlagsCtrlEnterForNewLine InputTextFlags = 1 << 8  // In multiline, Enter validates and Ctrl+Enter adds a new line
	InputTextFlagsNoHorizontalScroll  InputTextFlags = 1 << 9  // Do not scroll to follow the cursor
	InputTextFlagsAlwaysOverwrite     InputTextFlags = 1 << 10 // Start in overwrite mode
	InputTextFlagsReadOnly            InputTextFlags = 1 << 11 // Allow selecting and copying only
	InputTextFlagsPassword            InputTextFlags = 1 << 12 // Display '*' and disable copy
	InputTextFlagsNoUndoRedo          InputTextFlags = 1 << 13 // Ignore undo and redo shortcuts
	InputTextFlagsEscapeClearsAll     InputTextFlags = 1 << 14 // Escape clears the text instead of reverting it

	// Callbacks
	InputTextFlagsCallbackCompletion InputTextFlags = 1 << 15 // Called on Tab
	InputTextFlagsCallbackHistory    InputTextFlags = 1 << 16 // Called on Up and Down
	InputTextFlagsCallbackAlways     InputTextFlags = 1 << 17 // Called every frame while active
	InputTextFlagsCallbackCharFilter InputTextFlags = 1 << 18 // Called for each typed or pasted character
	InputTextFlagsCallbackResize     InputTextFlags = 1 << 19 // Called when the buffer must grow
	InputTextFlagsCallbackEdit       InputTextFlags = 1 << 20 // Called on any edit

	InputTextFlagsMultiline InputTextFlags = 1 << 26 // Set by InputTextMultiline
)

const inputTextFlagsCharsFilters = InputTextFlagsCharsDecimal | InputTextFlagsCharsHexadecimal |
	InputTextFlagsCharsUppercase | InputTextFlagsCharsNoBlank | InputTextFlagsCharsScientific

// Has reports whether any of the bits in flag are set.
func (f InputTextFlags) Has(flag InputTextFlags) bool { return f&flag != 0 }

// InputTextCallback is called by text fields for the events selected by the
// InputTextFlagsCallback* flags. For char filter events, a non-zero return
// discards the character.
type InputTextCallback func(data *InputTextCallbackData) int

// InputTextCallbackData is handed to an InputTextCallback.
//
// Buf is the live UTF-8 text: callbacks may edit it in place (keeping
// BufTextLen in sync and setting BufDirty) or through DeleteChars and
// InsertChars. Replacing Buf is only allowed in resize events.
type InputTextCallbackData struct {
	EventFlag InputTextFlags // The single callback flag this event is for
	Flags     InputTextFlags // The field's flags, read-only
	UserData  any

	// Char filter events
	EventChar rune // Replace with another rune, or 0 to discard

	// Completion and history events
	EventKey Key

	// Completion, history, edit, always and resize events
	Buf        []byte
	BufTextLen int  // Text length in bytes
	BufSize    int  // Capacity in bytes, terminator included; read-only except in resize events
	BufDirty   bool // Set when Buf or BufTextLen changed

	// Byte offsets into Buf
	CursorPos      int
	SelectionStart int // Equal to SelectionEnd when there is no selection
	SelectionEnd   int

	state *TextEditState
}

// DeleteChars removes n bytes at pos.
func (d *InputTextCallbackData) DeleteChars(pos, n int) {
	assertf(pos >= 0 && n >= 0 && pos+n <= d.BufTextLen, "DeleteChars(%d, %d) out of range (len %d)", pos, n, d.BufTextLen)
	if n == 0 {
		return
	}
	copy(d.Buf[pos:], d.Buf[pos+n:d.BufTextLen])
	d.BufTextLen -= n
	if d.BufTextLen < len(d.Buf) {
		d.Buf[d.BufTextLen] = 0
	}

	if d.CursorPos >= pos+n {
		d.CursorPos -= n
	} else if d.CursorPos >= pos {
		d.CursorPos = pos
	}
	d.SelectionStart = d.CursorPos
	d.SelectionEnd = d.CursorPos
	d.BufDirty = true
}

// InsertChars inserts text at byte offset pos. Resizable fields grow their
// buffer; others drop text that does not fit.
func (d *InputTextCallbackData) InsertChars(pos int, text string) {
	assertf(pos >= 0 && pos <= d.BufTextLen, "InsertChars(%d) out of range (len %d)", pos, d.BufTextLen)
	n := len(text)
	if n == 0 {
		return
	}

	if n+d.BufTextLen >= d.BufSize {
		if !d.Flags.Has(InputTextFlagsCallbackResize) {
			return
		}
		st := d.state
		assertf(st != nil && !d.Flags.Has(InputTextFlagsReadOnly), "InsertChars: read-only text cannot grow")
		assertf(sameBuffer(d.Buf, st.textA), "InsertChars: Buf was replaced")
		grow := min(max(n*4, 32), max(256, n))
		newSize := d.BufTextLen + grow + 1
		textA := make([]byte, newSize)
		copy(textA, st.textA[:d.BufTextLen])
		st.textA = textA
		st.bufCapacityA = newSize
		d.Buf = textA
		d.BufSize = newSize
	}

	if d.BufTextLen != pos {
		copy(d.Buf[pos+n:], d.Buf[pos:d.BufTextLen])
	}
	copy(d.Buf[pos:], text)
	d.BufTextLen += n
	d.Buf[d.BufTextLen] = 0

	if d.CursorPos >= pos {
		d.CursorPos += n
	}
	d.SelectionStart = d.CursorPos
	d.SelectionEnd = d.CursorPos
	d.BufDirty = true
}

// SelectAll selects the whole text.
func (d *InputTextCallbackData) SelectAll() {
	d.SelectionStart = 0
	d.SelectionEnd = d.BufTextLen
}

// ClearSelection collapses the selection to the end of the text.
func (d *InputTextCallbackData) ClearSelection() {
	d.SelectionStart = d.BufTextLen
	d.SelectionEnd = d.BufTextLen
}

// HasSelection reports whether text is selected.
func (d *InputTextCallbackData) HasSelection() bool {
	return d.SelectionStart != d.SelectionEnd
}

// sameBuffer reports whether a and b share their backing array start.
func sameBuffer(a, b []byte) bool {
	if cap(a) == 0 || cap(b) == 0 {
		return cap(a) == cap(b)
	}
	return &a[:1][0] == &b[:1][0]
}

// inputTextFilterCharacter applies the built-in filters and the char filter
// callback to c, possibly rewriting it. It reports whether c is kept.
func inputTextFilterCharacter(c *rune, flags InputTextFlags, cb InputTextCallback, userData any) bool {
	ch := *c

	// Control characters other than the ones the field accepts
	if ch < 0x20 {
		pass := ch == '\n' && flags.Has(InputTextFlagsMultiline)
		pass = pass || ch == '\t' && flags.Has(InputTextFlagsAllowTabInput)
		if !pass {
			return false
		}
	}
	if ch == 0x7F {
		return false
	}
	// Private use area; some platforms send these for function keys.
	if ch >= 0xE000 && ch <= 0xF8FF {
		return false
	}

	if flags.Has(inputTextFlagsCharsFilters) {
		if flags.Has(InputTextFlagsCharsDecimal) {
			if !(ch >= '0' && ch <= '9') && ch != '.' && ch != '-' && ch != '+' && ch != '*' && ch != '/' {
				return false
			}
		}
		if flags.Has(InputTextFlagsCharsScientific) {
			if !(ch >= '0' && ch <= '9') && ch != '.' && ch != '-' && ch != '+' && ch != '*' && ch != '/' && ch != 'e' && ch != 'E' {
				return false
			}
		}
		if flags.Has(InputTextFlagsCharsHexadecimal) {
			if !(ch >= '0' && ch <= '9') && !(ch >= 'a' && ch <= 'f') && !(ch >= 'A' && ch <= 'F') {
				return false
			}
		}
		if flags.Has(InputTextFlagsCharsUppercase) && ch >= 'a' && ch <= 'z' {
			ch += 'A' - 'a'
		}
		if flags.Has(InputTextFlagsCharsNoBlank) && isBlank(ch) {
			return false
		}
		*c = ch
	}

	if flags.Has(InputTextFlagsCallbackCharFilter) {
		assertf(cb != nil, "InputTextFlagsCallbackCharFilter needs a callback")
		data := InputTextCallbackData{
			EventFlag: InputTextFlagsCallbackCharFilter,
			EventChar: ch,
			Flags:     flags,
			UserData:  userData,
		}
		if cb(&data) != 0 {
			return false
		}
		if data.EventChar == 0 {
			return false
		}
		*c = data.EventChar
	}
	return true
}

// =============================================================================
// String-backed wrappers
// =============================================================================

// InputText draws a single-line text field editing s.
// Returns true when s changed, or with InputTextFlagsEnterReturnsTrue, when
// Enter was pressed.
//
// Usage:
//
//	ctx.InputText("Name", &name)
//	ctx.InputText("##cmd", &cmd, WithFlags(InputTextFlagsEnterReturnsTrue))
func (ctx *Context) InputText(label string, s *string, opts ...Option) bool {
	o := applyOptions(opts)
	flags := GetOpt(o, OptInputFlags) &^ InputTextFlagsMultiline
	size := Vec2{GetOpt(o, OptWidth), 0}
	return ctx.inputTextString(label, GetOpt(o, OptHint), s, size, flags, o)
}

// InputTextWithHint is InputText showing hint while s is empty.
func (ctx *Context) InputTextWithHint(label, hint string, s *string, opts ...Option) bool {
	o := applyOptions(opts)
	flags := GetOpt(o, OptInputFlags) &^ InputTextFlagsMultiline
	size := Vec2{GetOpt(o, OptWidth), 0}
	return ctx.inputTextString(label, hint, s, size, flags, o)
}

// InputTextMultiline draws a multi-line text field editing s. WithWidth and
// WithHeight set its size; the default is eight lines high.
func (ctx *Context) InputTextMultiline(label string, s *string, opts ...Option) bool {
	o := applyOptions(opts)
	flags := GetOpt(o, OptInputFlags) | InputTextFlagsMultiline
	size := Vec2{GetOpt(o, OptWidth), GetOpt(o, OptHeight)}
	return ctx.inputTextString(label, GetOpt(o, OptHint), s, size, flags, o)
}

// inputTextString edits a Go string through a byte buffer that the resize
// callback grows as needed.
func (ctx *Context) inputTextString(label, hint string, s *string, size Vec2, flags InputTextFlags, o options) bool {
	assertf(s != nil, "InputText %q: nil string", label)
	assertf(!flags.Has(InputTextFlagsCallbackResize), "InputText %q: the string wrapper owns CallbackResize", label)

	userCB := GetOpt(o, OptInputCallback)
	userData := GetOpt(o, OptInputUserData)
	cb := func(data *InputTextCallbackData) int {
		if data.EventFlag == InputTextFlagsCallbackResize {
			grown := make([]byte, data.BufSize)
			copy(grown, data.Buf)
			data.Buf = grown
			return 0
		}
		if userCB != nil {
			return userCB(data)
		}
		return 0
	}

	buf := make([]byte, len(*s)+1)
	copy(buf, *s)
	changed, validated := ctx.InputTextEx(label, hint, &buf, size, flags|InputTextFlagsCallbackResize, cb, userData)
	if changed {
		*s = string(buf[:cstrlen(buf)])
	}
	if flags.Has(InputTextFlagsEnterReturnsTrue) {
		return validated
	}
	return changed
}

package gui

import (
	"bytes"
	"math"
	"strings"
	"unicode/utf8"
)

// inputTextDisplayMaxLength caps single-line text that is still drawn. A
// longer line without breaks would need more vertices than one command holds.
const inputTextDisplayMaxLength = 2 * 1024 * 1024

// inputTextScroll is the vertical scroll of a multiline field. It lives in a
// FrameStore so it survives while the field is inactive.
type inputTextScroll struct {
	ScrollY       float32
	ContentHeight float32 // Text height plus padding, measured last frame

	grabClickOffset float32
}

// InputTextEx is the text field all InputText variants are built on.
//
// buf holds a NUL-terminated UTF-8 string; len(*buf) is its capacity. With
// InputTextFlagsCallbackResize, cb is asked to grow the buffer when the
// edited text does not fit and may replace *buf. size zero components use
// the default width and height.
//
// changed reports that *buf was written this frame; validated that Enter
// (or the gamepad validate button) was pressed.
func (ctx *Context) InputTextEx(label, hint string, buf *[]byte, size Vec2, flags InputTextFlags, cb InputTextCallback, userData any) (changed, validated bool) {
	w := ctx.CurrentWindow()
	if w.SkipItems {
		return false, false
	}
	assertf(buf != nil, "InputTextEx %q: nil buffer", label)
	assertf(!(flags.Has(InputTextFlagsCallbackHistory) && flags.Has(InputTextFlagsMultiline)), "InputTextEx %q: multiline fields do not support history callbacks", label)
	assertf(!(flags.Has(InputTextFlagsCallbackCompletion) && flags.Has(InputTextFlagsAllowTabInput)), "InputTextEx %q: completion callbacks and tab input both want Tab", label)
	callbackFlags := InputTextFlagsCallbackCompletion | InputTextFlagsCallbackHistory | InputTextFlagsCallbackAlways |
		InputTextFlagsCallbackCharFilter | InputTextFlagsCallbackResize | InputTextFlagsCallbackEdit
	assertf(!flags.Has(callbackFlags) || cb != nil, "InputTextEx %q: callback flags set without a callback", label)

	in := ctx.Input
	style := ctx.style
	f := ctx.Font()
	fontSize := f.LineHeight()

	isMultiline := flags.Has(InputTextFlagsMultiline)
	isReadOnly := flags.Has(InputTextFlagsReadOnly)
	isPassword := flags.Has(InputTextFlagsPassword)
	isUndoable := !flags.Has(InputTextFlagsNoUndoRedo)
	isResizable := flags.Has(InputTextFlagsCallbackResize)

	id := ctx.GetID(label)
	shownLabel := visibleLabel(label)
	labelSize := Vec2{0, fontSize}
	if shownLabel != "" {
		labelSize = ctx.CalcTextSize(shownLabel)
	}

	defaultH := fontSize + style.FramePadding.Y*2
	if isMultiline {
		defaultH = fontSize*8 + style.FramePadding.Y*2
	}
	frameSize := calcItemSize(size, ctx.calcItemWidth(), defaultH)
	pos := w.DC.CursorPos
	frameBB := Rect{pos.X, pos.Y, frameSize.X, frameSize.Y}
	totalSize := Vec2{frameSize.X, maxf(frameSize.Y, labelSize.Y)}
	if labelSize.X > 0 {
		totalSize.X += style.ItemInnerSpacing.X + labelSize.X
	}
	totalBB := Rect{pos.X, pos.Y, totalSize.X, totalSize.Y}
	ctx.ItemSize(totalSize)

	// Multiline fields scroll their own content and own a scrollbar.
	innerSize := frameSize
	hoverBB := frameBB
	var scroll *inputTextScroll
	var scrollbarID ID
	userScrollActive, userScrollFinish := false, false
	if isMultiline {
		scroll = ctx.textScrollStore.Get(id, inputTextScroll{})
		scrollbarID = hashID(id, []byte("#SCROLLY"))
		scroll.ScrollY = clampf(scroll.ScrollY, 0, maxf(0, scroll.ContentHeight-frameSize.Y))
		if scroll.ContentHeight > frameSize.Y {
			innerSize.X -= style.ScrollbarSize
			hoverBB.W = innerSize.X
			bar := Rect{frameBB.X + innerSize.X, frameBB.Y, style.ScrollbarSize, frameSize.Y}
			ctx.scrollbarY(scrollbarID, bar, scroll, frameSize.Y)
		}
		if frameBB.Contains(in.MousePos()) && in.MouseWheelY != 0 && w.ClipRect.Contains(in.MousePos()) {
			maxScroll := maxf(0, scroll.ContentHeight-frameSize.Y)
			scroll.ScrollY = clampf(scroll.ScrollY-in.MouseWheelY*ctx.Config.Input.MouseWheelLineCount*fontSize, 0, maxScroll)
			ctx.wheelConsumed = true
		}
	}

	if !ctx.itemAdd(id, totalBB) {
		return false, false
	}
	hovered := ctx.itemHoverable(hoverBB, id)
	ctx.focus.register(id)

	var state *TextEditState
	if ctx.inputTextState.id == id {
		state = &ctx.inputTextState
	}
	if isMultiline && state != nil {
		userScrollActive = ctx.activeID == scrollbarID
		userScrollFinish = ctx.activeID == 0 && ctx.activeIDPreviousFrame == scrollbarID
	}

	inputRequestedByTabbing := ctx.focusRequestID == id
	inputRequestedByNav := ctx.navActivateID == id
	userClicked := hovered && in.MouseClicked(MouseButtonLeft)

	initChangedSpecs := state != nil && state.singleLine != !isMultiline
	initMakeActive := userClicked || userScrollFinish || inputRequestedByNav || inputRequestedByTabbing
	initState := initMakeActive || userScrollActive
	selectAll := false

	if (initState && ctx.activeID != id) || initChangedSpecs {
		// Take a copy of the caller's text: it is the value Escape reverts to.
		state = &ctx.inputTextState
		bufLen := cstrlen(*buf)
		state.initialTextA = append(state.initialTextA[:0], (*buf)[:bufLen]...)

		// Keep the edit state (cursor, undo) when regaining focus over the
		// same text, e.g. after dragging the scrollbar.
		recycle := state.id == id && !initChangedSpecs && state.textAIsValid &&
			state.curLenA == bufLen && bytes.Equal(state.textA[:state.curLenA], (*buf)[:bufLen])

		state.id = id
		state.text = textStrFromUtf8(state.text, *buf)
		state.textAIsValid = false
		state.curLenA = bufLen
		state.flags = flags
		state.font = f
		state.macWordMotion = ctx.Config.MacBehaviors
		state.undo.depth = ctx.Config.UndoDepth

		if recycle {
			state.cursorClamp()
		} else {
			state.scrollX = 0
			state.initialize(!isMultiline)
		}

		if !isMultiline {
			if flags.Has(InputTextFlagsAutoSelectAll) {
				selectAll = true
			}
			if inputRequestedByNav && (!recycle || !ctx.navActivatePreserveState) {
				selectAll = true
			}
			if inputRequestedByTabbing || (userClicked && in.ModCtrl) {
				selectAll = true
			}
		}
		if flags.Has(InputTextFlagsAlwaysOverwrite) {
			state.insertMode = true
		}
		guiLogger.Debug("text field state initialized", "label", shownLabel, "id", id, "recycled", recycle)
	}

	if ctx.activeID != id && initMakeActive {
		ctx.SetActiveID(id)
		ctx.SetNavID(id, frameBB)
		guiLogger.Debug("text field activated", "label", shownLabel, "id", id)
	}
	if ctx.activeID == id && state == nil {
		// Another field took the edit state; we cannot stay active without it.
		ctx.ClearActiveID()
	}
	if ctx.activeID == id {
		ctx.keepAliveID(id)
		ctx.activeIDAllowOverlap = !in.MouseDown(MouseButtonLeft)
		ctx.WantCaptureKeyboard = true
		ctx.WantTextInput = !isReadOnly
	}

	// Clicking elsewhere releases the field.
	clearActiveID := false
	if ctx.activeID == id && in.MouseClicked(MouseButtonLeft) && !initState && !initMakeActive {
		clearActiveID = true
	}

	renderCursor := ctx.activeID == id || (state != nil && userScrollActive)
	renderSelection := state != nil && (state.HasSelection() || selectAll) && renderCursor
	revertEdit := false

	// Read-only fields show the caller's live data.
	if isReadOnly && state != nil && (renderCursor || renderSelection) {
		state.text = textStrFromUtf8(state.text, *buf)
		state.curLenA = cstrlen(*buf)
		state.cursorClamp()
		renderSelection = renderSelection && state.HasSelection()
	}

	drawPos := Vec2{frameBB.X + style.FramePadding.X, frameBB.Y + style.FramePadding.Y}
	if isMultiline {
		drawPos.Y -= scroll.ScrollY
	}

	backupCurrentTextLength := 0
	if ctx.activeID == id {
		backupCurrentTextLength = state.curLenA
		state.edited = false
		state.bufCapacityA = len(*buf)
		state.flags = flags
		state.font = f

		mouse := in.MousePos()
		mouseX := mouse.X - frameBB.X - style.FramePadding.X + state.scrollX
		mouseY := fontSize * 0.5
		if isMultiline {
			mouseY = mouse.Y - drawPos.Y
		}

		clickCount := in.MouseClickedCount(MouseButtonLeft)
		switch {
		case selectAll:
			state.selectAll()
			state.selectedAllMouseLock = true

		case hovered && clickCount >= 2 && !in.ModShift:
			state.click(mouseX, mouseY)
			if (clickCount-2)%2 == 0 {
				// Double-click selects the word under the mouse.
				isBol := state.cursor == 0 || state.charAt(state.cursor-1) == '\n'
				if state.HasSelection() || !isBol {
					state.onKeyPressed(editKeyWordLeft)
				}
				if !state.HasSelection() {
					state.prepSelectionAtCursor()
				}
				state.cursor = state.moveWordRightMac(state.cursor)
				state.selectEnd = state.cursor
				state.clampSelection()
			} else {
				// Triple-click selects the line, newline included.
				isEol := state.charAt(state.cursor) == '\n'
				state.onKeyPressed(editKeyLineStart)
				state.onKeyPressed(editKeyLineEnd | editKeyShift)
				state.onKeyPressed(editKeyRight | editKeyShift)
				if !isEol && isMultiline {
					state.selectStart, state.selectEnd = state.selectEnd, state.selectStart
					state.cursor = state.selectEnd
				}
				state.cursorFollow = false
			}
			state.cursorAnimReset()

		case in.MouseClicked(MouseButtonLeft) && !state.selectedAllMouseLock:
			if hovered {
				if in.ModShift {
					state.drag(mouseX, mouseY)
				} else {
					state.click(mouseX, mouseY)
				}
				state.cursorAnimReset()
			}

		case in.MouseDown(MouseButtonLeft) && !state.selectedAllMouseLock && (in.MouseDeltaX != 0 || in.MouseDeltaY != 0):
			state.drag(mouseX, mouseY)
			state.cursorAnimReset()
			state.cursorFollow = true
		}
		if state.selectedAllMouseLock && !in.MouseDown(MouseButtonLeft) {
			state.selectedAllMouseLock = false
		}

		// Ctrl+letter is a shortcut, except AltGr (Ctrl+Alt) which types.
		ignoreCharInputs := (in.ModCtrl && !in.ModAlt) || (ctx.Config.MacBehaviors && in.ModSuper)
		if flags.Has(InputTextFlagsAllowTabInput) && in.KeyPressed(KeyTab) && !ignoreCharInputs && !in.ModShift && !isReadOnly {
			c := '\t'
			if inputTextFilterCharacter(&c, flags, cb, userData) {
				state.onCharPressed(c)
			}
		}

		if len(in.InputChars) > 0 {
			if !ignoreCharInputs && !isReadOnly && !inputRequestedByNav {
				for _, c := range in.InputChars {
					// Tab arrives as a key.
					if c == '\t' || c == 0 {
						continue
					}
					if inputTextFilterCharacter(&c, flags, cb, userData) {
						state.onCharPressed(c)
					}
				}
			}
			in.ConsumeInputChars()
		}
	}

	if ctx.activeID == id && !ctx.activeIDIsJustActivated && !clearActiveID {
		state.rowCountPerPage = max(1, int((innerSize.Y-style.FramePadding.Y)/fontSize))

		kMask := editKey(0)
		if in.ModShift {
			kMask = editKeyShift
		}
		isOSX := ctx.Config.MacBehaviors
		mods := in.Mods()
		isOSXShiftShortcut := isOSX && mods == KeyModSuper|KeyModShift
		isWordmoveKeyDown := in.ModCtrl
		shortcutMods := KeyModCtrl
		if isOSX {
			isWordmoveKeyDown = in.ModAlt
			shortcutMods = KeyModSuper
		}
		isStartendKeyDown := isOSX && in.ModSuper && !in.ModCtrl && !in.ModAlt
		isCtrlOnly := mods == KeyModCtrl
		isShiftOnly := mods == KeyModShift
		isShortcutKey := mods == shortcutMods

		hasSel := state.HasSelection()
		isCut := ((isShortcutKey && in.KeyRepeated(KeyX)) || (isShiftOnly && in.KeyRepeated(KeyDelete))) &&
			!isReadOnly && !isPassword && (!isMultiline || hasSel)
		isCopy := ((isShortcutKey && in.KeyPressed(KeyC)) || (isCtrlOnly && in.KeyPressed(KeyInsert))) &&
			!isPassword && (!isMultiline || hasSel)
		isPaste := ((isShortcutKey && in.KeyRepeated(KeyV)) || (isShiftOnly && in.KeyRepeated(KeyInsert))) && !isReadOnly
		isUndo := isShortcutKey && in.KeyRepeated(KeyZ) && !isReadOnly && isUndoable
		isRedo := ((isShortcutKey && in.KeyRepeated(KeyY)) || (isOSXShiftShortcut && in.KeyRepeated(KeyZ))) && !isReadOnly && isUndoable
		isSelectAll := isShortcutKey && in.KeyPressed(KeyA)

		navGamepadActive := ctx.Config.NavEnableGamepad && in.HasGamepad
		isEnterPressed := in.KeyRepeated(KeyEnter) || in.KeyRepeated(KeyKeypadEnter)
		isGamepadValidate := navGamepadActive && (in.KeyPressed(KeyGamepadFaceDown) || in.KeyPressed(KeyGamepadFaceUp))
		isCancel := in.KeyPressed(KeyEscape) || (navGamepadActive && in.KeyPressed(KeyGamepadFaceRight))

		// Tab leaves the field unless the field itself consumes it.
		if in.KeyPressed(KeyTab) && !in.ModCtrl && !in.ModAlt &&
			!flags.Has(InputTextFlagsAllowTabInput|InputTextFlagsCallbackCompletion) {
			ctx.tabFocus(id)
		}

		switch {
		case in.KeyRepeated(KeyLeft):
			switch {
			case isStartendKeyDown:
				state.onKeyPressed(editKeyLineStart | kMask)
			case isWordmoveKeyDown:
				state.onKeyPressed(editKeyWordLeft | kMask)
			default:
				state.onKeyPressed(editKeyLeft | kMask)
			}

		case in.KeyRepeated(KeyRight):
			switch {
			case isStartendKeyDown:
				state.onKeyPressed(editKeyLineEnd | kMask)
			case isWordmoveKeyDown:
				state.onKeyPressed(editKeyWordRight | kMask)
			default:
				state.onKeyPressed(editKeyRight | kMask)
			}

		case isMultiline && in.KeyRepeated(KeyUp):
			if in.ModCtrl {
				scroll.ScrollY = clampf(scroll.ScrollY-fontSize, 0, maxf(0, scroll.ContentHeight-frameSize.Y))
			} else if isStartendKeyDown {
				state.onKeyPressed(editKeyTextStart | kMask)
			} else {
				state.onKeyPressed(editKeyUp | kMask)
			}

		case isMultiline && in.KeyRepeated(KeyDown):
			if in.ModCtrl {
				scroll.ScrollY = clampf(scroll.ScrollY+fontSize, 0, maxf(0, scroll.ContentHeight-frameSize.Y))
			} else if isStartendKeyDown {
				state.onKeyPressed(editKeyTextEnd | kMask)
			} else {
				state.onKeyPressed(editKeyDown | kMask)
			}

		case isMultiline && in.KeyRepeated(KeyPageUp):
			state.onKeyPressed(editKeyPageUp | kMask)
			scroll.ScrollY -= float32(state.rowCountPerPage) * fontSize

		case isMultiline && in.KeyRepeated(KeyPageDown):
			state.onKeyPressed(editKeyPageDown | kMask)
			scroll.ScrollY += float32(state.rowCountPerPage) * fontSize

		case in.KeyRepeated(KeyHome):
			if in.ModCtrl {
				state.onKeyPressed(editKeyTextStart | kMask)
			} else {
				state.onKeyPressed(editKeyLineStart | kMask)
			}

		case in.KeyRepeated(KeyEnd):
			if in.ModCtrl {
				state.onKeyPressed(editKeyTextEnd | kMask)
			} else {
				state.onKeyPressed(editKeyLineEnd | kMask)
			}

		case in.KeyPressed(KeyInsert) && mods == KeyModNone && !isReadOnly:
			state.onKeyPressed(editKeyInsert)

		case in.KeyRepeated(KeyDelete) && !isReadOnly && !isCut:
			state.onKeyPressed(editKeyDelete | kMask)

		case in.KeyRepeated(KeyBackspace) && !isReadOnly:
			if !state.HasSelection() {
				if isWordmoveKeyDown {
					state.onKeyPressed(editKeyWordLeft | editKeyShift)
				} else if isOSX && in.ModSuper && !in.ModAlt && !in.ModCtrl {
					state.onKeyPressed(editKeyLineStart | editKeyShift)
				}
			}
			state.onKeyPressed(editKeyBackspace | kMask)

		case isEnterPressed || isGamepadValidate:
			ctrlEnterForNewLine := flags.Has(InputTextFlagsCtrlEnterForNewLine)
			if !isMultiline || isGamepadValidate || (ctrlEnterForNewLine && !in.ModCtrl) || (!ctrlEnterForNewLine && in.ModCtrl) {
				validated = true
				if ctx.Config.InputTextEnterKeepActive && !isMultiline {
					state.selectAll()
					selectAll = true
				} else {
					clearActiveID = true
				}
			} else if !isReadOnly {
				c := '\n'
				if inputTextFilterCharacter(&c, flags, cb, userData) {
					state.onCharPressed(c)
				}
			}

		case isCancel:
			if flags.Has(InputTextFlagsEscapeClearsAll) {
				if state.curLenA > 0 {
					revertEdit = true
				} else {
					renderCursor, renderSelection = false, false
					clearActiveID = true
				}
			} else {
				clearActiveID = true
				revertEdit = true
				renderCursor, renderSelection = false, false
			}

		case isUndo || isRedo:
			if isUndo {
				state.onKeyPressed(editKeyUndo)
			} else {
				state.onKeyPressed(editKeyRedo)
			}
			state.clearSelection()

		case isSelectAll:
			state.selectAll()
			state.cursorFollow = true

		case isCut || isCopy:
			if ctx.ClipboardAvailable() {
				ib, ie := 0, len(state.text)
				if state.HasSelection() {
					ib, ie = state.selectionRange()
				}
				ctx.SetClipboardText(string(state.text[ib:ie]))
			}
			if isCut {
				if !state.HasSelection() {
					state.selectAll()
				}
				state.cursorFollow = true
				state.cut()
			}

		case isPaste:
			if clip := ctx.ClipboardText(); clip != "" {
				filtered := make([]rune, 0, len(clip))
				for _, c := range clip {
					if c == 0 {
						break
					}
					if !inputTextFilterCharacter(&c, flags, cb, userData) {
						continue
					}
					filtered = append(filtered, c)
				}
				// A paste that filtered down to nothing is a no-op.
				if len(filtered) > 0 {
					state.paste(filtered)
					state.cursorFollow = true
				}
			}
		}

		renderSelection = renderSelection || (state.HasSelection() && renderCursor)
	}

	// Process callbacks and apply the result back to the caller's buffer.
	var applyNewText []byte
	applyNewTextSet := false
	if ctx.activeID == id {
		if revertEdit && !isReadOnly {
			if flags.Has(InputTextFlagsEscapeClearsAll) {
				applyNewText, applyNewTextSet = nil, true
				state.replace(nil)
				guiLogger.Debug("text field cleared", "label", shownLabel)
			} else if !bytes.Equal((*buf)[:cstrlen(*buf)], state.initialTextA) {
				// The revert goes through the undo log so it can be undone.
				applyNewText, applyNewTextSet = state.initialTextA, true
				state.replace(textStrFromUtf8(nil, state.initialTextA))
				guiLogger.Debug("text field reverted", "label", shownLabel)
			}
		}

		if !isReadOnly {
			need := max(state.curLenA+1, state.bufCapacityA)
			if len(state.textA) < need {
				state.textA = make([]byte, need)
			}
			state.textAIsValid = true
			textStrToUtf8(state.textA, state.text)
		}

		// A reverting frame only writes back through the revert above.
		applyEditBackToUserBuffer := !revertEdit || (validated && !flags.Has(InputTextFlagsEnterReturnsTrue))
		if applyEditBackToUserBuffer {
			if flags.Has(InputTextFlagsCallbackCompletion | InputTextFlagsCallbackHistory | InputTextFlagsCallbackEdit | InputTextFlagsCallbackAlways) {
				ctx.inputTextUserCallback(state, buf, flags, cb, userData, backupCurrentTextLength)
			}
			if !isReadOnly && !bytes.Equal(state.textA[:state.curLenA], (*buf)[:cstrlen(*buf)]) {
				applyNewText, applyNewTextSet = state.textA[:state.curLenA], true
			}
		}
	}

	if applyNewTextSet {
		n := len(applyNewText)
		if isResizable && n+1 > len(*buf) {
			data := InputTextCallbackData{
				EventFlag:  InputTextFlagsCallbackResize,
				Flags:      flags,
				UserData:   userData,
				Buf:        *buf,
				BufTextLen: n,
				BufSize:    n + 1,
			}
			cb(&data)
			guiLogger.Debug("text buffer resized", "label", shownLabel, "from", len(*buf), "to", len(data.Buf))
			*buf = data.Buf
			n = min(n, data.BufTextLen)
		}
		// A refused or short resize truncates, never splitting a rune.
		if len(*buf) > 0 {
			n = utf8Truncate(applyNewText[:n], min(n, len(*buf)-1))
			copy(*buf, applyNewText[:n])
			(*buf)[n] = 0
		}
		changed = true
	}

	// Released last so that Enter still applies the value above.
	if clearActiveID && ctx.activeID == id {
		ctx.ClearActiveID()
		guiLogger.Debug("text field deactivated", "label", shownLabel, "id", id)
	}

	ctx.renderInputText(inputTextRender{
		state:           state,
		buf:             *buf,
		hint:            hint,
		flags:           flags,
		frameBB:         frameBB,
		innerSize:       innerSize,
		drawPos:         drawPos,
		scroll:          scroll,
		active:          ctx.activeID == id,
		renderCursor:    renderCursor,
		renderSelection: renderSelection,
	})

	if labelSize.X > 0 {
		ctx.DrawList.AddText(f, frameBB.X+frameBB.W+style.ItemInnerSpacing.X, frameBB.Y+style.FramePadding.Y, shownLabel, style.TextColor)
	}
	return changed, validated
}

// inputTextUserCallback runs the completion, history, edit or always
// callback and reads back what it changed.
func (ctx *Context) inputTextUserCallback(state *TextEditState, buf *[]byte, flags InputTextFlags, cb InputTextCallback, userData any, backupCurrentTextLength int) {
	in := ctx.Input
	isReadOnly := flags.Has(InputTextFlagsReadOnly)

	var eventFlag InputTextFlags
	eventKey := KeyNone
	switch {
	case flags.Has(InputTextFlagsCallbackCompletion) && in.KeyPressed(KeyTab):
		eventFlag, eventKey = InputTextFlagsCallbackCompletion, KeyTab
	case flags.Has(InputTextFlagsCallbackHistory) && in.KeyPressed(KeyUp):
		eventFlag, eventKey = InputTextFlagsCallbackHistory, KeyUp
	case flags.Has(InputTextFlagsCallbackHistory) && in.KeyPressed(KeyDown):
		eventFlag, eventKey = InputTextFlagsCallbackHistory, KeyDown
	case flags.Has(InputTextFlagsCallbackEdit) && state.edited:
		eventFlag = InputTextFlagsCallbackEdit
	case flags.Has(InputTextFlagsCallbackAlways):
		eventFlag = InputTextFlagsCallbackAlways
	}
	if eventFlag == InputTextFlagsNone {
		return
	}

	callbackBuf := state.textA
	if isReadOnly {
		callbackBuf = *buf
	}
	data := InputTextCallbackData{
		EventFlag:  eventFlag,
		Flags:      flags,
		UserData:   userData,
		EventKey:   eventKey,
		Buf:        callbackBuf,
		BufTextLen: state.curLenA,
		BufSize:    state.bufCapacityA,
		state:      state,
	}
	// Positions are handed out as byte offsets.
	utf8CursorPos := textCountUtf8BytesFromStr(state.text[:state.cursor])
	utf8SelectionStart := textCountUtf8BytesFromStr(state.text[:state.selectStart])
	utf8SelectionEnd := textCountUtf8BytesFromStr(state.text[:state.selectEnd])
	data.CursorPos = utf8CursorPos
	data.SelectionStart = utf8SelectionStart
	data.SelectionEnd = utf8SelectionEnd

	cb(&data)

	// InsertChars may have grown textA.
	callbackBuf = state.textA
	if isReadOnly {
		callbackBuf = *buf
	}
	assertf(sameBuffer(data.Buf, callbackBuf), "InputTextCallbackData.Buf must not be replaced")
	assertf(data.BufSize == state.bufCapacityA, "InputTextCallbackData.BufSize must not be changed")
	assertf(data.Flags == flags, "InputTextCallbackData.Flags must not be changed")

	bufDirty := data.BufDirty
	if data.CursorPos != utf8CursorPos || bufDirty {
		state.cursor = textCountCharsFromUtf8(data.Buf[:data.CursorPos])
		state.cursorFollow = true
	}
	if data.SelectionStart != utf8SelectionStart || bufDirty {
		if data.SelectionStart == data.CursorPos {
			state.selectStart = state.cursor
		} else {
			state.selectStart = textCountCharsFromUtf8(data.Buf[:data.SelectionStart])
		}
	}
	if data.SelectionEnd != utf8SelectionEnd || bufDirty {
		if data.SelectionEnd == data.SelectionStart {
			state.selectEnd = state.selectStart
		} else {
			state.selectEnd = textCountCharsFromUtf8(data.Buf[:data.SelectionEnd])
		}
	}
	if bufDirty {
		assertf(!isReadOnly, "read-only text cannot be edited by a callback")
		assertf(data.BufTextLen == cstrlen(data.Buf), "InputTextCallbackData.BufTextLen must match the text after an edit")
		newText := textStrFromUtf8(nil, data.Buf[:data.BufTextLen])
		state.reconcileUndoAfterCallback(newText)
		state.text = newText
		state.curLenA = data.BufTextLen
		state.cursorClamp()
		state.cursorAnimReset()
		guiLogger.Debug("text edited by callback", "event", eventFlag, "from", backupCurrentTextLength, "to", data.BufTextLen)
	}
}

// inputTextRender is what renderInputText needs from one InputTextEx call.
type inputTextRender struct {
	state           *TextEditState
	buf             []byte
	hint            string
	flags           InputTextFlags
	frameBB         Rect
	innerSize       Vec2
	drawPos         Vec2
	scroll          *inputTextScroll
	active          bool
	renderCursor    bool
	renderSelection bool
}

// renderInputText draws the frame, selection, text and cursor of a field and
// scrolls it to keep the cursor visible.
func (ctx *Context) renderInputText(r inputTextRender) {
	dl := ctx.DrawList
	style := ctx.style
	f := ctx.Font()
	fontSize := f.LineHeight()
	state := r.state
	isMultiline := r.flags.Has(InputTextFlagsMultiline)
	isPassword := r.flags.Has(InputTextFlagsPassword)
	isReadOnly := r.flags.Has(InputTextFlagsReadOnly)

	bg := style.FrameBgColor
	if r.active {
		bg = style.FrameBgFocusedColor
	}
	dl.AddRectFilled(r.frameBB, bg)
	if style.BorderSize > 0 {
		dl.AddRectOutline(r.frameBB.X, r.frameBB.Y, r.frameBB.W, r.frameBB.H, style.FrameBorderColor, style.BorderSize)
	}

	clipRect := Rect{r.frameBB.X, r.frameBB.Y, r.innerSize.X, r.innerSize.Y}
	dl.PushClipRect(clipRect)
	clipRect = dl.CurrentClipRect()

	// Pick what to display: the live edit buffer while editing, the caller's
	// buffer otherwise, the hint when either is empty.
	bufDisplayFromState := (r.renderCursor || r.renderSelection || r.active) && !isReadOnly && state != nil && state.textAIsValid
	var display string
	if bufDisplayFromState {
		display = string(state.textA[:state.curLenA])
	} else {
		display = string(r.buf[:cstrlen(r.buf)])
	}
	isDisplayingHint := r.hint != "" && display == ""
	if isDisplayingHint {
		display = r.hint
	} else if isPassword {
		display = strings.Repeat("*", utf8.RuneCountInString(display))
	}
	textColor := style.TextColor
	if isDisplayingHint {
		textColor = style.TextDisabledColor
	}

	drawPos := r.drawPos
	var textSize Vec2
	if r.renderCursor || r.renderSelection {
		text := state.text

		// One pass over the text finds the lines holding the cursor and the
		// selection start. Offsets are to the bottom of their line.
		selBegin, selEnd := state.selectionRange()
		cursorLine, selLine := -1, -1
		if !r.renderCursor {
			cursorLine = -1000
		}
		if !r.renderSelection {
			selLine = -1000
		}
		lineCount := 0
		for i, c := range text {
			if c != '\n' {
				continue
			}
			lineCount++
			if cursorLine == -1 && i+1 > state.cursor {
				cursorLine = lineCount
			}
			if selLine == -1 && i+1 > selBegin {
				selLine = lineCount
			}
			if !isMultiline && cursorLine != -1 && selLine != -1 {
				break
			}
		}
		lineCount++
		if cursorLine == -1 {
			cursorLine = lineCount
		}
		if selLine == -1 {
			selLine = lineCount
		}

		cursorOffset := Vec2{
			state.textWidth(state.lineStart(state.cursor), state.cursor),
			float32(cursorLine) * fontSize,
		}
		var selectStartOffset Vec2
		if selLine >= 0 {
			selectStartOffset = Vec2{
				state.textWidth(state.lineStart(selBegin), selBegin),
				float32(selLine) * fontSize,
			}
		}
		if isMultiline {
			textSize = Vec2{r.innerSize.X, float32(lineCount) * fontSize}
		}

		if r.renderCursor && state.cursorFollow {
			// Horizontal scroll in chunks of a quarter width
			if !r.flags.Has(InputTextFlagsNoHorizontalScroll) {
				scrollIncrementX := r.innerSize.X * 0.25
				visibleWidth := r.innerSize.X - style.FramePadding.X
				if cursorOffset.X < state.scrollX {
					state.scrollX = floorf(maxf(0, cursorOffset.X-scrollIncrementX))
				} else if cursorOffset.X-visibleWidth >= state.scrollX {
					state.scrollX = floorf(cursorOffset.X - visibleWidth + scrollIncrementX)
				}
			} else {
				state.scrollX = 0
			}

			if isMultiline {
				scrollY := r.scroll.ScrollY
				if cursorOffset.Y-fontSize < scrollY {
					scrollY = maxf(0, cursorOffset.Y-fontSize)
				} else if cursorOffset.Y-(r.innerSize.Y-style.FramePadding.Y*2) >= scrollY {
					scrollY = cursorOffset.Y - r.innerSize.Y + style.FramePadding.Y*2
				}
				scrollMaxY := maxf(0, textSize.Y+style.FramePadding.Y*2-r.innerSize.Y)
				scrollY = clampf(scrollY, 0, scrollMaxY)
				drawPos.Y += r.scroll.ScrollY - scrollY
				r.scroll.ScrollY = scrollY
			}
			state.cursorFollow = false
		}

		drawScrollX := state.scrollX
		if r.renderSelection {
			bgOffYUp, bgOffYDn := float32(-1), float32(2)
			if isMultiline {
				bgOffYUp, bgOffYDn = 0, 0
			}
			rectPos := Vec2{drawPos.X + selectStartOffset.X - drawScrollX, drawPos.Y + selectStartOffset.Y}
			clipMax := clipRect.Max()
			for p := selBegin; p < selEnd; {
				if rectPos.Y > clipMax.Y+fontSize {
					break
				}
				if rectPos.Y < clipRect.Y {
					for p < selEnd {
						c := text[p]
						p++
						if c == '\n' {
							break
						}
					}
				} else {
					var width float32
					for p < selEnd {
						c := text[p]
						p++
						if c == '\n' {
							break
						}
						width += state.advance(c)
					}
					// So that selected empty lines are visible
					if width <= 0 {
						width = floorf(f.Advance(' ') * 0.5)
					}
					rect := RectFromMinMax(
						Vec2{rectPos.X, rectPos.Y + bgOffYUp - fontSize},
						Vec2{rectPos.X + width, rectPos.Y + bgOffYDn},
					).ClipWith(clipRect)
					if !rect.Empty() {
						dl.AddRectFilled(rect, style.TextSelectedBg)
					}
				}
				rectPos.X = drawPos.X - drawScrollX
				rectPos.Y += fontSize
			}
		}

		if isMultiline || len(display) < inputTextDisplayMaxLength {
			dl.AddText(f, drawPos.X-drawScrollX, drawPos.Y, display, textColor)
		}

		if r.renderCursor {
			state.cursorAnim += ctx.DeltaTime
			cursorIsVisible := !ctx.Config.CursorBlink || state.cursorAnim <= 0 ||
				float32(math.Mod(float64(state.cursorAnim), 1.2)) <= 0.8
			cursorScreenPos := Vec2{
				floorf(drawPos.X + cursorOffset.X - drawScrollX),
				floorf(drawPos.Y + cursorOffset.Y),
			}
			caret := RectFromMinMax(
				Vec2{cursorScreenPos.X, cursorScreenPos.Y - fontSize + 0.5},
				Vec2{cursorScreenPos.X + 1, cursorScreenPos.Y - 1.5},
			)
			if cursorIsVisible && caret.Intersects(clipRect) {
				dl.AddLine(caret.X, caret.Y, caret.X, caret.Y+caret.H, style.CursorColor, 1)
			}
			// Let the platform place its IME window under the cursor.
			if !isReadOnly {
				ctx.PlatformIme = PlatformImeData{
					WantVisible:     true,
					InputPos:        Vec2{cursorScreenPos.X - 1, cursorScreenPos.Y - fontSize},
					InputLineHeight: fontSize,
				}
			}
		}
	} else {
		if isMultiline {
			textSize = Vec2{r.innerSize.X, float32(strings.Count(display, "\n")+1) * fontSize}
		}
		if isMultiline || len(display) < inputTextDisplayMaxLength {
			dl.AddText(f, drawPos.X, drawPos.Y, display, textColor)
		}
	}
	dl.PopClipRect()

	if isMultiline {
		r.scroll.ContentHeight = textSize.Y + style.FramePadding.Y*2
	}

	if ctx.logEnabled && (!isPassword || isDisplayingHint) {
		ctx.logSetNextTextDecoration("{", "}")
		ctx.logRenderedText(&drawPos, display)
	}
}

// lineStart returns the index of the first rune of the line holding i.
func (s *TextEditState) lineStart(i int) int {
	for i > 0 && s.text[i-1] != '\n' {
		i--
	}
	return i
}

// textWidth measures text[from:to], which must not span lines.
func (s *TextEditState) textWidth(from, to int) float32 {
	var w float32
	for _, c := range s.text[from:to] {
		w += s.advance(c)
	}
	return w
}

// scrollbarY is a vertical scrollbar over bar scrolling sc. Dragging it makes
// it the active item.
func (ctx *Context) scrollbarY(id ID, bar Rect, sc *inputTextScroll, visibleH float32) {
	in := ctx.Input
	style := ctx.style
	maxScroll := maxf(0, sc.ContentHeight-visibleH)
	grabH := bar.H
	if sc.ContentHeight > 0 {
		grabH = clampf(bar.H*visibleH/sc.ContentHeight, style.ScrollbarSize, bar.H)
	}
	track := bar.H - grabH
	grabRect := func() Rect {
		y := bar.Y
		if maxScroll > 0 {
			y += track * sc.ScrollY / maxScroll
		}
		return Rect{bar.X + 2, y + 2, bar.W - 4, grabH - 4}
	}

	mouse := in.MousePos()
	hovered := ctx.itemHoverable(bar, id)
	if hovered && in.MouseClicked(MouseButtonLeft) {
		ctx.SetActiveID(id)
		if g := grabRect(); g.Contains(mouse) {
			sc.grabClickOffset = mouse.Y - g.Y + 2
		} else {
			sc.grabClickOffset = grabH * 0.5
		}
	}

	held := ctx.activeID == id
	if held {
		ctx.keepAliveID(id)
		if in.MouseDown(MouseButtonLeft) {
			if track > 0 {
				t := clampf((mouse.Y-bar.Y-sc.grabClickOffset)/track, 0, 1)
				sc.ScrollY = t * maxScroll
			}
		} else {
			ctx.ClearActiveID()
			held = false
		}
	}

	grabColor := style.ScrollbarGrabColor
	switch {
	case held:
		grabColor = style.ScrollbarGrabActive
	case hovered:
		grabColor = style.ScrollbarGrabHovered
	}
	ctx.DrawList.AddRectFilled(bar, style.ScrollbarBgColor)
	ctx.DrawList.AddRectFilled(grabRect(), grabColor)
}

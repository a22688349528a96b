package gui

import (
	"slices"
	"unicode"
)

// editKey is a text edit command. editKeyShift may be or'ed in to extend
// the selection instead of moving it.
type editKey int

const (
	editKeyLeft editKey = iota + 1
	editKeyRight
	editKeyUp
	editKeyDown
	editKeyPageUp
	editKeyPageDown
	editKeyLineStart
	editKeyLineEnd
	editKeyTextStart
	editKeyTextEnd
	editKeyDelete
	editKeyBackspace
	editKeyUndo
	editKeyRedo
	editKeyWordLeft
	editKeyWordRight
	editKeyInsert

	editKeyShift editKey = 1 << 16
)

// getWidthNewline is what charWidth reports for '\n'.
const getWidthNewline float32 = -1

// TextEditState is the edit state of the active text field: working rune
// buffer, cursor, selection and undo log. A Context owns exactly one, handed
// to whichever field is active.
type TextEditState struct {
	id    ID
	flags InputTextFlags

	text         []rune // Working buffer; len(text) is the length in runes
	textA        []byte // UTF-8 copy handed to callbacks and the caller
	textAIsValid bool
	initialTextA []byte // Text at activation, restored on Escape
	curLenA      int    // UTF-8 length of text
	bufCapacityA int    // Caller buffer capacity, terminator included

	scrollX              float32
	cursorAnim           float32
	cursorFollow         bool
	selectedAllMouseLock bool
	edited               bool

	cursor      int
	selectStart int
	selectEnd   int

	insertMode      bool // Overwrite mode
	singleLine      bool
	hasPreferredX   bool
	preferredX      float32
	rowCountPerPage int

	undo undoLog

	font          Font
	macWordMotion bool
}

// ID returns the id of the field owning this state.
func (s *TextEditState) ID() ID { return s.id }

// CurLenW returns the text length in runes.
func (s *TextEditState) CurLenW() int { return len(s.text) }

// CurLenA returns the text length in UTF-8 bytes.
func (s *TextEditState) CurLenA() int { return s.curLenA }

// Text returns a copy of the working text.
func (s *TextEditState) Text() string { return string(s.text) }

// Cursor returns the cursor and selection bounds in runes.
func (s *TextEditState) Cursor() (cursor, selStart, selEnd int) {
	return s.cursor, s.selectStart, s.selectEnd
}

// initialize resets cursor, selection and undo for a new edit session.
func (s *TextEditState) initialize(singleLine bool) {
	s.cursor, s.selectStart, s.selectEnd = 0, 0, 0
	s.insertMode = false
	s.hasPreferredX = false
	s.preferredX = 0
	s.singleLine = singleLine
	s.rowCountPerPage = 0
	s.undo.clear()
}

func (s *TextEditState) cursorAnimReset() {
	// Cursor stays visible for a while after input before it starts blinking.
	s.cursorAnim = -0.30
}

// onKeyPressed applies an editing key and brings the cursor into view.
func (s *TextEditState) onKeyPressed(k editKey) {
	s.key(k)
	s.cursorFollow = true
	s.cursorAnimReset()
}

// onCharPressed types c and brings the cursor into view.
func (s *TextEditState) onCharPressed(c rune) {
	s.insertChar(c)
	s.cursorFollow = true
	s.cursorAnimReset()
}

func (s *TextEditState) HasSelection() bool { return s.selectStart != s.selectEnd }

func (s *TextEditState) clearSelection() { s.selectStart, s.selectEnd = s.cursor, s.cursor }

func (s *TextEditState) selectAll() {
	s.selectStart = 0
	s.cursor = len(s.text)
	s.selectEnd = s.cursor
	s.hasPreferredX = false
}

// selectionRange returns the selection as an ordered half-open range.
func (s *TextEditState) selectionRange() (int, int) {
	return min(s.selectStart, s.selectEnd), max(s.selectStart, s.selectEnd)
}

// cursorClamp keeps cursor and selection within the text.
func (s *TextEditState) cursorClamp() {
	n := len(s.text)
	s.cursor = min(s.cursor, n)
	s.selectStart = min(s.selectStart, n)
	s.selectEnd = min(s.selectEnd, n)
}

func (s *TextEditState) charAt(i int) rune {
	if i < 0 || i >= len(s.text) {
		return 0
	}
	return s.text[i]
}

func (s *TextEditState) advance(r rune) float32 {
	if s.flags.Has(InputTextFlagsPassword) {
		r = '*'
	}
	return s.font.Advance(r)
}

func (s *TextEditState) charWidth(i int) float32 {
	if s.text[i] == '\n' {
		return getWidthNewline
	}
	return s.advance(s.text[i])
}

func (s *TextEditState) lineHeight() float32 { return s.font.LineHeight() }

// layoutRow measures the row starting at start: it runs up to and including
// the next newline. An empty row (start at end of text) has zero chars.
func (s *TextEditState) layoutRow(start int) (numChars int, width float32) {
	i := start
	for i < len(s.text) {
		r := s.text[i]
		i++
		if r == '\n' {
			break
		}
		width += s.advance(r)
	}
	return i - start, width
}

// locateCoord maps a point relative to the text origin to a rune index.
func (s *TextEditState) locateCoord(x, y float32) int {
	n := len(s.text)
	baseY := float32(0)
	lineH := s.lineHeight()
	i := 0
	var numChars int
	var rowW float32
	for i < n {
		numChars, rowW = s.layoutRow(i)
		if numChars <= 0 {
			return n
		}
		if i == 0 && y < baseY {
			return 0
		}
		if y < baseY+lineH {
			break
		}
		i += numChars
		baseY += lineH
	}
	// Below all text
	if i >= n {
		return n
	}
	if x < 0 {
		return i
	}
	if x < rowW {
		prevX := float32(0)
		for k := 0; k < numChars; k++ {
			w := s.charWidth(i + k)
			if x < prevX+w {
				if x < prevX+w/2 {
					return i + k
				}
				return i + k + 1
			}
			prevX += w
		}
	}
	if s.charAt(i+numChars-1) == '\n' {
		return i + numChars - 1
	}
	return i + numChars
}

// click places the cursor at a point, dropping the selection.
func (s *TextEditState) click(x, y float32) {
	if s.singleLine {
		y = 0
	}
	s.cursor = s.locateCoord(x, y)
	s.selectStart = s.cursor
	s.selectEnd = s.cursor
	s.hasPreferredX = false
}

// drag extends the selection to a point.
func (s *TextEditState) drag(x, y float32) {
	if s.singleLine {
		y = 0
	}
	if s.selectStart == s.selectEnd {
		s.selectStart = s.cursor
	}
	p := s.locateCoord(x, y)
	s.cursor = p
	s.selectEnd = p
}

// findState describes the row holding a given character.
type findState struct {
	x         float32 // Position of the character within its row
	firstChar int     // First character of the row
	length    int     // Row length in characters
	prevFirst int     // First character of the previous row
}

func (s *TextEditState) findCharpos(n int) findState {
	var f findState
	z := len(s.text)
	i, prevStart := 0, 0
	var numChars int
	for {
		numChars, _ = s.layoutRow(i)
		if n < i+numChars {
			break
		}
		if i+numChars == z && z > 0 && s.charAt(z-1) != '\n' {
			break
		}
		prevStart = i
		i += numChars
		if i == z {
			numChars = 0
			break
		}
	}
	f.firstChar = i
	f.length = numChars
	f.prevFirst = prevStart
	for k := 0; f.firstChar+k < n; k++ {
		f.x += s.charWidth(f.firstChar + k)
	}
	return f
}

func (s *TextEditState) sortSelection() {
	if s.selectEnd < s.selectStart {
		s.selectStart, s.selectEnd = s.selectEnd, s.selectStart
	}
}

func (s *TextEditState) clampSelection() {
	n := len(s.text)
	if s.HasSelection() {
		s.selectStart = min(s.selectStart, n)
		s.selectEnd = min(s.selectEnd, n)
		if s.selectStart == s.selectEnd {
			s.cursor = s.selectStart
		}
	}
	s.cursor = min(s.cursor, n)
}

func (s *TextEditState) moveToFirst() {
	if s.HasSelection() {
		s.sortSelection()
		s.cursor = s.selectStart
		s.selectEnd = s.selectStart
		s.hasPreferredX = false
	}
}

func (s *TextEditState) moveToLast() {
	if s.HasSelection() {
		s.sortSelection()
		s.clampSelection()
		s.cursor = s.selectEnd
		s.selectStart = s.selectEnd
		s.hasPreferredX = false
	}
}

// prepSelectionAtCursor starts a selection at the cursor if there is none,
// otherwise moves the cursor to the selection's moving end.
func (s *TextEditState) prepSelectionAtCursor() {
	if !s.HasSelection() {
		s.selectStart = s.cursor
		s.selectEnd = s.cursor
	} else {
		s.cursor = s.selectEnd
	}
}

// deleteRaw removes n runes at pos without recording undo.
func (s *TextEditState) deleteRaw(pos, n int) {
	if n <= 0 {
		return
	}
	s.edited = true
	s.curLenA -= textCountUtf8BytesFromStr(s.text[pos : pos+n])
	s.text = slices.Delete(s.text, pos, pos+n)
}

// insertRaw inserts runes at pos without capacity checks or undo.
func (s *TextEditState) insertRaw(pos int, text []rune) {
	if len(text) == 0 {
		return
	}
	s.edited = true
	s.curLenA += textCountUtf8BytesFromStr(text)
	s.text = slices.Insert(s.text, pos, text...)
}

// insertChars inserts runes at pos. Non-resizable buffers refuse insertions
// that would not fit together with the terminator.
func (s *TextEditState) insertChars(pos int, text []rune) bool {
	if !s.flags.Has(InputTextFlagsCallbackResize) &&
		textCountUtf8BytesFromStr(text)+s.curLenA+1 > s.bufCapacityA {
		return false
	}
	s.insertRaw(pos, text)
	return true
}

func (s *TextEditState) deleteChars(pos, n int) {
	if n <= 0 {
		return
	}
	s.undo.push(pos, s.text[pos:pos+n], nil)
	s.deleteRaw(pos, n)
}

func (s *TextEditState) deleteSelection() {
	s.clampSelection()
	if s.HasSelection() {
		if s.selectStart < s.selectEnd {
			s.deleteChars(s.selectStart, s.selectEnd-s.selectStart)
			s.selectEnd = s.selectStart
			s.cursor = s.selectStart
		} else {
			s.deleteChars(s.selectEnd, s.selectStart-s.selectEnd)
			s.selectStart = s.selectEnd
			s.cursor = s.selectEnd
		}
		s.hasPreferredX = false
	}
}

// cut deletes the selection. The caller copies it to the clipboard first.
func (s *TextEditState) cut() bool {
	if s.HasSelection() {
		s.deleteSelection()
		s.hasPreferredX = false
		return true
	}
	return false
}

// paste replaces the selection with text.
func (s *TextEditState) paste(text []rune) bool {
	s.clampSelection()
	s.deleteSelection()
	if s.insertChars(s.cursor, text) {
		s.undo.push(s.cursor, nil, text)
		s.cursor += len(text)
		s.hasPreferredX = false
		return true
	}
	return false
}

// replace swaps the whole text for text as a single undoable edit.
func (s *TextEditState) replace(text []rune) {
	old := slices.Clone(s.text)
	s.undo.push(0, old, text)
	s.deleteRaw(0, len(s.text))
	s.cursor, s.selectStart, s.selectEnd = 0, 0, 0
	if len(text) == 0 {
		return
	}
	s.insertRaw(0, text)
	s.cursor = len(text)
	s.hasPreferredX = false
}

// insertChar types one rune at the cursor, replacing the selection (or the
// next rune in overwrite mode).
func (s *TextEditState) insertChar(c rune) {
	if c == '\n' && s.singleLine {
		return
	}
	ch := []rune{c}
	if s.insertMode && !s.HasSelection() && s.cursor < len(s.text) {
		old := s.text[s.cursor : s.cursor+1]
		if !s.flags.Has(InputTextFlagsCallbackResize) &&
			s.curLenA-textCountUtf8BytesFromStr(old)+textCountUtf8BytesFromStr(ch)+1 > s.bufCapacityA {
			return
		}
		s.undo.push(s.cursor, old, ch)
		s.deleteRaw(s.cursor, 1)
		s.insertRaw(s.cursor, ch)
		s.cursor++
		s.hasPreferredX = false
		return
	}
	s.deleteSelection()
	if s.insertChars(s.cursor, ch) {
		s.undo.push(s.cursor, nil, ch)
		s.cursor++
		s.hasPreferredX = false
	}
}

func (s *TextEditState) applyUndo() {
	rec, ok := s.undo.undo()
	if !ok {
		return
	}
	s.deleteRaw(rec.pos, len(rec.inserted))
	s.insertRaw(rec.pos, rec.deleted)
	s.cursor = rec.pos + len(rec.deleted)
	s.selectStart, s.selectEnd = s.cursor, s.cursor
	s.hasPreferredX = false
}

func (s *TextEditState) applyRedo() {
	rec, ok := s.undo.redo()
	if !ok {
		return
	}
	s.deleteRaw(rec.pos, len(rec.deleted))
	s.insertRaw(rec.pos, rec.inserted)
	s.cursor = rec.pos + len(rec.inserted)
	s.selectStart, s.selectEnd = s.cursor, s.cursor
	s.hasPreferredX = false
}

// reconcileUndoAfterCallback records the difference between the working
// text and newText, which a callback produced, as one undo record.
func (s *TextEditState) reconcileUndoAfterCallback(newText []rune) {
	old := s.text
	first := 0
	for first < len(old) && first < len(newText) && old[first] == newText[first] {
		first++
	}
	if first == len(old) && first == len(newText) {
		return
	}
	oldEnd, newEnd := len(old)-1, len(newText)-1
	for oldEnd >= first && newEnd >= first && old[oldEnd] == newText[newEnd] {
		oldEnd--
		newEnd--
	}
	s.undo.push(first, old[first:oldEnd+1], newText[first:newEnd+1])
}

func isSeparator(c rune) bool {
	switch c {
	case ',', ';', '(', ')', '{', '}', '[', ']', '|', '\n', '\r', '.', '!':
		return true
	}
	return false
}

func isBlank(c rune) bool {
	return c == ' ' || c == '\t' || c == 0x3000
}

func isSpace(c rune) bool {
	return c < 0x80 && unicode.IsSpace(c) || c == 0x3000
}

func (s *TextEditState) isWordBoundaryFromRight(idx int) bool {
	// Passwords are a single word.
	if s.flags.Has(InputTextFlagsPassword) || idx <= 0 {
		return false
	}
	prevWhite := isBlank(s.charAt(idx - 1))
	prevSep := isSeparator(s.charAt(idx - 1))
	curWhite := isBlank(s.charAt(idx))
	curSep := isSeparator(s.charAt(idx))
	return ((prevWhite || prevSep) && !(curSep || curWhite)) || (curSep && !prevSep)
}

func (s *TextEditState) isWordBoundaryFromLeft(idx int) bool {
	if s.flags.Has(InputTextFlagsPassword) || idx <= 0 {
		return false
	}
	prevWhite := isBlank(s.charAt(idx))
	prevSep := isSeparator(s.charAt(idx))
	curWhite := isBlank(s.charAt(idx - 1))
	curSep := isSeparator(s.charAt(idx - 1))
	return (prevWhite && !(curSep || curWhite)) || (curSep && !prevSep)
}

func (s *TextEditState) moveWordLeft(idx int) int {
	idx--
	for idx >= 0 && !s.isWordBoundaryFromRight(idx) {
		idx--
	}
	return max(idx, 0)
}

// moveWordRightMac stops at the end of the current word.
func (s *TextEditState) moveWordRightMac(idx int) int {
	idx++
	n := len(s.text)
	for idx < n && !s.isWordBoundaryFromLeft(idx) {
		idx++
	}
	return min(idx, n)
}

// moveWordRightWin stops at the start of the next word.
func (s *TextEditState) moveWordRightWin(idx int) int {
	idx++
	n := len(s.text)
	for idx < n && !s.isWordBoundaryFromRight(idx) {
		idx++
	}
	return min(idx, n)
}

func (s *TextEditState) moveWordRight(idx int) int {
	if s.macWordMotion {
		return s.moveWordRightMac(idx)
	}
	return s.moveWordRightWin(idx)
}

// key applies one edit command.
func (s *TextEditState) key(k editKey) {
	shift := k&editKeyShift != 0
	switch k &^ editKeyShift {
	case editKeyInsert:
		s.insertMode = !s.insertMode

	case editKeyUndo:
		s.applyUndo()
		s.hasPreferredX = false

	case editKeyRedo:
		s.applyRedo()
		s.hasPreferredX = false

	case editKeyLeft:
		if shift {
			s.clampSelection()
			s.prepSelectionAtCursor()
			if s.selectEnd > 0 {
				s.selectEnd--
			}
			s.cursor = s.selectEnd
		} else if s.HasSelection() {
			s.moveToFirst()
		} else if s.cursor > 0 {
			s.cursor--
		}
		s.hasPreferredX = false

	case editKeyRight:
		if shift {
			s.prepSelectionAtCursor()
			s.selectEnd++
			s.clampSelection()
			s.cursor = s.selectEnd
		} else {
			if s.HasSelection() {
				s.moveToLast()
			} else {
				s.cursor++
			}
			s.clampSelection()
		}
		s.hasPreferredX = false

	case editKeyWordLeft:
		if shift {
			if !s.HasSelection() {
				s.prepSelectionAtCursor()
			}
			s.cursor = s.moveWordLeft(s.cursor)
			s.selectEnd = s.cursor
			s.clampSelection()
		} else if s.HasSelection() {
			s.moveToFirst()
		} else {
			s.cursor = s.moveWordLeft(s.cursor)
			s.clampSelection()
		}

	case editKeyWordRight:
		if shift {
			if !s.HasSelection() {
				s.prepSelectionAtCursor()
			}
			s.cursor = s.moveWordRight(s.cursor)
			s.selectEnd = s.cursor
			s.clampSelection()
		} else if s.HasSelection() {
			s.moveToLast()
		} else {
			s.cursor = s.moveWordRight(s.cursor)
			s.clampSelection()
		}

	case editKeyDown, editKeyPageDown:
		isPage := k&^editKeyShift == editKeyPageDown
		if !isPage && s.singleLine {
			s.key(editKeyRight | k&editKeyShift)
			return
		}
		rows := 1
		if isPage {
			rows = s.rowCountPerPage
		}
		s.moveDown(rows, shift)

	case editKeyUp, editKeyPageUp:
		isPage := k&^editKeyShift == editKeyPageUp
		if !isPage && s.singleLine {
			s.key(editKeyLeft | k&editKeyShift)
			return
		}
		rows := 1
		if isPage {
			rows = s.rowCountPerPage
		}
		s.moveUp(rows, shift)

	case editKeyDelete:
		if s.HasSelection() {
			s.deleteSelection()
		} else if s.cursor < len(s.text) {
			s.deleteChars(s.cursor, 1)
		}
		s.hasPreferredX = false

	case editKeyBackspace:
		if s.HasSelection() {
			s.deleteSelection()
		} else {
			s.clampSelection()
			if s.cursor > 0 {
				s.deleteChars(s.cursor-1, 1)
				s.cursor--
			}
		}
		s.hasPreferredX = false

	case editKeyTextStart:
		if shift {
			s.prepSelectionAtCursor()
			s.cursor, s.selectEnd = 0, 0
		} else {
			s.cursor, s.selectStart, s.selectEnd = 0, 0, 0
		}
		s.hasPreferredX = false

	case editKeyTextEnd:
		n := len(s.text)
		if shift {
			s.prepSelectionAtCursor()
			s.cursor, s.selectEnd = n, n
		} else {
			s.cursor = n
			s.selectStart, s.selectEnd = 0, 0
		}
		s.hasPreferredX = false

	case editKeyLineStart:
		s.clampSelection()
		if shift {
			s.prepSelectionAtCursor()
		} else {
			s.moveToFirst()
		}
		if s.singleLine {
			s.cursor = 0
		} else {
			for s.cursor > 0 && s.charAt(s.cursor-1) != '\n' {
				s.cursor--
			}
		}
		if shift {
			s.selectEnd = s.cursor
		}
		s.hasPreferredX = false

	case editKeyLineEnd:
		n := len(s.text)
		s.clampSelection()
		if shift {
			s.prepSelectionAtCursor()
		} else {
			s.moveToFirst()
		}
		if s.singleLine {
			s.cursor = n
		} else {
			for s.cursor < n && s.charAt(s.cursor) != '\n' {
				s.cursor++
			}
		}
		if shift {
			s.selectEnd = s.cursor
		}
		s.hasPreferredX = false
	}
}

// moveDown moves the cursor down rows lines, keeping its preferred x.
func (s *TextEditState) moveDown(rows int, shift bool) {
	if shift {
		s.prepSelectionAtCursor()
	} else if s.HasSelection() {
		s.moveToLast()
	}
	s.clampSelection()
	f := s.findCharpos(s.cursor)

	for j := 0; j < rows; j++ {
		goalX := f.x
		if s.hasPreferredX {
			goalX = s.preferredX
		}
		start := f.firstChar + f.length
		if f.length == 0 {
			break
		}
		// Going down from the last line does not jump to its end.
		if s.charAt(f.firstChar+f.length-1) != '\n' {
			break
		}
		s.cursor = start
		numChars, _ := s.layoutRow(start)
		x := float32(0)
		for i := 0; i < numChars; i++ {
			dx := s.charWidth(start + i)
			if dx == getWidthNewline {
				break
			}
			x += dx
			if x > goalX {
				break
			}
			s.cursor++
		}
		s.clampSelection()
		s.hasPreferredX = true
		s.preferredX = goalX
		if shift {
			s.selectEnd = s.cursor
		}
		f.firstChar += f.length
		f.length = numChars
	}
}

// moveUp moves the cursor up rows lines, keeping its preferred x.
func (s *TextEditState) moveUp(rows int, shift bool) {
	if shift {
		s.prepSelectionAtCursor()
	} else if s.HasSelection() {
		s.moveToFirst()
	}
	s.clampSelection()
	f := s.findCharpos(s.cursor)

	for j := 0; j < rows; j++ {
		goalX := f.x
		if s.hasPreferredX {
			goalX = s.preferredX
		}
		if f.prevFirst == f.firstChar {
			break
		}
		s.cursor = f.prevFirst
		numChars, _ := s.layoutRow(s.cursor)
		x := float32(0)
		for i := 0; i < numChars; i++ {
			dx := s.charWidth(f.prevFirst + i)
			if dx == getWidthNewline {
				break
			}
			x += dx
			if x > goalX {
				break
			}
			s.cursor++
		}
		s.clampSelection()
		s.hasPreferredX = true
		s.preferredX = goalX
		if shift {
			s.selectEnd = s.cursor
		}
		prevScan := 0
		if f.prevFirst > 0 {
			prevScan = f.prevFirst - 1
		}
		for prevScan > 0 && s.charAt(prevScan-1) != '\n' {
			prevScan--
		}
		f.firstChar = f.prevFirst
		f.prevFirst = prevScan
	}
}

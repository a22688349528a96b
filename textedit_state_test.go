package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEditState returns an edit state over text with 7px wide, 13px high
// glyphs, as a field with a 256 byte buffer would set it up.
func newEditState(text string, singleLine bool) *TextEditState {
	s := &TextEditState{
		font:         MonoFont{CharWidth: 7, CharHeight: 13},
		bufCapacityA: 256,
	}
	s.initialize(singleLine)
	s.text = []rune(text)
	s.curLenA = len(text)
	return s
}

func selection(s *TextEditState) [2]int {
	a, b := s.selectionRange()
	return [2]int{a, b}
}

func TestTextEditInsertAndDelete(t *testing.T) {
	s := newEditState("", true)
	for _, c := range "héllo" {
		s.insertChar(c)
	}
	assert.Equal(t, "héllo", s.Text())
	assert.Equal(t, 5, s.CurLenW())
	assert.Equal(t, 6, s.CurLenA())
	assert.Equal(t, 5, s.cursor)

	s.key(editKeyBackspace)
	assert.Equal(t, "héll", s.Text())

	s.key(editKeyTextStart)
	s.key(editKeyDelete)
	assert.Equal(t, "éll", s.Text())
	assert.Equal(t, 4, s.CurLenA())
	assert.Equal(t, 0, s.cursor)
}

func TestTextEditSingleLineDropsNewline(t *testing.T) {
	s := newEditState("ab", true)
	s.cursor = 2
	s.insertChar('\n')
	assert.Equal(t, "ab", s.Text())
}

func TestTextEditCapacity(t *testing.T) {
	s := newEditState("abc", true)
	s.bufCapacityA = 4
	s.cursor = 3
	s.insertChar('d')
	assert.Equal(t, "abc", s.Text(), "text plus terminator must fit the buffer")
	assert.False(t, s.undo.canUndo(), "refused insert must not be recorded")

	s.flags = InputTextFlagsCallbackResize
	s.insertChar('d')
	assert.Equal(t, "abcd", s.Text(), "resizable fields accept any length")
}

func TestTextEditOverwriteMode(t *testing.T) {
	s := newEditState("abc", true)
	s.key(editKeyInsert)
	s.insertChar('x')
	assert.Equal(t, "xbc", s.Text())
	assert.Equal(t, 1, s.cursor)

	s.key(editKeyUndo)
	assert.Equal(t, "abc", s.Text())
}

func TestTextEditOverwriteCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     string
		cursor   int
	}{
		{name: "wider rune does not fit", capacity: 3, want: "ab", cursor: 0},
		{name: "wider rune fits", capacity: 4, want: "éb", cursor: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newEditState("ab", true)
			s.bufCapacityA = tt.capacity
			s.key(editKeyInsert)
			s.insertChar('é')
			assert.Equal(t, tt.want, s.Text())
			assert.Equal(t, tt.cursor, s.cursor)
			assert.Equal(t, len(tt.want), s.curLenA)

			s.key(editKeyUndo)
			assert.Equal(t, "ab", s.Text())
			assert.Equal(t, 2, s.curLenA)
		})
	}
}

func TestTextEditSelectionKeys(t *testing.T) {
	s := newEditState("abcdef", true)
	s.cursor = 1
	s.key(editKeyRight | editKeyShift)
	s.key(editKeyRight | editKeyShift)
	assert.Equal(t, [2]int{1, 3}, selection(s))
	assert.Equal(t, 3, s.cursor)

	s.key(editKeyLeft)
	assert.False(t, s.HasSelection())
	assert.Equal(t, 1, s.cursor, "left collapses to the selection start")

	s.key(editKeyLineEnd | editKeyShift)
	assert.Equal(t, [2]int{1, 6}, selection(s))

	s.insertChar('Z')
	assert.Equal(t, "aZ", s.Text(), "typing replaces the selection")
}

func TestTextEditWordMotion(t *testing.T) {
	const text = "hello world, foo"
	tests := []struct {
		name  string
		mac   bool
		from  int
		left  int
		right int
	}{
		{name: "inside first word", from: 2, left: 0, right: 6},
		{name: "inside first word mac", mac: true, from: 2, left: 0, right: 5},
		{name: "before separator", from: 10, left: 6, right: 11},
		{name: "after separator", from: 13, left: 11, right: 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newEditState(text, true)
			s.macWordMotion = tt.mac
			assert.Equal(t, tt.left, s.moveWordLeft(tt.from))
			assert.Equal(t, tt.right, s.moveWordRight(tt.from))
		})
	}
}

func TestTextEditPasswordIsOneWord(t *testing.T) {
	s := newEditState("my secret", true)
	s.flags = InputTextFlagsPassword
	assert.Equal(t, 0, s.moveWordLeft(9))
	assert.Equal(t, 9, s.moveWordRight(0))
}

func TestTextEditLineKeys(t *testing.T) {
	s := newEditState("ab\ncd", false)
	s.cursor = 4
	s.key(editKeyLineStart)
	assert.Equal(t, 3, s.cursor)
	s.key(editKeyLineEnd)
	assert.Equal(t, 5, s.cursor)
	s.key(editKeyTextStart | editKeyShift)
	assert.Equal(t, [2]int{0, 5}, selection(s))
}

func TestTextEditVerticalMotionKeepsColumn(t *testing.T) {
	s := newEditState("abcd\nxy\nabcd", false)
	s.cursor = 3

	s.key(editKeyDown)
	assert.Equal(t, 7, s.cursor, "short line clamps to its end")

	s.key(editKeyDown)
	assert.Equal(t, 11, s.cursor, "preferred column is restored")

	s.key(editKeyUp)
	assert.Equal(t, 7, s.cursor)

	s.key(editKeyUp)
	assert.Equal(t, 3, s.cursor)

	s.key(editKeyUp)
	assert.Equal(t, 3, s.cursor, "up on the first line stays")
}

func TestTextEditSingleLineUpDownMoveSideways(t *testing.T) {
	s := newEditState("abc", true)
	s.cursor = 1
	s.key(editKeyDown)
	assert.Equal(t, 2, s.cursor)
	s.key(editKeyUp)
	assert.Equal(t, 1, s.cursor)
}

func TestTextEditLocateCoord(t *testing.T) {
	tests := []struct {
		name string
		text string
		x, y float32
		want int
	}{
		{name: "left half of glyph", text: "hello", x: 17, y: 0, want: 2},
		{name: "right half of glyph", text: "hello", x: 18, y: 0, want: 3},
		{name: "before text", text: "hello", x: -5, y: 0, want: 0},
		{name: "after text", text: "hello", x: 100, y: 0, want: 5},
		{name: "second line", text: "ab\ncd", x: 3, y: 14, want: 3},
		{name: "past end of first line", text: "ab\ncd", x: 100, y: 0, want: 2},
		{name: "below text", text: "ab\ncd", x: 0, y: 100, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newEditState(tt.text, false)
			assert.Equal(t, tt.want, s.locateCoord(tt.x, tt.y))
		})
	}
}

func TestTextEditClickAndDrag(t *testing.T) {
	s := newEditState("hello", true)
	s.click(0, 0)
	s.drag(21, 0)
	assert.Equal(t, [2]int{0, 3}, selection(s))
	assert.Equal(t, 3, s.cursor)

	s.click(7, 40)
	assert.False(t, s.HasSelection())
	assert.Equal(t, 1, s.cursor, "single line ignores y")
}

func TestTextEditUndoRedo(t *testing.T) {
	s := newEditState("", true)
	for _, c := range "abc" {
		s.insertChar(c)
	}
	s.key(editKeyUndo)
	assert.Equal(t, "ab", s.Text())
	s.key(editKeyUndo)
	assert.Equal(t, "a", s.Text())
	assert.Equal(t, 1, s.cursor)

	s.key(editKeyRedo)
	assert.Equal(t, "ab", s.Text())

	s.insertChar('z')
	s.key(editKeyRedo)
	assert.Equal(t, "abz", s.Text(), "a new edit drops the redo tail")
	assert.Equal(t, 3, s.CurLenA())
}

func TestTextEditReplaceIsUndoable(t *testing.T) {
	s := newEditState("hello", true)
	s.replace([]rune("bye"))
	assert.Equal(t, "bye", s.Text())
	assert.Equal(t, 3, s.cursor)

	s.key(editKeyUndo)
	assert.Equal(t, "hello", s.Text())
	assert.Equal(t, 5, s.CurLenA())
}

func TestTextEditReconcileUndoAfterCallback(t *testing.T) {
	s := newEditState("hello", true)
	newText := []rune("help me")
	s.reconcileUndoAfterCallback(newText)
	require.True(t, s.undo.canUndo())

	rec := s.undo.records[0]
	assert.Equal(t, 3, rec.pos)
	assert.Equal(t, "lo", string(rec.deleted))
	assert.Equal(t, "p me", string(rec.inserted))

	s.text = newText
	s.curLenA = len("help me")
	s.key(editKeyUndo)
	assert.Equal(t, "hello", s.Text())
}

func TestTextEditReconcileUnchangedRecordsNothing(t *testing.T) {
	s := newEditState("same", true)
	s.reconcileUndoAfterCallback([]rune("same"))
	assert.False(t, s.undo.canUndo())
}

func TestTextEditPasteAndCut(t *testing.T) {
	s := newEditState("hello world", true)
	s.selectStart, s.selectEnd, s.cursor = 0, 5, 5
	require.True(t, s.paste([]rune("bye")))
	assert.Equal(t, "bye world", s.Text())
	assert.Equal(t, 3, s.cursor)

	s.selectAll()
	require.True(t, s.cut())
	assert.Equal(t, "", s.Text())
	assert.False(t, s.cut(), "nothing left to cut")

	s.key(editKeyUndo)
	assert.Equal(t, "bye world", s.Text())
}

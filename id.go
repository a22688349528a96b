package gui

import (
	"encoding/binary"
	"hash/fnv"
	"strings"
)

// ID uniquely identifies a widget for state persistence.
// IDs are stable across frames for the same label under the same ID stack,
// which lets edit state survive a widget being skipped for a frame.
type ID uint64

// GetID generates a stable ID from a string label.
// The ID is unique within the current ID stack context. Text after "###"
// replaces the whole label for hashing so a visible label can change while
// the identity stays put.
func (ctx *Context) GetID(label string) ID {
	if i := strings.Index(label, "###"); i >= 0 {
		label = label[i:]
	}
	return hashID(ctx.CurrentID(), []byte(label))
}

// GetIDFromInt generates an ID from an integer.
// Useful for items in arrays/slices.
func (ctx *Context) GetIDFromInt(n int) ID {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	return hashID(ctx.CurrentID(), b[:])
}

func hashID(seed ID, data []byte) ID {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], uint64(seed))
	h := fnv.New64a()
	h.Write(s[:])
	h.Write(data)
	id := ID(h.Sum64())
	if id == 0 {
		id = 1 // 0 is reserved for "no item"
	}
	return id
}

// PushID pushes an ID onto the stack for nested widgets.
// All GetID calls will be relative to this parent ID.
func (ctx *Context) PushID(label string) {
	ctx.idStack = append(ctx.idStack, ctx.GetID(label))
}

// PushIDInt pushes an integer-based ID onto the stack.
func (ctx *Context) PushIDInt(n int) {
	ctx.idStack = append(ctx.idStack, ctx.GetIDFromInt(n))
}

// PopID removes the last ID from the stack.
func (ctx *Context) PopID() {
	if len(ctx.idStack) > 0 {
		ctx.idStack = ctx.idStack[:len(ctx.idStack)-1]
	}
}

// CurrentID returns the current parent ID (top of stack).
func (ctx *Context) CurrentID() ID {
	if len(ctx.idStack) > 0 {
		return ctx.idStack[len(ctx.idStack)-1]
	}
	return 0
}

// visibleLabel strips the "##suffix" used only for identity.
func visibleLabel(label string) string {
	if i := strings.Index(label, "##"); i >= 0 {
		return label[:i]
	}
	return label
}

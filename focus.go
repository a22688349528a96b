package gui

// focusRegistry keeps the tab order of focusable items.
//
// Items register while they are drawn, so the current frame's list is still
// incomplete when a Tab press is handled. The registry is double-buffered:
// navigation walks the previous frame's list while the current one fills up.
type focusRegistry struct {
	prev []ID
	curr []ID
}

// beginFrame makes the list built last frame the one navigation uses.
func (r *focusRegistry) beginFrame() {
	r.prev, r.curr = r.curr, r.prev[:0]
}

func (r *focusRegistry) register(id ID) {
	r.curr = append(r.curr, id)
}

// step returns the item after from in tab order, or before it when forward
// is false. Navigation wraps around. An unknown from (including 0) starts at
// the first or last item.
func (r *focusRegistry) step(from ID, forward bool) (ID, bool) {
	n := len(r.prev)
	if n == 0 {
		return 0, false
	}
	i := -1
	for j, id := range r.prev {
		if id == from {
			i = j
			break
		}
	}
	switch {
	case i < 0 && forward:
		return r.prev[0], true
	case i < 0:
		return r.prev[n-1], true
	case forward:
		return r.prev[(i+1)%n], true
	default:
		return r.prev[(i+n-1)%n], true
	}
}

// tabFocus moves tab focus away from the item from, or to the first (last
// with Shift) item when from is 0. The target is focused next frame.
func (ctx *Context) tabFocus(from ID) {
	to, ok := ctx.focus.step(from, !ctx.Input.ModShift)
	if !ok || to == from {
		return
	}
	guiLogger.Debug("tab focus", "from", from, "to", to)
	ctx.FocusItem(to)
}

package gui

import "math"

// Window is the layout collaborator widgets draw into: a clip rectangle,
// a scroll offset and the layout cursor. Windows are keyed by name and keep
// their scroll between frames. Window chrome is left to the application.
type Window struct {
	Name string
	ID   ID

	Pos  Vec2 // Top-left corner in screen space
	Size Vec2

	// ClipRect is the visible area. Items outside it are culled and the
	// list clipper only emits rows that intersect it.
	ClipRect Rect

	Scroll    Vec2
	ScrollMax Vec2

	// SkipItems is set when the window is collapsed or fully clipped;
	// widgets and clippers submit nothing.
	SkipItems bool

	// NavLastID and NavRect remember the last item navigation focused in
	// this window, so clippers keep it submitted.
	NavLastID ID
	NavRect   Rect

	DC WindowTempData

	contentSize Vec2 // Measured in the previous frame
	lastFrame   uint64
}

// WindowTempData is the per-frame layout cursor state.
type WindowTempData struct {
	CursorPos         Vec2
	CursorStartPos    Vec2
	CursorMaxPos      Vec2
	CursorPosPrevLine Vec2
	PrevLineSize      Vec2
	CurrLineSize      Vec2
	Indent            float32
	IsSameLine        bool

	LastItemID   ID
	LastItemRect Rect
}

// BeginWindow starts laying out items inside r. Windows nest; End must be
// called in reverse order.
func (ctx *Context) BeginWindow(name string, r Rect) *Window {
	w, ok := ctx.windows[name]
	if !ok {
		w = &Window{Name: name, ID: hashID(0, []byte(name))}
		ctx.windows[name] = w
		guiLogger.Debug("window created", "name", name)
	}
	w.lastFrame = ctx.FrameCount
	w.Pos = Vec2{r.X, r.Y}
	w.Size = Vec2{r.W, r.H}

	pad := ctx.style.WindowPadding
	w.ScrollMax = Vec2{
		maxf(0, w.contentSize.X-(r.W-pad.X*2)),
		maxf(0, w.contentSize.Y-(r.H-pad.Y*2)),
	}
	if r.Contains(ctx.Input.MousePos()) && ctx.Input.MouseWheelY != 0 && !ctx.wheelConsumed {
		w.Scroll.Y -= ctx.Input.MouseWheelY * ctx.Config.Input.MouseWheelLineCount * ctx.FontSize()
		ctx.wheelConsumed = true
	}
	w.Scroll.X = clampf(w.Scroll.X, 0, w.ScrollMax.X)
	w.Scroll.Y = clampf(w.Scroll.Y, 0, w.ScrollMax.Y)

	w.ClipRect = r
	if parent := ctx.currentWindow; parent != nil {
		w.ClipRect = r.ClipWith(parent.ClipRect)
	}
	w.SkipItems = w.ClipRect.Empty()

	start := Vec2{r.X + pad.X - w.Scroll.X, r.Y + pad.Y - w.Scroll.Y}
	w.DC = WindowTempData{
		CursorPos:         start,
		CursorStartPos:    start,
		CursorMaxPos:      start,
		CursorPosPrevLine: start,
	}

	ctx.windowStack = append(ctx.windowStack, w)
	ctx.currentWindow = w
	ctx.PushID(name)
	ctx.DrawList.PushClipRect(w.ClipRect)
	return w
}

// EndWindow closes the window opened by the matching BeginWindow.
func (ctx *Context) EndWindow() {
	n := len(ctx.windowStack)
	assertf(n > 0, "EndWindow called without BeginWindow")
	w := ctx.windowStack[n-1]
	w.contentSize = w.DC.CursorMaxPos.Sub(w.DC.CursorStartPos)

	ctx.DrawList.PopClipRect()
	ctx.PopID()
	ctx.windowStack = ctx.windowStack[:n-1]
	if n > 1 {
		ctx.currentWindow = ctx.windowStack[n-2]
	} else {
		ctx.currentWindow = nil
	}
}

// CurrentWindow returns the innermost window.
func (ctx *Context) CurrentWindow() *Window {
	assertf(ctx.currentWindow != nil, "no current window (missing NewFrame or BeginWindow?)")
	return ctx.currentWindow
}

// SetScrollY sets the current window's vertical scroll. It is clamped when
// the window is next begun.
func (w *Window) SetScrollY(y float32) {
	w.Scroll.Y = y
}

// ItemSize advances the layout cursor past an item of the given size.
func (ctx *Context) ItemSize(size Vec2) {
	w := ctx.CurrentWindow()
	if w.SkipItems {
		return
	}
	spacing := ctx.style.ItemSpacing
	dc := &w.DC

	lineY1 := dc.CursorPos.Y
	if dc.IsSameLine {
		lineY1 = dc.CursorPosPrevLine.Y
	}
	lineHeight := maxf(dc.CurrLineSize.Y, dc.CursorPos.Y-lineY1+size.Y)

	dc.CursorPosPrevLine = Vec2{dc.CursorPos.X + size.X, lineY1}
	dc.CursorPos = Vec2{dc.CursorStartPos.X + dc.Indent, lineY1 + lineHeight + spacing.Y}
	dc.CursorMaxPos.X = maxf(dc.CursorMaxPos.X, dc.CursorPosPrevLine.X)
	dc.CursorMaxPos.Y = maxf(dc.CursorMaxPos.Y, dc.CursorPos.Y-spacing.Y)

	dc.PrevLineSize.Y = lineHeight
	dc.CurrLineSize.Y = 0
	dc.IsSameLine = false
}

// itemAdd records the last item and reports whether it is visible.
func (ctx *Context) itemAdd(id ID, bb Rect) bool {
	w := ctx.CurrentWindow()
	w.DC.LastItemID = id
	w.DC.LastItemRect = bb
	if id != 0 && id == ctx.navID {
		w.NavLastID = id
		w.NavRect = bb
	}
	if id != 0 && (id == ctx.activeID || id == ctx.navActivateID || id == ctx.focusRequestID) {
		return true
	}
	return bb.Intersects(w.ClipRect)
}

// Dummy reserves space without drawing anything.
func (ctx *Context) Dummy(size Vec2) {
	w := ctx.CurrentWindow()
	bb := Rect{w.DC.CursorPos.X, w.DC.CursorPos.Y, size.X, size.Y}
	ctx.ItemSize(size)
	ctx.itemAdd(0, bb)
}

// SameLine places the next item to the right of the previous one.
// A negative spacing uses the style's item spacing.
func (ctx *Context) SameLine(spacing float32) {
	w := ctx.CurrentWindow()
	if w.SkipItems {
		return
	}
	if spacing < 0 {
		spacing = ctx.style.ItemSpacing.X
	}
	dc := &w.DC
	dc.CursorPos = Vec2{dc.CursorPosPrevLine.X + spacing, dc.CursorPosPrevLine.Y}
	dc.CurrLineSize = dc.PrevLineSize
	dc.IsSameLine = true
}

// GetCursorPos returns the layout cursor in screen space.
func (ctx *Context) GetCursorPos() Vec2 {
	return ctx.CurrentWindow().DC.CursorPos
}

// SetCursorPos moves the layout cursor in screen space.
func (ctx *Context) SetCursorPos(p Vec2) {
	w := ctx.CurrentWindow()
	w.DC.CursorPos = p
	w.DC.CursorMaxPos.X = maxf(w.DC.CursorMaxPos.X, p.X)
	w.DC.CursorMaxPos.Y = maxf(w.DC.CursorMaxPos.Y, p.Y)
}

// calcItemWidth returns the default width for the next widget.
func (ctx *Context) calcItemWidth() float32 {
	if ctx.style.ItemWidth > 0 {
		return ctx.style.ItemWidth
	}
	w := ctx.CurrentWindow()
	avail := w.Size.X - ctx.style.WindowPadding.X*2
	return float32(math.Floor(float64(maxf(1, avail*0.65))))
}

// calcItemSize fills zero components of size with defaults.
func calcItemSize(size Vec2, defaultW, defaultH float32) Vec2 {
	if size.X <= 0 {
		size.X = defaultW
	}
	if size.Y <= 0 {
		size.Y = defaultH
	}
	return size
}

package gui

import (
	"math"
	"strings"
)

// Dir is a navigation direction.
type Dir int

const (
	DirNone Dir = iota - 1
	DirLeft
	DirRight
	DirUp
	DirDown
)

// PlatformImeData tells the platform where to place the IME candidate window.
// Widgets fill it in during the frame; backends read it after End.
type PlatformImeData struct {
	WantVisible     bool
	InputPos        Vec2
	InputLineHeight float32
}

// NavState is the part of keyboard/gamepad navigation that widgets and
// clippers consult. A navigation system owned by the application drives it
// through SetNavID and SetNavMoveScoring.
type NavState struct {
	// MoveScoringItems is true while a nav move request is scoring candidate
	// items; clippers then also submit the items under ScoringRect.
	MoveScoringItems bool
	ScoringRect      Rect
	MoveDir          Dir
}

// Context holds all state for UI building across frames.
// This is NOT context.Context - it's a dedicated GUI context type.
// Using a dedicated type avoids type assertions and map lookups,
// providing better performance and type safety.
type Context struct {
	// Drawing output
	DrawList *DrawList

	// Styling
	style      Style
	styleStack []Style // For PushStyle/PopStyle

	// Config holds behavior switches (mac shortcuts, cursor blink...).
	Config Config

	// Input (read-only during frame)
	Input *InputState

	// Per-widget state stores cleaned every frame
	stores          []Cleanable
	textScrollStore *FrameStore[inputTextScroll]

	// IDs
	idStack []ID

	// Screen
	DisplaySize Vec2

	// Frame info
	FrameCount uint64
	DeltaTime  float32
	Time       float64

	// Fonts
	font             Font
	fontProvider     FontProvider
	textMeasureCache map[string]Vec2

	// Windows
	windows       map[string]*Window
	windowStack   []*Window
	currentWindow *Window
	wheelConsumed bool

	// Active item tracking. The active item owns mouse/keyboard until it
	// releases it; it is cleared automatically if its widget stops being
	// submitted.
	activeID                ID
	activeIDPreviousFrame   ID
	activeIDIsAlive         ID
	activeIDIsJustActivated bool
	activeIDAllowOverlap    bool // Other items may be hovered while this one is active

	// Navigation
	Nav                      NavState
	navID                    ID
	navActivateID            ID // Activation requested for this frame
	navActivatePreserveState bool
	focusRequestID           ID // Tab focus requested for this frame
	focus                    focusRegistry
	nextActivateID           ID
	nextActivatePreserve     bool
	nextFocusRequestID       ID

	// Text capture (LogToBuffer)
	logEnabled       bool
	logBuffer        strings.Builder
	logLinePosY      float32
	logLineFirstItem bool
	logNextPrefix    string
	logNextSuffix    string

	// The one text edit state, owned by whichever text field is active.
	inputTextState TextEditState

	// List clipper temp data, one slot per nesting level
	clipperTempData        []*listClipperData
	clipperTempDataStacked int

	clipboard ClipboardProvider

	// Output flags for the application
	PlatformIme         PlatformImeData
	WantCaptureMouse    bool // True if mouse is over any GUI element
	WantCaptureKeyboard bool // True if a text input has focus
	WantTextInput       bool
}

// NewContext creates a new GUI context with default settings.
func NewContext() *Context {
	ctx := &Context{
		style:            DefaultStyle(),
		styleStack:       make([]Style, 0, 8),
		Config:           DefaultConfig(),
		Input:            NewInputState(),
		idStack:          make([]ID, 0, 32),
		textMeasureCache: make(map[string]Vec2, 64),
		windows:          make(map[string]*Window),
		textScrollStore:  NewFrameStore[inputTextScroll](),
		DrawList:         AcquireDrawList(),
	}
	ctx.RegisterStore(ctx.textScrollStore)
	return ctx
}

// SetConfig replaces the configuration and applies its side effects.
func (ctx *Context) SetConfig(cfg Config) {
	ctx.Config = cfg
	ctx.Input.SetConfig(cfg.Input)
	if cfg.Verbose {
		SetVerbose(true)
	}
}

// Style returns the current style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// SetStyle sets the base style.
func (ctx *Context) SetStyle(style Style) {
	ctx.style = style
}

// PushStyle temporarily overrides the style.
func (ctx *Context) PushStyle(style Style) {
	ctx.styleStack = append(ctx.styleStack, ctx.style)
	ctx.style = style
}

// PopStyle restores the previous style.
func (ctx *Context) PopStyle() {
	n := len(ctx.styleStack)
	if n > 0 {
		ctx.style = ctx.styleStack[n-1]
		ctx.styleStack = ctx.styleStack[:n-1]
	}
}

// NewFrame prepares the context for a new frame. It opens a root window
// covering the display; widgets may be submitted right after it returns.
func (ctx *Context) NewFrame(input *InputState, displaySize Vec2, deltaTime float32) {
	ctx.FrameCount++
	ctx.DeltaTime = deltaTime
	ctx.Time += float64(deltaTime)
	ctx.DisplaySize = displaySize
	if input != nil {
		ctx.Input = input
	}
	ctx.Input.SetConfig(ctx.Config.Input)
	ctx.Input.Update(deltaTime)
	ctx.cleanupStores()

	if ctx.DrawList == nil {
		ctx.DrawList = AcquireDrawList()
	}
	ctx.DrawList.Clear()
	ctx.styleStack = ctx.styleStack[:0]
	ctx.idStack = ctx.idStack[:0]
	ctx.windowStack = ctx.windowStack[:0]
	ctx.currentWindow = nil
	ctx.wheelConsumed = false
	clear(ctx.textMeasureCache)

	// Drop the active id if its widget was not submitted last frame.
	if ctx.activeID != 0 && ctx.activeIDIsAlive != ctx.activeID && ctx.activeIDPreviousFrame == ctx.activeID {
		guiLogger.Debug("active item vanished", "id", ctx.activeID)
		ctx.ClearActiveID()
	}
	ctx.activeIDPreviousFrame = ctx.activeID
	ctx.activeIDIsAlive = 0
	ctx.activeIDIsJustActivated = false

	ctx.navActivateID, ctx.navActivatePreserveState = ctx.nextActivateID, ctx.nextActivatePreserve
	ctx.focusRequestID = ctx.nextFocusRequestID
	ctx.nextActivateID, ctx.nextActivatePreserve, ctx.nextFocusRequestID = 0, false, 0

	// Tab with nothing focused enters the tab order; the focused item itself
	// handles Tab otherwise.
	ctx.focus.beginFrame()
	if ctx.activeID == 0 && ctx.Input.KeyPressed(KeyTab) && !ctx.Input.ModCtrl && !ctx.Input.ModAlt {
		ctx.tabFocus(0)
		ctx.focusRequestID, ctx.nextFocusRequestID = ctx.nextFocusRequestID, 0
	}

	ctx.PlatformIme = PlatformImeData{}
	ctx.WantCaptureMouse = false
	ctx.WantCaptureKeyboard = false
	ctx.WantTextInput = false

	ctx.BeginWindow("##Root", Rect{0, 0, displaySize.X, displaySize.Y})
}

// EndFrame closes the root window and clears single-frame input edges.
func (ctx *Context) EndFrame() {
	assertf(len(ctx.windowStack) == 1, "EndFrame: %d windows still open", len(ctx.windowStack)-1)
	assertf(ctx.clipperTempDataStacked == 0, "EndFrame: a list clipper was not ended")
	ctx.EndWindow()
	ctx.Input.Reset()
}

// SetActiveID makes id the active item. Passing 0 clears it.
func (ctx *Context) SetActiveID(id ID) {
	if ctx.activeID != id {
		guiLogger.Debug("active id changed", "from", ctx.activeID, "to", id)
		ctx.activeIDIsJustActivated = id != 0
		ctx.activeIDAllowOverlap = false
	}
	ctx.activeID = id
	if id != 0 {
		ctx.activeIDIsAlive = id
	}
}

// ClearActiveID releases the active item.
func (ctx *Context) ClearActiveID() {
	ctx.SetActiveID(0)
}

// ActiveID returns the active item, 0 if none.
func (ctx *Context) ActiveID() ID { return ctx.activeID }

func (ctx *Context) keepAliveID(id ID) {
	if ctx.activeID == id {
		ctx.activeIDIsAlive = id
	}
}

// ActivateItem requests activation of id on the next frame, as keyboard or
// gamepad navigation would. Text fields select all their text unless
// preserveState is set and their edit state can be recycled.
func (ctx *Context) ActivateItem(id ID, preserveState bool) {
	ctx.nextActivateID = id
	ctx.nextActivatePreserve = preserveState
}

// FocusItem requests tab-focus of id on the next frame.
func (ctx *Context) FocusItem(id ID) {
	ctx.nextFocusRequestID = id
}

// SetNavID records the item navigation currently points at, and where it is.
func (ctx *Context) SetNavID(id ID, rect Rect) {
	ctx.navID = id
	if ctx.currentWindow != nil {
		ctx.currentWindow.NavLastID = id
		ctx.currentWindow.NavRect = rect
	}
}

// SetNavMoveScoring starts or stops a nav move request that scores items
// under rect while moving in dir.
func (ctx *Context) SetNavMoveScoring(active bool, rect Rect, dir Dir) {
	ctx.Nav = NavState{MoveScoringItems: active, ScoringRect: rect, MoveDir: dir}
}

// NavID returns the item navigation currently points at.
func (ctx *Context) NavID() ID { return ctx.navID }

// itemHoverable reports whether the mouse is over bb and the item may take
// the hover (no other item is active).
func (ctx *Context) itemHoverable(bb Rect, id ID) bool {
	w := ctx.CurrentWindow()
	mouse := ctx.Input.MousePos()
	if !bb.Contains(mouse) || !w.ClipRect.Contains(mouse) {
		return false
	}
	if ctx.activeID != 0 && ctx.activeID != id && !ctx.activeIDAllowOverlap {
		return false
	}
	ctx.WantCaptureMouse = true
	return true
}

// SetFont sets the font used when no FontProvider is set.
func (ctx *Context) SetFont(f Font) {
	ctx.font = f
	clear(ctx.textMeasureCache)
}

// SetFontProvider injects a font provider.
func (ctx *Context) SetFontProvider(fp FontProvider) {
	ctx.fontProvider = fp
}

// Font returns the active font.
func (ctx *Context) Font() Font {
	if ctx.fontProvider != nil {
		if f := ctx.fontProvider.ActiveFont(); f != nil {
			return f
		}
	}
	if ctx.font == nil {
		ctx.font = DefaultFont()
	}
	return ctx.font
}

// FontSize returns the height of a single line of text.
func (ctx *Context) FontSize() float32 {
	return ctx.Font().LineHeight()
}

// CalcTextSize returns the size of rendered text. Each newline adds a line.
// Results are cached for the frame.
func (ctx *Context) CalcTextSize(text string) Vec2 {
	if text == "" {
		return Vec2{0, ctx.FontSize()}
	}
	if v, ok := ctx.textMeasureCache[text]; ok {
		return v
	}
	f := ctx.Font()
	var maxW, lineW float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			maxW = maxf(maxW, lineW)
			lineW = 0
			lines++
			continue
		}
		lineW += f.Advance(r)
	}
	size := Vec2{maxf(maxW, lineW), float32(lines) * f.LineHeight()}
	ctx.textMeasureCache[text] = size
	return size
}

// Text draws a line of unformatted text at the layout cursor.
func (ctx *Context) Text(text string) {
	w := ctx.CurrentWindow()
	if w.SkipItems {
		return
	}
	pos := w.DC.CursorPos
	size := ctx.CalcTextSize(text)
	bb := Rect{pos.X, pos.Y, size.X, size.Y}
	ctx.ItemSize(size)
	if !ctx.itemAdd(0, bb) {
		return
	}
	ctx.DrawList.AddText(ctx.Font(), pos.X, pos.Y, text, ctx.style.TextColor)
	if ctx.logEnabled {
		ctx.logRenderedText(&pos, text)
	}
}

// LogToBuffer starts capturing rendered text. Clippers submit every item
// while capturing so the output is complete.
func (ctx *Context) LogToBuffer() {
	ctx.logEnabled = true
	ctx.logBuffer.Reset()
	ctx.logLinePosY = math.MaxFloat32
	ctx.logLineFirstItem = true
}

// LogFinish stops capturing and returns the captured text.
func (ctx *Context) LogFinish() string {
	ctx.logEnabled = false
	return ctx.logBuffer.String()
}

// LogEnabled reports whether text capture is on.
func (ctx *Context) LogEnabled() bool { return ctx.logEnabled }

// logSetNextTextDecoration wraps the next captured text in prefix and suffix.
func (ctx *Context) logSetNextTextDecoration(prefix, suffix string) {
	ctx.logNextPrefix = prefix
	ctx.logNextSuffix = suffix
}

func (ctx *Context) logRenderedText(refPos *Vec2, text string) {
	newLine := refPos != nil && refPos.Y > ctx.logLinePosY+ctx.style.FramePadding.Y+1
	if refPos != nil {
		ctx.logLinePosY = refPos.Y
	}
	if newLine {
		ctx.logBuffer.WriteByte('\n')
		ctx.logLineFirstItem = true
	}
	if !ctx.logLineFirstItem {
		ctx.logBuffer.WriteByte(' ')
	}
	ctx.logBuffer.WriteString(ctx.logNextPrefix)
	ctx.logBuffer.WriteString(text)
	ctx.logBuffer.WriteString(ctx.logNextSuffix)
	ctx.logNextPrefix, ctx.logNextSuffix = "", ""
	ctx.logLineFirstItem = false
}

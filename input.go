package gui

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard or gamepad key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyKeypadEnter
	KeyEscape
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyGamepadFaceDown  // Activate / validate
	KeyGamepadFaceRight // Cancel
	KeyGamepadFaceUp    // Text input
	KeyCount
)

// KeyMod is a bitmask of held modifier keys.
type KeyMod int

const (
	KeyModNone  KeyMod = 0
	KeyModCtrl  KeyMod = 1 << 0
	KeyModShift KeyMod = 1 << 1
	KeyModAlt   KeyMod = 1 << 2
	KeyModSuper KeyMod = 1 << 3
)

// Key repeat timing constants
const (
	KeyRepeatDelay    float32 = 0.275 // Initial delay before repeat starts (seconds)
	KeyRepeatInterval float32 = 0.050 // Repeat interval once repeating (seconds)
)

// InputState holds input state for the current frame.
// This is typically populated by the application from GLFW or similar.
//
// Frame protocol: events are fed between frames, Update(dt) runs at the start
// of a frame (the Context does this in NewFrame) and Reset clears the
// single-frame edges once the frame has consumed them.
type InputState struct {
	// Mouse position
	MouseX, MouseY float32
	// Mouse movement since the previous frame
	MouseDeltaX, MouseDeltaY float32
	prevMouseX, prevMouseY   float32

	// Mouse buttons - current frame state
	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp      [MouseButtonCount]bool // True on the frame button was released

	// Multi-click tracking
	mouseClickedCount [MouseButtonCount]int
	mouseClickedTime  [MouseButtonCount]float64
	mouseClickedPos   [MouseButtonCount]Vec2

	// Mouse wheel
	MouseWheelX float32
	MouseWheelY float32

	// Keyboard - current frame state
	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool // True on the frame key was pressed
	keyUp      [KeyCount]bool // True on the frame key was released

	// Key repeat tracking
	keyHoldTime     [KeyCount]float32 // How long each key has been held
	keyPrevHoldTime [KeyCount]float32

	// Text input (Unicode characters typed this frame)
	InputChars []rune

	// Modifiers
	ModCtrl  bool
	ModShift bool
	ModAlt   bool
	ModSuper bool

	// HasGamepad is set by backends when a gamepad is connected.
	HasGamepad bool

	// Time is the accumulated frame time in seconds.
	Time float64

	cfg InputConfig
}

// NewInputState creates a new InputState using default timings.
func NewInputState() *InputState {
	return &InputState{
		InputChars: make([]rune, 0, 16),
		cfg:        DefaultConfig().Input,
	}
}

// SetConfig updates click and repeat timings.
func (s *InputState) SetConfig(cfg InputConfig) {
	s.cfg = cfg
}

// Update advances time, hold durations and mouse delta.
// Call this once per frame with the frame's delta time, before widgets run.
func (s *InputState) Update(dt float32) {
	s.Time += float64(dt)
	for key := Key(0); key < KeyCount; key++ {
		s.keyPrevHoldTime[key] = s.keyHoldTime[key]
		if s.keyDown[key] && !s.keyPressed[key] {
			s.keyHoldTime[key] += dt
		}
	}
	s.MouseDeltaX = s.MouseX - s.prevMouseX
	s.MouseDeltaY = s.MouseY - s.prevMouseY
	s.prevMouseX, s.prevMouseY = s.MouseX, s.MouseY
}

// Reset clears per-frame input state.
// Call this at the end of each frame, after widgets have consumed the edges.
func (s *InputState) Reset() {
	// Clear single-frame events
	for i := range s.mouseClicked {
		s.mouseClicked[i] = false
	}
	for i := range s.mouseUp {
		s.mouseUp[i] = false
	}
	for i := range s.keyPressed {
		s.keyPressed[i] = false
	}
	for i := range s.keyUp {
		s.keyUp[i] = false
	}
	s.InputChars = s.InputChars[:0]
	s.MouseWheelX = 0
	s.MouseWheelY = 0
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// MousePos returns the mouse position as a vector.
func (s *InputState) MousePos() Vec2 {
	return Vec2{s.MouseX, s.MouseY}
}

// SetMouseButton sets mouse button state.
// A press within DoubleClickTime and DoubleClickMaxDist of the previous press
// increments the click count (double-click, triple-click...).
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
		pos := s.MousePos()
		d := pos.Sub(s.mouseClickedPos[button])
		maxDist := s.cfg.DoubleClickMaxDist
		if s.mouseClickedCount[button] > 0 &&
			s.Time-s.mouseClickedTime[button] < float64(s.cfg.DoubleClickTime) &&
			d.X*d.X+d.Y*d.Y < maxDist*maxDist {
			s.mouseClickedCount[button]++
		} else {
			s.mouseClickedCount[button] = 1
			s.mouseClickedPos[button] = pos
		}
		s.mouseClickedTime[button] = s.Time
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}

	wasDown := s.keyDown[key]
	s.keyDown[key] = down

	if down && !wasDown {
		s.keyPressed[key] = true
		s.keyHoldTime[key] = 0 // Reset hold time on fresh press
	}
	if !down && wasDown {
		s.keyUp[key] = true
		s.keyHoldTime[key] = 0 // Reset hold time on release
	}
}

// SetMouseWheel sets the mouse wheel delta.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX = x
	s.MouseWheelY = y
}

// AddInputChar adds a typed character.
func (s *InputState) AddInputChar(ch rune) {
	s.InputChars = append(s.InputChars, ch)
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was just clicked (pressed this frame).
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseClickedCount returns 1 for a single click this frame, 2 for a
// double-click, 3 for a triple-click and so on. It is 0 when the button was
// not pressed this frame.
func (s *InputState) MouseClickedCount(button MouseButton) int {
	if !s.MouseClicked(button) {
		return 0
	}
	return s.mouseClickedCount[button]
}

// MouseReleased returns true if a mouse button was just released.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was just pressed (pressed this frame).
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyReleased returns true if a key was just released.
func (s *InputState) KeyReleased(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyUp[key]
}

// KeyRepeated returns true if a key should trigger this frame.
// Returns true on initial press, then after the repeat delay, then at the
// repeat rate. Use this for actions that should repeat when holding a key
// (like backspace in text input).
func (s *InputState) KeyRepeated(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	if s.keyPressed[key] {
		return true
	}
	if !s.keyDown[key] {
		return false
	}
	return repeatAmount(s.keyPrevHoldTime[key], s.keyHoldTime[key], s.cfg.KeyRepeatDelay, s.cfg.KeyRepeatRate) > 0
}

// repeatAmount counts how many repeat boundaries were crossed between hold
// times t0 and t1.
func repeatAmount(t0, t1, delay, rate float32) int {
	if t0 >= t1 {
		return 0
	}
	if rate <= 0 {
		if t0 < delay && t1 >= delay {
			return 1
		}
		return 0
	}
	c0, c1 := -1, -1
	if t0 >= delay {
		c0 = int((t0 - delay) / rate)
	}
	if t1 >= delay {
		c1 = int((t1 - delay) / rate)
	}
	return c1 - c0
}

// Mods returns the held modifiers as a bitmask.
func (s *InputState) Mods() KeyMod {
	var m KeyMod
	if s.ModCtrl {
		m |= KeyModCtrl
	}
	if s.ModShift {
		m |= KeyModShift
	}
	if s.ModAlt {
		m |= KeyModAlt
	}
	if s.ModSuper {
		m |= KeyModSuper
	}
	return m
}

// HasInputChars returns true if there are typed characters this frame.
func (s *InputState) HasInputChars() bool {
	return len(s.InputChars) > 0
}

// ConsumeInputChars clears all typed characters for this frame so that later
// widgets do not receive them again.
func (s *InputState) ConsumeInputChars() {
	s.InputChars = s.InputChars[:0]
}

var keyNames = map[Key]string{
	KeyNone:             "--",
	KeyTab:              "Tab",
	KeyLeft:             "Left",
	KeyRight:            "Right",
	KeyUp:               "Up",
	KeyDown:             "Down",
	KeyPageUp:           "PgUp",
	KeyPageDown:         "PgDn",
	KeyHome:             "Home",
	KeyEnd:              "End",
	KeyInsert:           "Ins",
	KeyDelete:           "Del",
	KeyBackspace:        "Backspace",
	KeySpace:            "Space",
	KeyEnter:            "Enter",
	KeyKeypadEnter:      "KpEnter",
	KeyEscape:           "Esc",
	KeyA:                "A",
	KeyC:                "C",
	KeyV:                "V",
	KeyX:                "X",
	KeyY:                "Y",
	KeyZ:                "Z",
	KeyGamepadFaceDown:  "PadA",
	KeyGamepadFaceRight: "PadB",
	KeyGamepadFaceUp:    "PadY",
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "?"
}

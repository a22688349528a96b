package gui

// Spacing constants for consistent layout (similar to Tailwind spacing scale).
// Use these instead of raw numbers for maintainability.
const (
	SpaceNone float32 = 0
	SpaceXS   float32 = 2  // Extra small
	SpaceSM   float32 = 4  // Small (default item spacing)
	SpaceMD   float32 = 8  // Medium (default padding)
	SpaceLG   float32 = 12 // Large
	SpaceXL   float32 = 16 // Extra large
)

// Style defines the visual appearance of UI elements.
type Style struct {
	// Text colors
	TextColor         uint32
	TextDisabledColor uint32 // Also used for hint text
	TextSelectedBg    uint32

	// Frame colors (text fields)
	FrameBgColor        uint32
	FrameBgFocusedColor uint32
	FrameBorderColor    uint32
	CursorColor         uint32

	// Window
	WindowBgColor uint32

	// Scrollbar
	ScrollbarBgColor     uint32
	ScrollbarGrabColor   uint32
	ScrollbarGrabHovered uint32
	ScrollbarGrabActive  uint32

	// Sizing
	FramePadding     Vec2    // Padding inside text fields
	WindowPadding    Vec2    // Padding inside windows
	ItemSpacing      Vec2    // Gap between items
	ItemInnerSpacing Vec2    // Gap between a widget and its label
	ItemWidth        float32 // Default widget width (0 = 65% of the window)
	BorderSize       float32
	ScrollbarSize    float32
}

// DefaultStyle returns the default style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		TextColor:         ColorWhite,
		TextDisabledColor: ColorGray,
		TextSelectedBg:    RGBA(66, 150, 250, 90),

		FrameBgColor:        RGBA(30, 30, 30, 255),
		FrameBgFocusedColor: RGBA(40, 40, 50, 255),
		FrameBorderColor:    RGBA(100, 100, 100, 255),
		CursorColor:         ColorWhite,

		WindowBgColor: RGBA(20, 20, 20, 240),

		ScrollbarBgColor:     RGBA(30, 30, 30, 255),
		ScrollbarGrabColor:   RGBA(80, 80, 80, 255),
		ScrollbarGrabHovered: RGBA(100, 100, 100, 255),
		ScrollbarGrabActive:  RGBA(130, 130, 130, 255),

		FramePadding:     Vec2{SpaceSM, SpaceXS + 1},
		WindowPadding:    Vec2{SpaceMD, SpaceMD},
		ItemSpacing:      Vec2{SpaceMD, SpaceSM},
		ItemInnerSpacing: Vec2{SpaceSM, SpaceSM},
		BorderSize:       1,
		ScrollbarSize:    SpaceLG,
	}
}

package gui

// ClipboardProvider abstracts system clipboard access.
// Implement this interface with platform-specific clipboard APIs
// (backend/opengl provides one for GLFW).
type ClipboardProvider interface {
	// GetText retrieves text from the system clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}

// SetClipboardProvider sets the clipboard used by cut, copy and paste.
// Without one, cut and copy are disabled and paste inserts nothing.
func (ctx *Context) SetClipboardProvider(cp ClipboardProvider) {
	ctx.clipboard = cp
}

// ClipboardProvider returns the current clipboard provider, or nil if not set.
func (ctx *Context) ClipboardProvider() ClipboardProvider {
	return ctx.clipboard
}

// ClipboardText retrieves text from the clipboard.
func (ctx *Context) ClipboardText() string {
	if ctx.clipboard != nil {
		return ctx.clipboard.GetText()
	}
	return ""
}

// SetClipboardText copies text to the clipboard.
// Does nothing if no clipboard provider is set.
func (ctx *Context) SetClipboardText(text string) {
	if ctx.clipboard != nil {
		ctx.clipboard.SetText(text)
	}
}

// ClipboardAvailable returns true if a clipboard provider is configured.
func (ctx *Context) ClipboardAvailable() bool {
	return ctx.clipboard != nil
}

// MemoryClipboard is an in-process clipboard, handy for tests and for
// platforms without a system clipboard.
type MemoryClipboard struct {
	Text string
}

func (c *MemoryClipboard) GetText() string     { return c.Text }
func (c *MemoryClipboard) SetText(text string) { c.Text = text }

package gui

// Renderer is the interface for rendering GUI draw data.
type Renderer interface {
	Render(dl *DrawList) error
	FontTextureID() uint32
	Resize(width, height int)
}

// GUI ties a Context to a Renderer and drives the frame loop.
type GUI struct {
	renderer Renderer
	style    Style
	config   Config
	ctx      *Context
}

// GUIOption configures a GUI instance.
type GUIOption func(*GUI)

// WithStyle sets the GUI style.
func WithStyle(style Style) GUIOption {
	return func(g *GUI) { g.style = style }
}

// WithConfig sets the behavior config (see LoadConfig).
func WithConfig(cfg Config) GUIOption {
	return func(g *GUI) { g.config = cfg }
}

// WithFont sets the font used for all text.
func WithFont(f Font) GUIOption {
	return func(g *GUI) { g.ctx.SetFont(f) }
}

// WithClipboard sets the clipboard used by text fields.
func WithClipboard(cp ClipboardProvider) GUIOption {
	return func(g *GUI) { g.ctx.SetClipboardProvider(cp) }
}

// New creates a new GUI instance.
func New(renderer Renderer, opts ...GUIOption) *GUI {
	g := &GUI{
		renderer: renderer,
		style:    DefaultStyle(),
		config:   DefaultConfig(),
		ctx:      NewContext(),
	}

	for _, opt := range opts {
		opt(g)
	}
	g.ctx.SetConfig(g.config)

	return g
}

// Begin starts a new frame and returns the GUI context.
// Call this at the start of each frame before drawing any UI.
func (g *GUI) Begin(input *InputState, displaySize Vec2, deltaTime float32) *Context {
	ctx := g.ctx
	ctx.SetStyle(g.style)
	if ff, ok := ctx.Font().(*FaceFont); ok && ff.TextureID() == 0 {
		ff.SetTextureID(g.renderer.FontTextureID())
	}
	ctx.NewFrame(input, displaySize, deltaTime)
	return ctx
}

// End finishes the frame and renders the UI.
// Call this after all UI drawing is complete.
func (g *GUI) End() error {
	ctx := g.ctx
	ctx.EndFrame()
	if ctx.DrawList == nil {
		return nil
	}
	ctx.DrawList.Finalize()
	return g.renderer.Render(ctx.DrawList)
}

// Context returns the GUI context.
// Widgets may only be submitted between Begin() and End() calls.
func (g *GUI) Context() *Context {
	return g.ctx
}

// Style returns the current GUI style.
func (g *GUI) Style() Style {
	return g.style
}

// SetStyle sets the GUI style, applied from the next frame on.
func (g *GUI) SetStyle(style Style) {
	g.style = style
}

// Config returns the current behavior config.
func (g *GUI) Config() Config {
	return g.config
}

// SetConfig replaces the behavior config.
func (g *GUI) SetConfig(cfg Config) {
	g.config = cfg
	g.ctx.SetConfig(cfg)
}

// Resize notifies the GUI of a display size change.
func (g *GUI) Resize(width, height int) {
	g.renderer.Resize(width, height)
}

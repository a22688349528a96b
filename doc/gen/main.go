// Command gen drives text fields through scripted input, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	gui "github.com/go-theft-auto/imgui"
	"github.com/go-theft-auto/imgui/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// step feeds input events before one frame. Everything it holds down is
// released after the frame.
type step func(in *gui.InputState)

// screenshot defines a single capture.
type screenshot struct {
	name   string                 // filename without extension
	width  int                    // viewport width
	height int                    // viewport height
	draw   func(ctx *gui.Context) // widget drawing function
	steps  []step                 // scripted input, one frame each
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	font := gui.DefaultFont()
	renderer, err := opengl.NewRenderer(800, 600, font)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, font, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, font gui.Font, s screenshot, outDir string) error {
	// Only the projection changes. The hidden window stays at 800x600, larger
	// than every screenshot, because GLFW resizes asynchronously.
	renderer.Resize(s.width, s.height)

	// Fresh GUI per screenshot so edit state does not leak between captures.
	ui := gui.New(renderer, gui.WithFont(font), gui.WithClipboard(&gui.MemoryClipboard{}))
	input := gui.NewInputState()

	frame := func() error {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		displaySize := gui.Vec2{X: float32(s.width), Y: float32(s.height)}
		ctx := ui.Begin(input, displaySize, 1.0/60.0)
		s.draw(ctx)
		return ui.End()
	}

	for _, st := range s.steps {
		st(input)
		if err := frame(); err != nil {
			return err
		}
		release(input)
	}
	// Two settle frames: one for deferred focus requests, one to draw the result.
	for range 2 {
		if err := frame(); err != nil {
			return err
		}
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func release(in *gui.InputState) {
	in.SetMouseButton(gui.MouseButtonLeft, false)
	for k := gui.KeyNone + 1; k < gui.KeyCount; k++ {
		if in.KeyDown(k) {
			in.SetKey(k, false)
		}
	}
	in.ModCtrl, in.ModShift, in.ModAlt, in.ModSuper = false, false, false, false
}

func click(x, y float32) step {
	return func(in *gui.InputState) {
		in.SetMousePos(x, y)
		in.SetMouseButton(gui.MouseButtonLeft, true)
	}
}

func typeText(s string) step {
	return func(in *gui.InputState) {
		for _, r := range s {
			in.AddInputChar(r)
		}
	}
}

func press(k gui.Key, mods gui.KeyMod) step {
	return func(in *gui.InputState) {
		in.ModCtrl = mods&gui.KeyModCtrl != 0
		in.ModShift = mods&gui.KeyModShift != 0
		in.SetKey(k, true)
	}
}

// buildScreenshots returns every text field state to capture.
func buildScreenshots() []screenshot {
	var (
		name      = "Hello, world!"
		empty     = ""
		password  = "hunter2"
		notes     = "First line\nSecond line\nThird line is a little longer\nFourth"
		count     = 42
		scale     = float32(3.14)
		hex       = ""
		listItems = make([]string, 1000)
	)
	for i := range listItems {
		listItems[i] = fmt.Sprintf("item %04d", i)
	}

	// Fields start at the root window's padding; 20,20 lands inside the first one.
	const fieldX, fieldY = 20, 20

	return []screenshot{
		{
			name: "input_text", width: 400, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.InputText("Name", &name)
			},
		},
		{
			name: "input_text_hint", width: 400, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.InputTextWithHint("Search", "type to filter", &empty)
			},
		},
		{
			name: "input_text_editing", width: 400, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.InputText("Name", &name)
			},
			steps: []step{click(fieldX, fieldY), press(gui.KeyEnd, gui.KeyModNone), typeText(" Typed.")},
		},
		{
			name: "input_text_selection", width: 400, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.InputText("Name", &name)
			},
			steps: []step{click(fieldX, fieldY), press(gui.KeyEnd, gui.KeyModNone), press(gui.KeyLeft, gui.KeyModCtrl | gui.KeyModShift)},
		},
		{
			name: "input_text_password", width: 400, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.InputText("Password", &password, gui.WithFlags(gui.InputTextFlagsPassword))
			},
		},
		{
			name: "input_text_filtered", width: 400, height: 80,
			draw: func(ctx *gui.Context) {
				flags := gui.InputTextFlagsCharsHexadecimal | gui.InputTextFlagsCharsUppercase
				ctx.InputText("Hex", &hex, gui.WithFlags(flags))
			},
			steps: []step{click(fieldX, fieldY), typeText("deadbeef-xyz")},
		},
		{
			name: "input_text_multiline", width: 400, height: 160,
			draw: func(ctx *gui.Context) {
				ctx.InputTextMultiline("Notes", &notes, gui.WithHeight(120))
			},
			steps: []step{click(fieldX, fieldY+20), press(gui.KeyEnd, gui.KeyModNone), press(gui.KeyHome, gui.KeyModShift)},
		},
		{
			name: "input_scalar", width: 400, height: 100,
			draw: func(ctx *gui.Context) {
				ctx.InputInt("Count", &count, gui.WithRange(0, 100), gui.WithWidth(200))
				ctx.InputFloat("Scale", &scale, gui.WithFormat("%.2f"), gui.WithWidth(200))
			},
		},
		{
			name: "list_clipper", width: 300, height: 200,
			draw: func(ctx *gui.Context) {
				var clipper gui.ListClipper
				clipper.Begin(ctx, len(listItems))
				for clipper.Step() {
					for i := clipper.DisplayStart; i < clipper.DisplayEnd; i++ {
						ctx.Text(listItems[i])
					}
				}
			},
		},
	}
}

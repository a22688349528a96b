// Example opens a window with a few text fields and a clipped list of
// 100000 rows.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -config gui.toml -log example.log -v
//
// Logs from the application and the gui package go to a rotated file.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	gui "github.com/go-theft-auto/imgui"
	"github.com/go-theft-auto/imgui/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "imgui text input example"
	listRows     = 100000
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	logPath := flag.String("log", "example.log", "log file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger, sink := newLogger(*logPath, *verbose)
	defer sink.Close()
	defer logger.Sync() //nolint:errcheck

	if err := run(logger, *configPath); err != nil {
		logger.Error("example failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes both the application log and the gui package log to one
// rotated file.
func newLogger(path string, verbose bool) (*zap.Logger, *lumberjack.Logger) {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(sink), level)

	gui.SetLogOutput(sink)
	gui.SetVerbose(verbose)
	return zap.New(core), sink
}

func run(logger *zap.Logger, configPath string) error {
	cfg := gui.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = gui.LoadConfig(configPath); err != nil {
			return err
		}
		logger.Info("config loaded", zap.String("path", configPath), zap.Bool("mac", cfg.MacBehaviors))
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	font := gui.DefaultFont()
	renderer, err := opengl.NewRenderer(windowWidth, windowHeight, font)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	inputAdapter := opengl.NewGLFWInputAdapter(window)

	ui := gui.New(renderer,
		gui.WithConfig(cfg),
		gui.WithFont(font),
		gui.WithClipboard(opengl.GLFWClipboard{Window: window}),
	)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		ui.Resize(w, h)
	})

	app := newDemo(logger)
	last := glfw.GetTime()

	for !window.ShouldClose() {
		glfw.PollEvents()
		input := inputAdapter.Update()

		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ctx := ui.Begin(input, gui.Vec2{X: float32(w), Y: float32(h)}, dt)
		app.draw(ctx)
		if err := ui.End(); err != nil {
			return fmt.Errorf("gui render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

type demo struct {
	logger *zap.Logger

	name     string
	search   string
	password string
	hex      string
	notes    string
	count    int
	scale    float32
	history  []string
	histPos  int

	rows []string
}

func newDemo(logger *zap.Logger) *demo {
	d := &demo{
		logger: logger,
		notes:  "Multi-line text.\nCtrl+Z undoes, Ctrl+Y redoes.\n",
		scale:  1,
		rows:   make([]string, listRows),
	}
	for i := range d.rows {
		d.rows[i] = fmt.Sprintf("row %06d", i)
	}
	return d
}

func (d *demo) draw(ctx *gui.Context) {
	ctx.Text("Text input")
	ctx.InputText("Name", &d.name, gui.WithFlags(gui.InputTextFlagsCharsNoBlank))
	ctx.InputTextWithHint("Password", "secret", &d.password, gui.WithFlags(gui.InputTextFlagsPassword))
	ctx.InputText("Hex", &d.hex, gui.WithFlags(gui.InputTextFlagsCharsHexadecimal|gui.InputTextFlagsCharsUppercase))

	flags := gui.InputTextFlagsEnterReturnsTrue | gui.InputTextFlagsCallbackCompletion | gui.InputTextFlagsCallbackHistory
	if ctx.InputText("Command", &d.search, gui.WithFlags(flags), gui.WithCallback(d.commandCallback, nil)) {
		d.logger.Info("command", zap.String("text", d.search))
		d.history = append(d.history, d.search)
		d.histPos = len(d.history)
		d.search = ""
	}

	ctx.InputTextMultiline("Notes", &d.notes, gui.WithHeight(120))

	if ctx.InputInt("Count", &d.count, gui.WithRange(0, 100)) {
		d.logger.Debug("count", zap.Int("value", d.count))
	}
	ctx.InputFloat("Scale", &d.scale, gui.WithFormat("%.2f"), gui.WithRange(0.1, 10))

	ctx.Text(fmt.Sprintf("Clipped list (%d rows)", len(d.rows)))
	var clipper gui.ListClipper
	clipper.Begin(ctx, len(d.rows))
	for clipper.Step() {
		for i := clipper.DisplayStart; i < clipper.DisplayEnd; i++ {
			ctx.Text(d.rows[i])
		}
	}
}

var commands = []string{"clear", "help", "history", "quit"}

// commandCallback completes command names on Tab and walks the history on
// Up/Down.
func (d *demo) commandCallback(data *gui.InputTextCallbackData) int {
	switch data.EventFlag {
	case gui.InputTextFlagsCallbackCompletion:
		word := strings.TrimLeftFunc(string(data.Buf[:data.CursorPos]), unicode.IsSpace)
		for _, c := range commands {
			if word != "" && strings.HasPrefix(c, word) {
				data.DeleteChars(data.CursorPos-len(word), len(word))
				data.InsertChars(data.CursorPos, c)
				break
			}
		}
	case gui.InputTextFlagsCallbackHistory:
		prev := d.histPos
		switch data.EventKey {
		case gui.KeyUp:
			d.histPos = max(0, d.histPos-1)
		case gui.KeyDown:
			d.histPos = min(len(d.history), d.histPos+1)
		}
		if prev != d.histPos {
			text := ""
			if d.histPos < len(d.history) {
				text = d.history[d.histPos]
			}
			data.DeleteChars(0, data.BufTextLen)
			data.InsertChars(0, text)
		}
	}
	return 0
}

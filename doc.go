/*
Package gui provides Dear ImGui style text input fields and a list clipper
for immediate-mode UIs, designed as idiomatic Go with a dedicated Context
type.

# Overview

The UI is rebuilt every frame. A text field is a single call that draws the
field, handles the mouse and keyboard while it is focused and writes the
edited text back to the caller's buffer. Only one field is edited at a time;
its editing state (cursor, selection, undo log, scroll) lives in the Context
and is dropped when the field loses focus.

The ListClipper lets a list of any length be submitted at the cost of the
rows that are actually visible.

# Quick Start

	// Setup
	font := gui.DefaultFont()
	renderer, _ := opengl.NewRenderer(1920, 1080, font)
	ui := gui.New(renderer, gui.WithFont(font), gui.WithClipboard(opengl.GLFWClipboard{Window: window}))

	// Game loop
	for !window.ShouldClose() {
	    glfw.PollEvents()
	    input := adapter.Update()

	    ctx := ui.Begin(input, gui.Vec2{1920, 1080}, deltaTime)

	    ctx.InputText("Name", &name)
	    if ctx.InputText("##cmd", &cmd, gui.WithFlags(gui.InputTextFlagsEnterReturnsTrue)) {
	        run(cmd)
	    }
	    ctx.InputTextMultiline("Notes", &notes, gui.WithHeight(200))

	    var clipper gui.ListClipper
	    clipper.Begin(ctx, len(lines))
	    for clipper.Step() {
	        for i := clipper.DisplayStart; i < clipper.DisplayEnd; i++ {
	            ctx.Text(lines[i])
	        }
	    }

	    ui.End()
	    window.SwapBuffers()
	}

# Numbers

InputInt and InputFloat format a value into a field that accepts only
numeric characters. Clicking selects the whole number. The value updates
whenever the text parses, clamped by WithRange:

	ctx.InputInt("Count", &count, gui.WithRange(0, 100))
	ctx.InputFloat("Scale", &scale, gui.WithFormat("%.2f"))

# Buffers

InputText and friends edit a *string. InputTextEx edits a NUL-terminated
[]byte whose length is the capacity, the way C buffers work: text that does
not fit is truncated at a UTF-8 boundary unless InputTextFlagsCallbackResize
is set, in which case the callback is asked for a bigger slice.

# Callbacks

Set one or more InputTextFlagsCallback* flags and pass a callback with
WithCallback. Completion (Tab), history (Up/Down), edit and always events
see the live text in InputTextCallbackData.Buf with byte offsets for the
cursor and selection; they may edit it with DeleteChars and InsertChars.
Char filter events may replace or discard each typed or pasted character.

# Keyboard Shortcuts Reference

With Config.MacBehaviors, Cmd replaces Ctrl below and Alt moves by word.

Navigation:

	Left / Right         Move cursor one character
	Ctrl+Left / Right    Move cursor one word
	Up / Down            Move cursor one line (multiline)
	Ctrl+Up / Down       Scroll one line (multiline)
	PageUp / PageDown    Move cursor one page (multiline)
	Home / End           Jump to start / end of the line
	Ctrl+Home / End      Jump to start / end of the text

Any of the above with Shift extends the selection.

Editing:

	Backspace / Delete   Delete a character or the selection
	Ctrl+Backspace       Delete the word left of the cursor
	Enter                Validate (single line) or new line (multiline)
	Ctrl+Enter           Validate (multiline); the two swap with InputTextFlagsCtrlEnterForNewLine
	Tab / Shift+Tab      Focus the next / previous field; inserts '\t' with InputTextFlagsAllowTabInput
	Insert               Toggle overwrite mode
	Escape               Revert and leave, or clear with InputTextFlagsEscapeClearsAll

Clipboard and history:

	Ctrl+A               Select all
	Ctrl+C / Ctrl+Insert Copy (whole text when nothing is selected)
	Ctrl+X / Shift+Del   Cut
	Ctrl+V / Shift+Ins   Paste
	Ctrl+Z               Undo
	Ctrl+Y               Redo (also Cmd+Shift+Z on Mac)

Mouse:

	Click                Place the cursor
	Shift+Click          Extend the selection
	Double-click         Select a word
	Triple-click         Select a line (multiline)
	Drag                 Select

# Configuration

Behavior switches are in Config and can be loaded from TOML:

	cfg, err := gui.LoadConfig("gui.toml")
	ui := gui.New(renderer, gui.WithConfig(cfg))

# Logging

The package logs through log/slog to stderr at Info level. SetVerbose(true)
enables debug logs for activation, reverts, resizes and clipper ranges;
SetLogOutput redirects them.
*/
package gui

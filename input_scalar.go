package gui

import (
	"fmt"
	"strconv"
	"strings"
)

// InputFloat draws a text field editing a float32. Clicking selects the whole
// number so typing replaces it. The value updates as soon as the text parses;
// text that does not parse leaves it alone.
// Returns true if the value was changed.
//
// Usage:
//
//	ctx.InputFloat("Scale", &scale, WithFormat("%.2f"), WithRange(0.1, 10))
func (ctx *Context) InputFloat(label string, value *float32, opts ...Option) bool {
	o := applyOptions(opts)
	format := GetOpt(o, OptFormat)
	if format == "" {
		format = "%.3f"
	}

	var text string
	if strings.Contains(format, "%d") {
		text = fmt.Sprintf(format, int(*value))
	} else {
		text = fmt.Sprintf(format, *value)
	}
	if !ctx.inputScalarText(label, &text, InputTextFlagsCharsScientific, o) {
		return false
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	if err != nil {
		return false
	}
	newValue := float32(v)
	if r := GetOpt(o, OptRange); r.HasRange {
		newValue = clampf(newValue, r.Min, r.Max)
	}
	if newValue == *value {
		return false
	}
	*value = newValue
	return true
}

// InputInt draws a text field editing an int. A fractional entry is
// truncated. Returns true if the value was changed.
func (ctx *Context) InputInt(label string, value *int, opts ...Option) bool {
	o := applyOptions(opts)
	format := GetOpt(o, OptFormat)
	if format == "" {
		format = "%d"
	}

	text := fmt.Sprintf(format, *value)
	if !ctx.inputScalarText(label, &text, InputTextFlagsCharsDecimal, o) {
		return false
	}

	text = strings.TrimSpace(text)
	newValue, err := strconv.Atoi(text)
	if err != nil {
		v, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return false
		}
		newValue = int(v)
	}
	if r := GetOpt(o, OptRange); r.HasRange {
		newValue = clampInt(newValue, int(r.Min), int(r.Max))
	}
	if newValue == *value {
		return false
	}
	*value = newValue
	return true
}

// inputScalarText edits the formatted value. While the field is focused the
// edit state holds what the user typed, so the freshly formatted text only
// shows while it is not.
func (ctx *Context) inputScalarText(label string, text *string, charsFilter InputTextFlags, o options) bool {
	flags := GetOpt(o, OptInputFlags)&^InputTextFlagsMultiline | charsFilter | InputTextFlagsAutoSelectAll
	size := Vec2{GetOpt(o, OptWidth), 0}
	return ctx.inputTextString(label, GetOpt(o, OptHint), text, size, flags, o)
}

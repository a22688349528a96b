package gui

// Option configures a widget or a list clipper.
type Option func(*options)

// options holds all widget configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for widget options.
// All options (built-in and custom) use this system for consistency.
//
// Example:
//
//	// Define option keys (built-in ones are already defined below)
//	var OptMaxLen = gui.NewOptKey("maxLen", 0)
//
//	// Set options
//	ctx.InputText("Name", &name, gui.WithOpt(OptMaxLen, 32))
//
//	// Read in a custom callback or widget
//	maxLen := gui.ApplyAndGet(opts, OptMaxLen)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ApplyAndGet applies options and returns a single value.
// Use this in external packages to create custom widgets.
func ApplyAndGet[T any](opts []Option, key OptKey[T]) T {
	return GetOpt(applyOptions(opts), key)
}

// ApplyAndCheck returns the option value and whether it was explicitly set.
func ApplyAndCheck[T any](opts []Option, key OptKey[T]) (T, bool) {
	o := applyOptions(opts)
	return GetOpt(o, key), HasOpt(o, key)
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

// --- Layout Options ---
var (
	OptWidth  = NewOptKey[float32]("width", 0)  // 0 = default item width
	OptHeight = NewOptKey[float32]("height", 0) // 0 = default height
)

// --- Text Input Options ---
var (
	OptInputFlags    = NewOptKey("inputFlags", InputTextFlagsNone)
	OptHint          = NewOptKey("hint", "")
	OptInputCallback = NewOptKey[InputTextCallback]("inputCallback", nil)
	OptInputUserData = NewOptKey[any]("inputUserData", nil)
	OptFormat        = NewOptKey("format", "") // fmt verb for InputInt/InputFloat
	OptRange         = NewOptKey("range", ValueRange{})
)

// --- List Clipper Options ---
var (
	// OptItemHeight gives the item height up front, skipping the measuring step.
	OptItemHeight = NewOptKey[float32]("itemHeight", -1)
	// OptFrozenItems is how many leading items are always submitted, one per
	// step, before clipping starts (e.g. header rows).
	OptFrozenItems = NewOptKey("frozenItems", 0)
)

// =============================================================================
// Convenience Option Functions (wrap WithOpt for common cases)
// =============================================================================

// WithWidth sets a specific width for the widget.
func WithWidth(width float32) Option { return WithOpt(OptWidth, width) }

// WithHeight sets a specific height for the widget.
func WithHeight(height float32) Option { return WithOpt(OptHeight, height) }

// WithFlags sets text field flags.
func WithFlags(flags InputTextFlags) Option { return WithOpt(OptInputFlags, flags) }

// WithHint shows hint in an empty text field.
func WithHint(hint string) Option { return WithOpt(OptHint, hint) }

// ValueRange clamps numeric fields when HasRange is set.
type ValueRange struct {
	Min, Max float32
	HasRange bool
}

// WithRange clamps numeric fields to [min, max].
func WithRange(min, max float32) Option {
	return WithOpt(OptRange, ValueRange{Min: min, Max: max, HasRange: true})
}

// WithFormat sets the fmt format numeric fields display their value with.
func WithFormat(format string) Option { return WithOpt(OptFormat, format) }

// WithCallback sets the callback for the InputTextFlagsCallback* flags.
// userData is handed back in InputTextCallbackData.UserData.
func WithCallback(cb InputTextCallback, userData any) Option {
	return func(o *options) {
		WithOpt(OptInputCallback, cb)(o)
		WithOpt(OptInputUserData, userData)(o)
	}
}

// WithItemHeight sets the item height of a ListClipper.
func WithItemHeight(h float32) Option { return WithOpt(OptItemHeight, h) }

// WithFrozenItems keeps the first n items of a ListClipper always submitted.
func WithFrozenItems(n int) Option { return WithOpt(OptFrozenItems, n) }

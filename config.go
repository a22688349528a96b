package gui

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds behavior switches that users commonly tweak, loadable from a
// TOML file:
//
//	mac_behaviors = true
//	cursor_blink = false
//
//	[input]
//	double_click_time = 0.3
type Config struct {
	// MacBehaviors swaps Ctrl for Cmd in shortcuts, uses Alt for word motion
	// and moves word-right to the end of the current word.
	MacBehaviors bool `toml:"mac_behaviors"`
	// CursorBlink makes the text cursor blink while a text field is focused.
	CursorBlink bool `toml:"cursor_blink"`
	// InputTextEnterKeepActive keeps single-line fields focused on Enter
	// (their text is selected instead).
	InputTextEnterKeepActive bool `toml:"input_text_enter_keep_active"`
	// UndoDepth bounds the per-field undo log. 0 means unbounded.
	UndoDepth int `toml:"undo_depth"`
	// NavEnableGamepad lets gamepad face buttons validate/cancel text fields.
	NavEnableGamepad bool `toml:"nav_enable_gamepad"`
	// Verbose turns on debug logging (see SetVerbose).
	Verbose bool `toml:"verbose"`

	Input InputConfig `toml:"input"`
}

// InputConfig holds timing thresholds used to derive click counts and key
// repeats. Times are in seconds.
type InputConfig struct {
	DoubleClickTime     float32 `toml:"double_click_time"`
	DoubleClickMaxDist  float32 `toml:"double_click_max_dist"`
	KeyRepeatDelay      float32 `toml:"key_repeat_delay"`
	KeyRepeatRate       float32 `toml:"key_repeat_rate"`
	MouseDragThreshold  float32 `toml:"mouse_drag_threshold"`
	MouseWheelLineCount float32 `toml:"mouse_wheel_line_count"`
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() Config {
	return Config{
		CursorBlink: true,
		UndoDepth:   100,
		Input: InputConfig{
			DoubleClickTime:     0.30,
			DoubleClickMaxDist:  6,
			KeyRepeatDelay:      KeyRepeatDelay,
			KeyRepeatRate:       KeyRepeatInterval,
			MouseDragThreshold:  6,
			MouseWheelLineCount: 3,
		},
	}
}

// ParseConfig decodes TOML data on top of DefaultConfig, so omitted keys keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse gui config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config back to TOML.
func (c Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gui config: %w", err)
	}
	return data, nil
}

func (c Config) validate() error {
	if c.UndoDepth < 0 {
		return fmt.Errorf("undo_depth must be >= 0, got %d", c.UndoDepth)
	}
	if c.Input.DoubleClickTime < 0 || c.Input.KeyRepeatDelay < 0 || c.Input.KeyRepeatRate < 0 {
		return fmt.Errorf("input timings must be >= 0")
	}
	return nil
}

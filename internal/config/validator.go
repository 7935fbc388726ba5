package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/waysurface/present"
	"github.com/gogpu/waysurface/render"
)

// MaxWindowSize bounds the configured default size in each dimension.
const MaxWindowSize = 16384

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "window.width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"auto", "text", "json"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateWindow()...)
	errs = append(errs, c.validateRender()...)
	errs = append(errs, c.validateGPU()...)
	errs = append(errs, c.validateLog()...)
	return errs
}

func (c *Config) validateWindow() []ValidationError {
	var errs []ValidationError

	if !utf8.ValidString(c.Window.Title) {
		errs = append(errs, ValidationError{
			Field:   "window.title",
			Value:   c.Window.Title,
			Message: "must be valid UTF-8",
		})
	}
	if !utf8.ValidString(c.Window.AppID) {
		errs = append(errs, ValidationError{
			Field:   "window.app_id",
			Value:   c.Window.AppID,
			Message: "must be valid UTF-8",
		})
	}
	if c.Window.Width < 1 || c.Window.Width > MaxWindowSize {
		errs = append(errs, ValidationError{
			Field:   "window.width",
			Value:   c.Window.Width,
			Message: fmt.Sprintf("must be between 1 and %d", MaxWindowSize),
		})
	}
	if c.Window.Height < 1 || c.Window.Height > MaxWindowSize {
		errs = append(errs, ValidationError{
			Field:   "window.height",
			Value:   c.Window.Height,
			Message: fmt.Sprintf("must be between 1 and %d", MaxWindowSize),
		})
	}
	return errs
}

func (c *Config) validateRender() []ValidationError {
	var errs []ValidationError

	if _, err := render.ParseColor(c.Render.ClearColor); err != nil {
		errs = append(errs, ValidationError{
			Field:   "render.clear_color",
			Value:   c.Render.ClearColor,
			Message: "must be a color name or #rrggbb[aa]",
		})
	}
	if _, err := present.ParsePresentMode(c.Render.PresentMode); err != nil {
		errs = append(errs, ValidationError{
			Field:   "render.present_mode",
			Value:   c.Render.PresentMode,
			Message: "must be one of: mailbox, fifo, fifo-relaxed, immediate",
		})
	}
	return errs
}

func (c *Config) validateGPU() []ValidationError {
	var errs []ValidationError

	if _, err := present.ResolveBackends(c.GPU.Backend); err != nil {
		errs = append(errs, ValidationError{
			Field:   "gpu.backend",
			Value:   c.GPU.Backend,
			Message: "must be one of: " + strings.Join(append([]string{present.BackendAuto}, present.Backends()...), ", "),
		})
	}
	if _, err := present.ParsePowerPreference(c.GPU.PowerPreference); err != nil {
		errs = append(errs, ValidationError{
			Field:   "gpu.power_preference",
			Value:   c.GPU.PowerPreference,
			Message: "must be one of: none, low-power, high-performance",
		})
	}
	return errs
}

func (c *Config) validateLog() []ValidationError {
	var errs []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: "must be one of: " + strings.Join(ValidLogLevels(), ", "),
		})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Log.Format)) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: "must be one of: " + strings.Join(ValidLogFormats(), ", "),
		})
	}
	return errs
}

// SlogLevel converts the configured level. Call after Validate.
func (c *LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad   Op = "load configuration"
	OpCatalogOpen  Op = "open catalog"
	OpStateOpen    Op = "open saved state"
	OpLogFileOpen  Op = "open log file"
	OpCatalogStats Op = "read catalog statistics"

	// Queue operations
	OpQueueLoad    Op = "load queue"
	OpQueueSave    Op = "save queue"
	OpQueueClear   Op = "clear saved queue"
	OpQueueRestore Op = "restore queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackNext  Op = "skip to next track"

	// Mode changes
	OpModeChange Op = "change mode"
	OpForcePlay  Op = "play item"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error wraps err with the same wording as Format, for returning from CLI
// actions.
func Error(op Op, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

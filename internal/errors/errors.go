package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/lock"
	"github.com/julianstephens/riji/internal/logger"
	"github.com/julianstephens/riji/internal/storage"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "create a journal with 'riji init', or point --config at an existing one"},
	{lock.ErrLocked, "close the other riji session first"},
	{journal.ErrPersist, "your changes are kept in memory for this session only; check the journal file permissions"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a suggestion for errors the user can fix, or ""
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"tradescope/schema"
)

// Severity label constants.
const (
	CriticalValue = "Critical" // Critical severity
	WarningValue  = "Warning"  // Warning severity
	InfoValue     = "Info"     // Informational severity
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold) // criticalColor represents standard danger.
	WarningColor  = color.New(color.FgYellow)          // warningColor represents standard caution, not bold.
	InfoColor     = color.New(color.FgCyan)            // infoColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label for an alert severity. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(sev schema.Severity) string {
	switch sev {
	case schema.SeverityCritical:
		return CriticalValue
	case schema.SeverityWarning:
		return WarningValue
	default:
		return InfoValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(sev schema.Severity) string {
	text := GetPlainLabel(sev)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case WarningValue:
		return WarningColor.Sprint(text)
	default: // "Info"
		return InfoColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for run storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tradescope_runs.db"
	}
	return filepath.Join(homeDir, ".tradescope_runs.db")
}

// TruncateName truncates a partner or file name to a maximum width with
// ellipsis suffix. Requires maxWidth > 3 so the ellipsis and at least one
// character of content both fit.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions describes a message block
type ErrorOptions struct {
	Level ErrorLevel
	// Context is a short upper-cased category shown before the problem
	Context     string
	Problem     string
	Detail      string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

// FormatError renders a message block.
//
// Example output:
//
//	✗ INVALID COLUMN TYPE: nubmer
//	   row 2, column 1: invalid column type
//
//	   Did you mean: number?
//
//	   → List column types: chartdata types
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var symbol string
	var attr color.Attribute
	switch opts.Level {
	case ErrorLevelWarning:
		symbol, attr = "!", color.FgYellow
	case ErrorLevelInfo:
		symbol, attr = "i", color.FgCyan
	default:
		symbol, attr = "✗", color.FgRed
	}

	head := newColor(opts.NoColor, attr, color.Bold)
	body := newColor(opts.NoColor, attr)

	if opts.Context != "" {
		head.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		head.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Detail != "" {
		body.Fprintf(&b, "   %s\n", opts.Detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.Hints) > 0 {
		b.WriteString("\n")
		hint := newColor(opts.NoColor, color.FgCyan)
		for _, h := range opts.Hints {
			hint.Fprintf(&b, "   → %s\n", h)
		}
	}

	return b.String()
}

// WriteError writes a formatted message block to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// UnknownNameError reports a name that is not one of valid, suggesting close matches
func UnknownNameError(kind, name string, valid []string, hint string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "unknown " + kind,
		Problem:     name,
		Detail:      fmt.Sprintf("Valid values: %s", strings.Join(valid, ", ")),
		Suggestions: FindSimilar(name, valid, nil),
		NoColor:     noColor,
	}
	if hint != "" {
		opts.Hints = []string{hint}
	}
	return FormatError(opts)
}

// Warning creates a warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return newColor(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

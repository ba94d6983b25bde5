package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/conduit-lang/chartdata/internal/cli/ui"
	"github.com/conduit-lang/chartdata/internal/source"
	"github.com/conduit-lang/chartdata/pkg/datatable"
)

// nameError reports a flag or option value outside a fixed set
type nameError struct {
	kind  string
	name  string
	valid []string
	hint  string
	err   error
}

func (e *nameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.kind, e.name)
}

func (e *nameError) Unwrap() error {
	return e.err
}

// errorContexts maps sentinel errors to a message category and a follow-up hint.
// The first match wins.
var errorContexts = []struct {
	target  error
	context string
	hint    string
}{
	{datatable.ErrInvalidColumnType, "invalid column", "List column types: chartdata types"},
	{datatable.ErrInvalidColumnRole, "invalid column", "List column roles: chartdata types"},
	{datatable.ErrInvalidColumnIndex, "invalid column", "Show columns: chartdata inspect <file>"},
	{datatable.ErrInvalidCellCount, "invalid row", ""},
	{datatable.ErrInvalidRowDefinition, "invalid row", ""},
	{datatable.ErrInvalidRowProperty, "invalid cell", ""},
	{datatable.ErrInvalidDateTimeString, "invalid date", ""},
	{datatable.ErrInvalidCellValue, "invalid cell", ""},
	{datatable.ErrInvalidConfigProperty, "invalid option", "List formatters: chartdata types"},
	{datatable.ErrInvalidConfigValue, "invalid option", "List formatters: chartdata types"},
	{source.ErrUndefinedTable, "query failed", ""},
	{source.ErrUndefinedColumn, "query failed", ""},
	{source.ErrQueryFailed, "query failed", ""},
	{source.ErrSheetNotFound, "spreadsheet", ""},
	{source.ErrEmptySource, "empty source", ""},
}

// describeError turns a command error into a message block
func describeError(err error, noColor bool) ui.ErrorOptions {
	opts := ui.ErrorOptions{
		Level:   ui.ErrorLevelError,
		Problem: err.Error(),
		NoColor: noColor,
	}

	for _, c := range errorContexts {
		if errors.Is(err, c.target) {
			opts.Context = c.context
			if c.hint != "" {
				opts.Hints = []string{c.hint}
			}
			break
		}
	}

	var cellErr *datatable.CellError
	if errors.As(err, &cellErr) {
		opts.Detail = fmt.Sprintf("Rejected value: %#v", cellErr.Value)
	}

	return opts
}

func writeError(w io.Writer, err error, noColor bool) {
	var ne *nameError
	if errors.As(err, &ne) {
		fmt.Fprint(w, ui.UnknownNameError(ne.kind, ne.name, ne.valid, ne.hint, noColor))
		return
	}
	ui.WriteError(w, describeError(err, noColor))
}

package datatable

import (
	"errors"
	"fmt"

	"github.com/conduit-lang/chartdata/internal/configschema"
)

// Validation errors returned by the datatable package.
// All of them are raised synchronously by the call that introduced the bad data.
var (
	// ErrInvalidColumnType is returned when a type tag is not in the registry
	ErrInvalidColumnType = errors.New("invalid column type")

	// ErrInvalidColumnRole is returned when a role tag is not in the registry
	ErrInvalidColumnRole = errors.New("invalid column role")

	// ErrInvalidColumnIndex is returned for out-of-range column indices
	ErrInvalidColumnIndex = errors.New("invalid column index")

	// ErrInvalidCellCount is returned when a row length differs from the column count
	ErrInvalidCellCount = errors.New("invalid cell count")

	// ErrInvalidRowDefinition is returned when a row is not a sequence
	ErrInvalidRowDefinition = errors.New("invalid row definition")

	// ErrInvalidRowProperty is returned for empty placeholder cells and malformed cell maps
	ErrInvalidRowProperty = errors.New("invalid row property")

	// ErrInvalidDateTimeString is returned when a date-like column cannot interpret a value
	ErrInvalidDateTimeString = errors.New("invalid date time string")

	// ErrInvalidCellValue is returned when a value does not match a non-date column type
	ErrInvalidCellValue = errors.New("invalid cell value")

	// ErrInvalidConfigProperty is returned for unknown option keys
	ErrInvalidConfigProperty = configschema.ErrInvalidProperty

	// ErrInvalidConfigValue is returned for option values of the wrong type or shape
	ErrInvalidConfigValue = configschema.ErrInvalidValue
)

// CellError locates a rejected cell value
type CellError struct {
	Row    int
	Column int
	Value  interface{}
	Err    error
}

// Error implements the error interface
func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %d: %v", e.Row, e.Column, e.Err)
}

// Unwrap returns the underlying validation error
func (e *CellError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err was caused by an invalid option key or value
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfigProperty) || errors.Is(err, ErrInvalidConfigValue)
}

func configValueError(owner, key, reason string) error {
	return &configschema.PropertyError{
		Owner:  owner,
		Key:    key,
		Reason: reason,
		Err:    ErrInvalidConfigValue,
	}
}

package csvimport

import (
	"errors"
	"fmt"
)

// Common import errors
var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrMissingHeader   = errors.New("file has no header row")
)

// RowError records a problem with one row of an import file. Row numbers
// are 1-based and count the header.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d, field %q: %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a row error for a specific field
func NewRowError(row int, field, message string) RowError {
	return RowError{Row: row, Field: field, Message: message}
}

package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceNotFound source file or sheet does not exist
var ErrSourceNotFound = errors.New("source not found")

// MissingSourceError source workbook or sheet cannot be read
type MissingSourceError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *MissingSourceError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("missing source %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("missing source %s: %v", e.Path, e.Err)
}

func (e *MissingSourceError) Unwrap() error {
	return e.Err
}

// SchemaError required columns are absent from the header row
type SchemaError struct {
	Path    string
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns in %s (sheet %q): %s",
		e.Path, e.Sheet, strings.Join(e.Missing, ", "))
}

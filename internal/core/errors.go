package core

import "fmt"

// MissingSourceError reports that the loader input does not exist.
type MissingSourceError struct {
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("source file not found: %s", e.Path)
}

// MalformedRowError reports the first row that could not be coerced.
// Line is 1-based and counts the header.
type MalformedRowError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed row on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed row on line %d: field %s=%q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// MissingStoreError reports that the orders table has not been created.
type MissingStoreError struct {
	Table string
}

func (e *MissingStoreError) Error() string {
	return fmt.Sprintf("store not found: table %q does not exist, run load first", e.Table)
}

// EmptyDatasetError reports a derivation attempted over zero rows.
type EmptyDatasetError struct {
	Report string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("empty dataset: cannot derive %s from zero orders", e.Report)
}

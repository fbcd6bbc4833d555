package invidx

import "fmt"

// MappingError is returned by SetMapping when a field already has a
// registered tokenizer.
type MappingError struct {
	Field string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping already exists for field: %s", e.Field)
}

// MissingMappingError is returned by AddDoc when a document carries a field
// that has no registered tokenizer.
type MissingMappingError struct {
	Field string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("missing mapping for field: %s", e.Field)
}

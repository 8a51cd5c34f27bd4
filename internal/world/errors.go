package world

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is wrapped by every ValidationError.
var ErrInvalidDocument = errors.New("invalid world document")

// Validation error codes.
const (
	CodeParse             = "PARSE"
	CodeMissingField      = "MISSING_FIELD"
	CodeWrongType         = "WRONG_TYPE"
	CodeDegeneratePolygon = "DEGENERATE_POLYGON"
	CodeDegeneratePath    = "DEGENERATE_PATH"
	CodeBadSize           = "BAD_SIZE"
	CodeBadSpeed          = "BAD_SPEED"
	CodeNonFinite         = "NON_FINITE"
)

// ValidationError describes why a world document was rejected.
type ValidationError struct {
	Code    string
	Path    string // e.g. "moving_objects[2].from.x"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidDocument
}

func invalid(code, path, format string, args ...any) error {
	return ValidationError{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

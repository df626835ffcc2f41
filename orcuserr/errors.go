// Package orcuserr defines the typed error kinds shared across the import
// core: parse errors (with byte offsets), invalid arguments, structural
// violations, unsupported operations, and general invariant failures.
package orcuserr

import "fmt"

// ParseError reports a grammar violation encountered by one of the
// text-format parsers. Offset is the byte position in the original input
// where the violation was detected.
type ParseError struct {
	Offset  int64
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// NewParseError builds a ParseError at the given byte offset.
func NewParseError(offset int64, format string, args ...any) *ParseError {
	return &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgumentError reports a reference string, range, or path that could
// not be resolved by the reference resolver or path parser.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string { return "invalid argument: " + e.Message }

// NewInvalidArgument builds an InvalidArgumentError.
func NewInvalidArgument(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// StructureError reports an import-time constraint failure, such as a
// non-root element expected to be unique appearing more than once.
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string { return "structure error: " + e.Message }

// NewStructureError builds a StructureError.
func NewStructureError(format string, args ...any) *StructureError {
	return &StructureError{Message: fmt.Sprintf(format, args...)}
}

// NotSupportedError reports that the requested format or operation was
// disabled at build time.
type NotSupportedError struct {
	Message string
}

func (e *NotSupportedError) Error() string { return "not supported: " + e.Message }

// NewNotSupported builds a NotSupportedError.
func NewNotSupported(format string, args ...any) *NotSupportedError {
	return &NotSupportedError{Message: fmt.Sprintf(format, args...)}
}

// GeneralError reports a miscellaneous internal invariant violation.
type GeneralError struct {
	Message string
}

func (e *GeneralError) Error() string { return "general error: " + e.Message }

// NewGeneralError builds a GeneralError.
func NewGeneralError(format string, args ...any) *GeneralError {
	return &GeneralError{Message: fmt.Sprintf(format, args...)}
}

package argvester

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is the sentinel all parse-time errors unwrap to. Use
// errors.Is(err, ErrParse) to distinguish a bad command line from a bad
// schema, and errors.As to inspect the concrete kind.
var ErrParse = errors.New("argument parsing failed")

// SchemaError reports an invalid meta description: bad field ordering, an
// unsupported field type or a malformed tag. It indicates a programming
// error in the schema struct, not a bad command line.
type SchemaError struct {
	Field  string // schema struct field name, empty for struct-level errors
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "invalid schema: " + e.Reason
	}
	return fmt.Sprintf("invalid schema: field %s: %s", e.Field, e.Reason)
}

// UnknownOptionError reports an option token that matches no registered
// short or long form.
type UnknownOptionError struct {
	Token string // the raw token, e.g. "--bang"
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown optional argument %s", e.Token)
}

func (e *UnknownOptionError) Unwrap() error { return ErrParse }

// ConversionError reports a raw value that could not be converted to the
// type of its field.
type ConversionError struct {
	Field string // external argument name
	Value string // the raw text that failed to convert
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid conversion while parsing argument %s: %v", e.Field, e.Err)
}

func (e *ConversionError) Unwrap() []error { return []error{ErrParse, e.Err} }

// UnexpectedArgumentError reports a stray token: all positional slots were
// already filled and the schema has no variadic field.
type UnexpectedArgumentError struct {
	Token string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s", e.Token)
}

func (e *UnexpectedArgumentError) Unwrap() error { return ErrParse }

// MissingRequiredArgumentError reports positional fields that never
// received a value.
type MissingRequiredArgumentError struct {
	Missing []string // external names, in declaration order
}

func (e *MissingRequiredArgumentError) Error() string {
	return fmt.Sprintf("required arguments are not provided: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingRequiredArgumentError) Unwrap() error { return ErrParse }

// DuplicateOptionError reports a non-repeatable option given more than once,
// under either of its forms.
type DuplicateOptionError struct {
	Token string // the raw token of the second occurrence
	Field string // external argument name
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("optional argument %s already given", e.Token)
}

func (e *DuplicateOptionError) Unwrap() error { return ErrParse }

// MissingValueError reports an option token at the end of the argument
// vector whose field expects a value.
type MissingValueError struct {
	Token string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value for optional argument %s", e.Token)
}

func (e *MissingValueError) Unwrap() error { return ErrParse }

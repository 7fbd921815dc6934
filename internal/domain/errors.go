package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownKind  = errors.New("unknown structure kind")

	ErrUnknownField           = errors.New("unknown field")
	ErrMissingField           = errors.New("missing required field")
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrInvalidEnumValue       = errors.New("invalid enum value")
	ErrUnknownStyleVariant    = errors.New("unknown style variant")
	ErrConstraintViolation    = errors.New("constraint violation")
	ErrImmutableFieldConflict = errors.New("immutable field conflict")
)

// ErrorCode identifies the class of a validation failure.
type ErrorCode string

const (
	CodeUnknownField           ErrorCode = "unknown_field"
	CodeMissingField           ErrorCode = "missing_field"
	CodeTypeMismatch           ErrorCode = "type_mismatch"
	CodeInvalidEnumValue       ErrorCode = "invalid_enum_value"
	CodeUnknownStyleVariant    ErrorCode = "unknown_style_variant"
	CodeConstraintViolation    ErrorCode = "constraint_violation"
	CodeImmutableFieldConflict ErrorCode = "immutable_field_conflict"
)

var codeSentinels = map[ErrorCode]error{
	CodeUnknownField:           ErrUnknownField,
	CodeMissingField:           ErrMissingField,
	CodeTypeMismatch:           ErrTypeMismatch,
	CodeInvalidEnumValue:       ErrInvalidEnumValue,
	CodeUnknownStyleVariant:    ErrUnknownStyleVariant,
	CodeConstraintViolation:    ErrConstraintViolation,
	CodeImmutableFieldConflict: ErrImmutableFieldConflict,
}

// ValidationError represents a field-level validation failure.
// Rule is only set for constraint violations.
type ValidationError struct {
	Code     ErrorCode `json:"code"`
	Field    string    `json:"field"`
	Rule     string    `json:"rule,omitempty"`
	Expected string    `json:"expected,omitempty"`
	Actual   string    `json:"actual,omitempty"`
	Message  string    `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap exposes the sentinel for the error's code so errors.Is works.
func (e *ValidationError) Unwrap() error {
	return codeSentinels[e.Code]
}

// ValidationErrors is every violation found in one validation call.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (es ValidationErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}

// ByCode returns the violations carrying the given code.
func (es ValidationErrors) ByCode(code ErrorCode) ValidationErrors {
	var out ValidationErrors
	for _, e := range es {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

// Violations extracts the collected violations from err, if any.
func Violations(err error) (ValidationErrors, bool) {
	var es ValidationErrors
	if errors.As(err, &es) {
		return es, true
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}, true
	}
	return nil, false
}

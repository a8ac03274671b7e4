package core

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// TranslateValidationErrors converts validator errors into a *ValidationError
// with translated per-field messages. Any other error is returned as is.
func TranslateValidationErrors(err error) error {
	var vErrs validator.ValidationErrors
	if !stderrors.As(err, &vErrs) {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
	}
	return NewValidationError(errors.New("invalid input"), flds...)
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return stderrors.As(err, &vErr)
}

// ErrSessionExpired is returned when the backend signals that the
// authentication token is no longer valid (HTTP 401).
var ErrSessionExpired = stderrors.New("session expired, please log in again")

// BusinessError is a logical failure reported by the backend on a transport-level
// success: the response was well-formed but carried success=false.
type BusinessError struct {
	Message string
	Code    string // optional machine-readable error_code, e.g. "ALREADY_SUBMITTED"
}

func (err *BusinessError) Error() string {
	if err.Message == "" {
		return "request failed"
	}
	return err.Message
}

// TransportError means no usable response was received: network down, timeout,
// malformed body or an unexpected HTTP status.
type TransportError struct {
	Msg   string
	Cause error
}

func NewTransportError(msg string, cause error) error {
	return &TransportError{Msg: msg, Cause: cause}
}

func (err *TransportError) Error() string {
	if err.Cause != nil {
		return err.Msg + ": " + err.Cause.Error()
	}
	return err.Msg
}

func (err *TransportError) Unwrap() error { return err.Cause }

func IsBusinessError(err error) bool {
	var bErr *BusinessError
	return stderrors.As(err, &bErr)
}

func IsTransportError(err error) bool {
	var tErr *TransportError
	return stderrors.As(err, &tErr)
}

package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that the requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// Type classifies errors by who is expected to fix them.
type Type int

const (
	TypeServer     Type = iota // the service failed (storage, parsing, bugs)
	TypeValidation             // the request was rejected as sent
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier mapped to an HTTP status code.
type Code int

const (
	CodeInternal      Code = iota // 500
	CodeInvalidFormat             // 400, the request does not carry what the endpoint needs
	CodeNotFound                  // 404
	CodeTooLarge                  // 413, body over the configured limit
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeTooLarge:
		return "ERROR_CODE_TOO_LARGE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// msg is what API clients see; err is the cause, kept for logs and
// errors.Is/As.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface. The cause wins over msg so logs show
// what actually failed.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	if e.errType == TypeValidation {
		return "validation failed"
	}
	return "internal error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the client-facing message.
func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Type() Type {
	return e.errType
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func newError(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps err behind the generic internal error message.
func NewServer(err error) error {
	return newError(err, "Erro interno do servidor!", TypeServer, CodeInternal)
}

// NewServerMessage creates a server-type error that exposes msg to the client
// while keeping err for errors.Is and logging.
func NewServerMessage(err error, msg string) error {
	return newError(err, msg, TypeServer, CodeInternal)
}

// NewValidation creates a validation error with a client-facing message.
func NewValidation(msg string, code Code) error {
	return newError(nil, msg, TypeValidation, code)
}

// NewTooLarge reports a request body over the limit.
func NewTooLarge(err error) error {
	return newError(err, "Arquivo excede o tamanho máximo permitido!", TypeValidation, CodeTooLarge)
}

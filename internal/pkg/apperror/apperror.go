package apperror

import "net/http"

// Kind is the machine-readable classification of an error, surfaced to
// clients alongside the human-readable message.
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindConflict        Kind = "CONFLICT"
	KindInvalidState    Kind = "INVALID_STATE"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindInternal        Kind = "INTERNAL"
)

// statusForKind maps each kind to its HTTP status code.
var statusForKind = map[Kind]int{
	KindInvalidArgument: http.StatusBadRequest,
	KindNotFound:        http.StatusNotFound,
	KindForbidden:       http.StatusForbidden,
	KindConflict:        http.StatusConflict,
	KindInvalidState:    http.StatusConflict,
	KindUnauthorized:    http.StatusUnauthorized,
	KindInternal:        http.StatusInternalServerError,
}

// AppError is a custom error type that carries an error kind and a user-facing message.
type AppError struct {
	Kind    Kind   // Machine-readable classification
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error's kind.
func (e *AppError) Status() int {
	if code, ok := statusForKind[e.Kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// New creates a new AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

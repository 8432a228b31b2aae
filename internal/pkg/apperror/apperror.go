package apperror

import "net/http"

// Kind labels an AppError for the "error" field of the JSON body.
const (
	KindNotFound   = "Resource Not Found"
	KindValidation = "Validation Error"
	KindDuplicate  = "Resource already exists"
	KindBadRequest = "Bad Request"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    string // Short error class shown to the user
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    http.StatusText(code),
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    http.StatusText(code),
		Message: message,
		Err:     err,
	}
}

// NotFound reports a referenced entity that does not exist.
func NotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

// Validation reports a business-rule violation.
func Validation(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

// Duplicate reports a uniqueness violation.
func Duplicate(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindDuplicate, Message: message}
}

// BadRequest reports an operation whose precondition is not met.
func BadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: message}
}

// WithDetail returns a copy of e carrying a more specific message and the cause.
// The copy still matches e under errors.Is.
func (e *AppError) WithDetail(detail string, cause error) *AppError {
	return &AppError{
		Code:    e.Code,
		Kind:    e.Kind,
		Message: e.Message + ": " + detail,
		Err:     &detailed{base: e, cause: cause},
	}
}

// detailed keeps the sentinel reachable through Unwrap after WithDetail.
type detailed struct {
	base  *AppError
	cause error
}

func (d *detailed) Error() string {
	if d.cause != nil {
		return d.cause.Error()
	}
	return d.base.Message
}

func (d *detailed) Unwrap() []error {
	if d.cause != nil {
		return []error{d.base, d.cause}
	}
	return []error{d.base}
}

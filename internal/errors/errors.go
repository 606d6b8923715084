package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a service error code
type ErrorCode string

const (
	ErrValidation          ErrorCode = "VALIDATION"             // 400
	ErrNoFile              ErrorCode = "NO_FILE"                // 400
	ErrUnsupportedMedia    ErrorCode = "UNSUPPORTED_MEDIA_TYPE" // 400
	ErrPayloadTooLarge     ErrorCode = "PAYLOAD_TOO_LARGE"      // 400
	ErrInvalidRecipient    ErrorCode = "INVALID_RECIPIENT"      // 400
	ErrSummarizationFailed ErrorCode = "SUMMARIZATION_FAILED"   // 500
	ErrSendFailed          ErrorCode = "SEND_FAILED"            // 500
	ErrInternal            ErrorCode = "INTERNAL"               // 500
)

// Category classifies a failed email send
type Category string

const (
	CategoryAuthenticationFailed Category = "AuthenticationFailed"
	CategoryConnectionFailed     Category = "ConnectionFailed"
	CategoryUnknown              Category = "Unknown"
)

// MinutesError is a structured error carrying the HTTP status and the
// user-facing message and details rendered at the handler boundary
type MinutesError struct {
	Code    ErrorCode
	Status  int
	Message string
	Detail  string
	Data    map[string]any
	Err     error
}

// Error implements the error interface
func (e *MinutesError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *MinutesError) Unwrap() error {
	return e.Err
}

// NewValidation creates a 400 error for required fields that are missing or blank
func NewValidation(message string, missing ...string) *MinutesError {
	e := &MinutesError{
		Code:    ErrValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
	if len(missing) > 0 {
		e.Detail = "missing required field(s): " + strings.Join(missing, ", ")
		e.Data = map[string]any{"missing": missing}
	}
	return e
}

// NewNoFile creates a 400 error for an upload request without a file part
func NewNoFile() *MinutesError {
	return &MinutesError{
		Code:    ErrNoFile,
		Status:  http.StatusBadRequest,
		Message: "No file uploaded",
	}
}

// NewUnsupportedMediaType creates a 400 error naming the rejected content type
func NewUnsupportedMediaType(mediaType, hint string) *MinutesError {
	return &MinutesError{
		Code:    ErrUnsupportedMedia,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Unsupported file type: %s", mediaType),
		Detail:  hint,
		Data:    map[string]any{"media_type": mediaType},
	}
}

// NewPayloadTooLarge creates a 400 error for input above the size ceiling
func NewPayloadTooLarge(limit int64) *MinutesError {
	return &MinutesError{
		Code:    ErrPayloadTooLarge,
		Status:  http.StatusBadRequest,
		Message: "Payload too large",
		Detail:  fmt.Sprintf("maximum size is %d bytes", limit),
		Data:    map[string]any{"max_bytes": limit},
	}
}

// NewInvalidRecipient creates a 400 error naming the first malformed address
func NewInvalidRecipient(address string) *MinutesError {
	return &MinutesError{
		Code:    ErrInvalidRecipient,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Invalid email address: %s", address),
		Data:    map[string]any{"address": address},
	}
}

// NewSummarizationFailed creates a 500 error wrapping a completion call failure
// The detail is the raw transport message
func NewSummarizationFailed(err error) *MinutesError {
	return &MinutesError{
		Code:    ErrSummarizationFailed,
		Status:  http.StatusInternalServerError,
		Message: "Failed to generate summary",
		Detail:  errorText(err),
		Err:     err,
	}
}

// NewSendFailed creates a 500 error for a classified email transport failure
func NewSendFailed(category Category, message, detail string, err error) *MinutesError {
	return &MinutesError{
		Code:    ErrSendFailed,
		Status:  http.StatusInternalServerError,
		Message: message,
		Detail:  detail,
		Data:    map[string]any{"category": string(category)},
		Err:     err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors
func NewInternal(message string, err error) *MinutesError {
	return &MinutesError{
		Code:    ErrInternal,
		Status:  http.StatusInternalServerError,
		Message: message,
		Detail:  errorText(err),
		Err:     err,
	}
}

// As extracts a MinutesError from err. Anything else is wrapped as an
// internal error so callers always get a structured value
func As(err error) *MinutesError {
	if err == nil {
		return nil
	}
	var mErr *MinutesError
	if stderrors.As(err, &mErr) {
		return mErr
	}
	return NewInternal("Something went wrong!", err)
}

// Is checks if an error is a MinutesError with the given code
func Is(err error, code ErrorCode) bool {
	var mErr *MinutesError
	if stderrors.As(err, &mErr) {
		return mErr.Code == code
	}
	return false
}

// CategoryOf returns the send-failure category of err, or "" if err is not a
// send failure
func CategoryOf(err error) Category {
	var mErr *MinutesError
	if !stderrors.As(err, &mErr) || mErr.Code != ErrSendFailed {
		return ""
	}
	c, _ := mErr.Data["category"].(string)
	return Category(c)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

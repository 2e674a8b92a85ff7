package service

import (
	"errors"
	"fmt"
)

// Coarse ServiceError kinds reported to clients as the "type" field.
const (
	KindPDFExtraction = "PDFExtractionError"
	KindCompletion    = "CompletionError"
	KindConfiguration = "ConfigurationError"
	KindInternal      = "InternalError"
)

var (
	ErrNoFile          = &ValidationError{Message: "No PDF file uploaded"}
	ErrFileUnavailable = &ValidationError{Message: "No file path available"}
	ErrNotPDF          = &ValidationError{Message: "Only PDF files are accepted"}
	ErrMissingAPIKey   = errors.New("completion service credential is not configured")
)

// ValidationError is a user-correctable problem with the request. Its message
// is returned to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServiceError is a failure of an external collaborator (PDF parser,
// completion service) or of the server's own configuration.
type ServiceError struct {
	Kind    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func newServiceError(kind, message string, cause error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Cause: cause}
}

func fileTooLarge(limit int64) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("File exceeds the %s limit", formatBytes(limit))}
}

func unknownProfile(name string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("Unknown analysis profile %q", name)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ErrorKind returns the ServiceError kind carried by err, or KindInternal.
func ErrorKind(err error) string {
	var sErr *ServiceError
	if errors.As(err, &sErr) {
		return sErr.Kind
	}
	return KindInternal
}

func formatBytes(n int64) string {
	const mib = 1 << 20
	if n%mib == 0 {
		return fmt.Sprintf("%d MB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}

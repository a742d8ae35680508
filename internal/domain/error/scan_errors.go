// Package error defines domain-specific errors for the Patungan application.
package error

import "errors"

// Receipt scanning domain errors.
var (
	// ErrScannerUnavailable is returned when no scanning service is configured.
	ErrScannerUnavailable = errors.New("receipt scanner is not configured")

	// ErrScanFailed is returned when the scanning service call fails.
	ErrScanFailed = errors.New("receipt scan failed")

	// ErrNoCandidates is returned when a scan produced no candidate items.
	ErrNoCandidates = errors.New("no items detected on receipt")

	// ErrNoValidCandidates is returned when every scanned candidate failed validation.
	ErrNoValidCandidates = errors.New("no valid items could be added from receipt")

	// ErrInvalidImage is returned when the uploaded image cannot be decoded.
	ErrInvalidImage = errors.New("invalid receipt image")
)

// ScanErrorCode defines error codes for receipt scanning errors.
// Format: SCAN-XXYYYY where XX is category and YYYY is specific error.
type ScanErrorCode string

const (
	// Input errors (01XXXX)
	ErrCodeInvalidImage ScanErrorCode = "SCAN-010001"

	// Service errors (02XXXX)
	ErrCodeScannerUnavailable ScanErrorCode = "SCAN-020001"
	ErrCodeScanFailed         ScanErrorCode = "SCAN-020002"

	// Result errors (03XXXX)
	ErrCodeNoCandidates      ScanErrorCode = "SCAN-030001"
	ErrCodeNoValidCandidates ScanErrorCode = "SCAN-030002"
)

// ScanError represents a scanning error with code and message.
type ScanError struct {
	Code    ScanErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewScanError creates a new ScanError with the given code and message.
func NewScanError(code ScanErrorCode, message string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

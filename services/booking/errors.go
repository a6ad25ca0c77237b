package booking

import "fmt"

// Stable failure codes so callers can discriminate failure kinds without
// parsing messages.
const (
	CodeValidation   = "VALIDATION"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeBusinessRule = "BUSINESS_RULE"
)

// BookingError is the domain error returned by the booking service.
type BookingError struct {
	Code    string
	Message string
	// AvailableDates carries the offered alternatives when a requested date
	// is rejected.
	AvailableDates []string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func newConflictError(msg string) error {
	return &BookingError{Code: CodeConflict, Message: msg}
}

func newNotFoundError(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

func newBusinessRuleError(msg string) error {
	return &BookingError{Code: CodeBusinessRule, Message: msg}
}

func newDateUnavailableError(msg string, alternatives []string) error {
	return &BookingError{Code: CodeBusinessRule, Message: msg, AvailableDates: alternatives}
}

// ErrorCode extracts the stable failure code from an error, or "" if the
// error did not originate in this package.
func ErrorCode(err error) string {
	if be, ok := err.(*BookingError); ok {
		return be.Code
	}
	return ""
}

package domain

import "errors"

// Stable codes for user-correctable order validation failures. The HTTP layer
// forwards these verbatim in the error envelope.
const (
	CodeParentNotFound          = "parent_not_found"
	CodeStudentNotFound         = "student_not_found"
	CodeStudentParentMismatch   = "student_parent_mismatch"
	CodeCanteenNotFound         = "canteen_not_found"
	CodeCanteenClosed           = "canteen_closed"
	CodeCutoffPassed            = "cutoff_passed"
	CodeMenuItemNotFound        = "menu_item_not_found"
	CodeMenuItemCanteenMismatch = "menu_item_canteen_mismatch"
	CodeInsufficientStock       = "insufficient_stock"
	CodeAllergenConflict        = "allergen_conflict"
	CodeInsufficientFunds       = "insufficient_funds"
	CodeInvalidAmount           = "invalid_amount"
)

var (
	// ErrNotFound is the sentinel for missing resources on the query path.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStateTransition marks a rejected order status transition.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrConcurrencyConflict marks a lost optimistic-lock race. Callers may
	// retry the whole operation.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// ValidationError is a user-correctable rejection of an order request.
// It aborts the surrounding transaction but is not an infrastructure fault.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package errs

import "errors"

// Error taxonomy shared by every usecase. Callers classify with Is, which
// understands marks applied by Mark.
var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("slot conflict")
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("operation forbidden")

	// Alert delivery
	ErrTransientSend    = errors.New("transient send failure")
	ErrPermanentFailure = errors.New("alert delivery exhausted")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

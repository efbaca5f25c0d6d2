package errors

import "errors"

// Custom application errors
var (
	ErrValidation               = errors.New("validation failed")                // Missing or malformed required field
	ErrNotFound                 = errors.New("record not found")                 // Operation targets an unknown identifier
	ErrStorage                  = errors.New("collection storage failed")        // Persisted collection read/write failed
	ErrNotificationScheduling   = errors.New("notification scheduling failed")   // A single trigger could not be scheduled
	ErrNotificationCancellation = errors.New("notification cancellation failed") // A single handle could not be cancelled
	ErrInternalServer           = errors.New("internal server error occurred")   // Generic internal error
)

package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found,
// or exists but is inactive.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (non-positive amount, structurally illegal request, missing wallet).
var ErrValidation = errors.New("validation error")

// ErrInsufficientFunds indicates that an available balance is below the
// amount required by the operation.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrRateNotFound indicates the exchange-rate table has no entry for the
// requested currency pair. This is an operator/configuration issue and
// is kept distinct from business-rule errors.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrConflict indicates store-level contention (deadlock, lock timeout,
// serialization failure) on the unit of work. No partial state was
// committed, so the caller may safely retry with backoff.
var ErrConflict = errors.New("conflict, retry may succeed")

// ErrDuplicate indicates that an attempt was made to create a resource that
// already exists (e.g. a reused transaction reference).
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Repositories use it to annotate low-level failures without losing the
// sentinel kind for errors.Is checks.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

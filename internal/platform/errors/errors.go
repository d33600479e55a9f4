package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrInvalidProfile marks a persona profile that fails validation
	// (inverted range, negative rate, unusable distribution). Raised
	// before any sampling begins so generation never emits partial data.
	ErrInvalidProfile = errors.New("invalid persona profile")

	// ErrUnknownPersona is returned for persona names absent from both
	// the built-in registry and the custom profile pack directory.
	ErrUnknownPersona = errors.New("unknown persona")

	// ErrInsufficientData means real-usage extraction produced less
	// usage than the configured minimum. Callers fall back to synthetic
	// baseline seeding instead of propagating it.
	ErrInsufficientData = errors.New("insufficient usage data")

	// ErrFreezeUnavailable means the streak-freeze inventory is empty
	// for the current month.
	ErrFreezeUnavailable = errors.New("no streak freeze available")

	// ErrRetryable marks transient store failures inside the daily
	// rollover; the rollover service retries these up to its budget.
	ErrRetryable = errors.New("retryable")
)

// Retryable wraps err so that errors.Is(err, ErrRetryable) holds.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err: err}
}

type retryableError struct {
	err error
}

func (r retryableError) Error() string {
	return r.err.Error()
}

func (r retryableError) Unwrap() []error {
	return []error{r.err, ErrRetryable}
}

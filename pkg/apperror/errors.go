package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// ErrValidation rejects malformed input before any lock is taken.
func ErrValidation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrUnknownAsset(asset string) *AppError {
	return New("VAL_002", fmt.Sprintf("Unknown asset %q", asset), http.StatusBadRequest)
}

func ErrUnknownOperationKind(kind string) *AppError {
	return New("VAL_003", fmt.Sprintf("Unknown operation kind %q", kind), http.StatusBadRequest)
}

// ---- Ledger (LED) ----

// ErrIdempotencyConflict flags a retry that reused a key with a different
// payload. This is a caller bug and is surfaced loudly, never absorbed.
func ErrIdempotencyConflict(key string) *AppError {
	return New("LED_001", fmt.Sprintf("Idempotency key %q was already used with a different payload", key), http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Concurrency (LOCK) ----

// ErrLockTimeout reports that the per-account lock could not be acquired
// within the configured bound. Transient, safe for the caller to retry.
func ErrLockTimeout(key string, err error) *AppError {
	return Wrap("LOCK_001", fmt.Sprintf("Could not acquire account lock %q", key), http.StatusServiceUnavailable, err)
}

// ---- Fairness (FAIR) ----

// ErrFairnessConfiguration reports a fatal generator misconfiguration, e.g.
// rejection sampling exhausting its iteration cap. A biased result is never
// returned in its place.
func ErrFairnessConfiguration(message string) *AppError {
	return New("FAIR_001", message, http.StatusInternalServerError)
}

func ErrUnknownGame(game string) *AppError {
	return New("FAIR_002", fmt.Sprintf("Unknown game type %q", game), http.StatusBadRequest)
}

func ErrSeedPairNotActive() *AppError {
	return New("FAIR_003", "Account has no active seed pair", http.StatusConflict)
}

func ErrSeedPairExists() *AppError {
	return New("FAIR_004", "Account already has an active seed pair", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

// ErrPersistence wraps a failed transaction commit or query. The wallet is
// guaranteed unchanged: no partial commit is possible.
func ErrPersistence(err error) *AppError {
	return Wrap("SYS_001", "Persistence failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_002 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal server error", http.StatusInternalServerError, err)
}

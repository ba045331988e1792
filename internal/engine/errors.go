package engine

import (
	"errors"

	"github.com/crossgate/schemesim/internal/storage"
)

// Recoverable conditions surfaced to callers. The UI maps each to a
// retry/refresh action; simulated protocol outcomes (failed resolution,
// rejected payment) are never errors.
var (
	ErrQuoteNotFound      = storage.ErrQuoteNotFound
	ErrQuoteExpired       = errors.New("quote validity window has passed")
	ErrQuoteAlreadyLocked = storage.ErrQuoteAlreadyLocked
	ErrDuplicateUETR      = storage.ErrDuplicateUETR
	ErrPaymentNotFound    = storage.ErrPaymentNotFound
)

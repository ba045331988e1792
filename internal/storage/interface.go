package storage

import "errors"

// Local, recoverable conditions callers are expected to branch on with
// errors.Is. Simulated-domain outcomes (failed resolution, rejected payment)
// are values, not errors.
var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrQuoteAlreadyLocked = errors.New("quote already locked for execution")
	ErrDuplicateUETR      = errors.New("payment with this uetr already recorded")
	ErrPaymentNotFound    = errors.New("payment not found")
)

// Store holds the simulator's shared mutable state: the quote cache and the
// payment ledger. Implementations must make LockQuote and PutPayment atomic
// check-then-act operations so that racing confirmations and submissions
// serialize per key.
type Store interface {
	// PutQuote inserts a quote into the cache, keyed by quote id.
	// Quotes are additive: identical requests never dedup.
	PutQuote(q Quote) error

	// GetQuote returns a cached quote or ErrQuoteNotFound.
	GetQuote(quoteID string) (Quote, error)

	// LockQuote marks a quote as locked for execution. Returns
	// ErrQuoteNotFound for unknown ids and ErrQuoteAlreadyLocked when the
	// quote already backs another confirmation.
	LockQuote(quoteID string) error

	// QuoteLocked reports whether a quote has been locked.
	QuoteLocked(quoteID string) bool

	// PutPayment appends a payment with its message trail and event feed.
	// Returns ErrDuplicateUETR when the uetr already exists; the stored
	// record is never overwritten.
	PutPayment(p Payment, trail []MessageTrailEntry, events []PaymentEvent) error

	// GetPayment returns a ledger record or ErrPaymentNotFound.
	GetPayment(uetr string) (Payment, error)

	// GetMessages returns the message trail for a uetr, in timestamp order.
	GetMessages(uetr string) ([]MessageTrailEntry, error)

	// GetEvents returns the lifecycle events for a uetr, in timestamp order.
	GetEvents(uetr string) ([]PaymentEvent, error)

	Close() error
}

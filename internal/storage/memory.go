package storage

import "sync"

type paymentRecord struct {
	payment Payment
	trail   []MessageTrailEntry
	events  []PaymentEvent
}

// MemoryStore implements Store with in-process maps. This is the default
// backend: the simulator's whole state fits in memory and expiry is a lazy
// predicate, so nothing ever needs eviction.
type MemoryStore struct {
	mu       sync.RWMutex
	quotes   map[string]Quote
	locked   map[string]bool
	payments map[string]paymentRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quotes:   make(map[string]Quote),
		locked:   make(map[string]bool),
		payments: make(map[string]paymentRecord),
	}
}

func (ms *MemoryStore) PutQuote(q Quote) error {
	ms.mu.Lock()
	ms.quotes[q.QuoteID] = q
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) GetQuote(quoteID string) (Quote, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	q, ok := ms.quotes[quoteID]
	if !ok {
		return Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (ms *MemoryStore) LockQuote(quoteID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.quotes[quoteID]; !ok {
		return ErrQuoteNotFound
	}
	if ms.locked[quoteID] {
		return ErrQuoteAlreadyLocked
	}
	ms.locked[quoteID] = true
	return nil
}

func (ms *MemoryStore) QuoteLocked(quoteID string) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.locked[quoteID]
}

func (ms *MemoryStore) PutPayment(p Payment, trail []MessageTrailEntry, events []PaymentEvent) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.payments[p.UETR]; ok {
		return ErrDuplicateUETR
	}
	rec := paymentRecord{
		payment: p,
		trail:   make([]MessageTrailEntry, len(trail)),
		events:  make([]PaymentEvent, len(events)),
	}
	copy(rec.trail, trail)
	copy(rec.events, events)
	ms.payments[p.UETR] = rec
	return nil
}

func (ms *MemoryStore) GetPayment(uetr string) (Payment, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	rec, ok := ms.payments[uetr]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return rec.payment, nil
}

func (ms *MemoryStore) GetMessages(uetr string) ([]MessageTrailEntry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	rec, ok := ms.payments[uetr]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	out := make([]MessageTrailEntry, len(rec.trail))
	copy(out, rec.trail)
	return out, nil
}

func (ms *MemoryStore) GetEvents(uetr string) ([]PaymentEvent, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	rec, ok := ms.payments[uetr]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	out := make([]PaymentEvent, len(rec.events))
	copy(out, rec.events)
	return out, nil
}

func (ms *MemoryStore) Close() error {
	return nil
}

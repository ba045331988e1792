package storage

const (
	quoteKeyPrefix     = "schemesim:quote:"
	quoteLockKeyPrefix = "schemesim:quote_lock:"
	paymentKeyPrefix   = "schemesim:payment:"
	trailKeyPrefix     = "schemesim:trail:"
	eventsKeyPrefix    = "schemesim:events:"
)

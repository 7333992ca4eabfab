package service

import "errors"

// Sentinel errors for the ledger engine. Handlers map these onto HTTP status
// codes with errors.Is; anything else is a commit-level failure and surfaces
// as an internal error with no partial effects (transaction atomicity).
var (
	// ErrValidation covers bad inputs caught before any write is attempted.
	ErrValidation = errors.New("geçersiz istek")

	// ErrNotFound covers unknown payment / pool / record references.
	ErrNotFound = errors.New("kayıt bulunamadı")

	// ErrInsufficientBalance rejects transfers exceeding the source pool.
	ErrInsufficientBalance = errors.New("kaynak kasada yeterli bakiye yok")

	// ErrConfirmationConflict rejects double confirmation and confirmation of
	// non-bank payments.
	ErrConfirmationConflict = errors.New("ödeme zaten onaylanmış ya da IBAN ödemesi değil")

	// ErrConcurrency is reserved for serialization failures reported by the
	// store. Pool mutations take row locks, so under normal operation this is
	// never returned; it exists so callers have a stable identity if an
	// optimistic retry loop is introduced later.
	ErrConcurrency = errors.New("eşzamanlı güncelleme çakışması")
)

package upsell

import "errors"

var (
	// ErrForbidden means the caller is authenticated but does not own the
	// listing or upsell they are acting on.
	ErrForbidden = errors.New("caller does not own this resource")

	ErrNotFound        = errors.New("upsell not found")
	ErrListingNotFound = errors.New("listing not found")

	// ErrConflictActiveUpsell rejects a purchase while an unexpired active
	// boost of the same type exists for the listing.
	ErrConflictActiveUpsell = errors.New("an active upsell of this type already exists for the listing")

	ErrAlreadyExpired = errors.New("upsell already expired")

	// ErrTransactionMismatch means the upsell was already completed with a
	// different payment transaction id.
	ErrTransactionMismatch = errors.New("payment already completed with a different transaction id")
)

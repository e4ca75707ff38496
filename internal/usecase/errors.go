package usecase

import (
	"errors"
	"fmt"

	"laundry_desk/internal/domain/pricing"
)

var (
	// ErrPersistence wraps any failure of the remote store or blob storage.
	ErrPersistence = errors.New("persistence failure")
	// ErrPartialFailure means a blob and its record disagree and the
	// compensating cleanup did not succeed either.
	ErrPartialFailure = errors.New("partial failure")

	ErrInvalidQuantity    = pricing.ErrInvalidQuantity
	ErrUnknownPricingMode = pricing.ErrUnknownPricingMode
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidDateRange   = errors.New("invalid date range")
)

func persistenceErr(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

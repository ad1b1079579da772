package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPromoCode is returned for an unrecognized promo code.
	ErrInvalidPromoCode = errors.New("invalid promo code")
	// ErrEmptyPromoCode is returned when the promo code is blank. It wraps
	// ErrInvalidPromoCode so callers can treat both alike.
	ErrEmptyPromoCode = fmt.Errorf("promo code required: %w", ErrInvalidPromoCode)
	// ErrPromoNotEligible is returned when a known code's conditions are not met.
	ErrPromoNotEligible = fmt.Errorf("promo code not eligible for this cart: %w", ErrInvalidPromoCode)
	// ErrPromoAlreadyApplied is returned once a code has been accepted for the session.
	ErrPromoAlreadyApplied = errors.New("promo code already applied")

	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidMenuItem     = errors.New("invalid menu item")

	// ErrInvalidInput marks a malformed request (missing fields, unknown actions).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownSurface wraps ErrNotFound for surface names other than dropdown and page.
	ErrUnknownSurface = fmt.Errorf("unknown surface: %w", ErrNotFound)
)

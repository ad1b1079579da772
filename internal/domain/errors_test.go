package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChains(t *testing.T) {
	assert.ErrorIs(t, ErrEmptyPromoCode, ErrInvalidPromoCode)
	assert.ErrorIs(t, ErrPromoNotEligible, ErrInvalidPromoCode)
	assert.ErrorIs(t, ErrUnknownSurface, ErrNotFound)

	assert.NotErrorIs(t, ErrPromoAlreadyApplied, ErrInvalidPromoCode)
	assert.NotErrorIs(t, ErrEmptyPromoCode, ErrPromoNotEligible)
	assert.Contains(t, ErrUnknownSurface.Error(), "unknown surface")
}

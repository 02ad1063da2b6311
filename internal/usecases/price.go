package usecases

import (
	"fmt"
	"math/big"
	"strings"

	domainerrors "mint-market.backend/internal/domain/errors"
)

// parsePrice parses a decimal SOL amount and rejects non-positive or
// malformed values. Prices travel as strings end to end so no float
// rounding ever touches them.
func parsePrice(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eE/") {
		return nil, fmt.Errorf("%w: price %q", domainerrors.ErrInvalidInput, s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: price %q", domainerrors.ErrInvalidInput, s)
	}
	if r.Sign() <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domainerrors.ErrInvalidInput)
	}
	return r, nil
}

// priceCovers reports whether paid is at least the listed amount
func priceCovers(paid, listed *big.Rat) bool {
	return paid.Cmp(listed) >= 0
}

// Package tokens implements token balance arithmetic.
//
// Balance is an immutable value: every operation returns a new Balance and
// leaves the receiver untouched. The normal path keeps balances
// non-negative; the admin path (NewAdmin, AdminSubtract) exists for
// caregiver corrections and may drive a balance below zero.
package tokens

import "errors"

var (
	// ErrInvalidAmount signals a negative amount passed to a non-admin
	// operation.
	ErrInvalidAmount = errors.New("token amount must be non-negative")

	// ErrInsufficientBalance signals a subtract exceeding the current
	// balance. Check CanAfford first, or use the admin path deliberately.
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

// Balance is an immutable count of tokens.
type Balance struct {
	value int
}

// New returns a balance of the given amount.
// Fails with ErrInvalidAmount if amount is negative.
func New(amount int) (Balance, error) {
	if amount < 0 {
		return Balance{}, ErrInvalidAmount
	}
	return Balance{value: amount}, nil
}

// NewAdmin returns a balance of the given amount, negative values included.
// Used for caregiver corrections that bypass the non-negativity invariant.
func NewAdmin(amount int) Balance {
	return Balance{value: amount}
}

// Zero returns an empty balance.
func Zero() Balance {
	return Balance{}
}

// Value returns the token count.
func (b Balance) Value() int {
	return b.value
}

// Add returns a new balance increased by amount.
// Fails with ErrInvalidAmount if amount is negative.
func (b Balance) Add(amount int) (Balance, error) {
	if amount < 0 {
		return Balance{}, ErrInvalidAmount
	}
	return Balance{value: b.value + amount}, nil
}

// Subtract returns a new balance decreased by amount.
// Fails with ErrInvalidAmount if amount is negative, and with
// ErrInsufficientBalance if amount exceeds the current value.
func (b Balance) Subtract(amount int) (Balance, error) {
	if amount < 0 {
		return Balance{}, ErrInvalidAmount
	}
	if amount > b.value {
		return Balance{}, ErrInsufficientBalance
	}
	return Balance{value: b.value - amount}, nil
}

// AdminSubtract returns a new balance decreased by amount, unconditionally.
// The result may be negative and amount's sign is not checked.
func (b Balance) AdminSubtract(amount int) Balance {
	return Balance{value: b.value - amount}
}

// CanAfford reports whether the balance covers the given cost.
func (b Balance) CanAfford(cost int) bool {
	return b.value >= cost
}

package models

// Role distinguishes children from caregivers.
type Role string

const (
	RoleChild     Role = "CHILD"
	RoleCaregiver Role = "CAREGIVER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleChild || r == RoleCaregiver
}

// User represents a family member.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Role is CHILD or CAREGIVER.
	Role Role `json:"role"`

	// TokenBalance is the user's current token count. It is mutated only
	// through the tokens package so balance invariants hold; the raw int
	// lives here for persistence.
	TokenBalance int `json:"token_balance"`

	// PinHash is the bcrypt hash of the caregiver's PIN. Empty for
	// children; never serialized.
	PinHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updated_at"`
}

// IsCaregiver reports whether the user holds the caregiver role.
func (u *User) IsCaregiver() bool {
	return u.Role == RoleCaregiver
}

// WithBalance returns a copy of the user carrying the given token balance.
func (u User) WithBalance(balance int) User {
	u.TokenBalance = balance
	return u
}

// WithPinHash returns a copy of the user carrying the given PIN hash.
// PINs are replaced wholesale on change.
func (u User) WithPinHash(hash string) User {
	u.PinHash = hash
	return u
}

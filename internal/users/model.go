package users

import "time"

// User is a wallet account holder.
type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	PasswordHash string    `json:"-" db:"password_hash"`
	PinCodeHash  *string   `json:"-" db:"pin_code_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// HasPinCode reports whether the user has configured a balance PIN.
func (u User) HasPinCode() bool {
	return u.PinCodeHash != nil && *u.PinCodeHash != ""
}

// FullName joins first and last name for display and search.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

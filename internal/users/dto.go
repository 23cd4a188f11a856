package users

// LoginRequest carries credentials for session login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Member is the reduced user shape exposed to transfer pickers.
type Member struct {
	ID        string  `json:"_id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Profile is the session user's own view, including whether a PIN
// exists (never the PIN itself).
type Profile struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	HasPin    bool    `json:"hasPinCode"`
}

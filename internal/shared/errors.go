package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPinMismatch occurs when a submitted PIN does not match the stored one.
	ErrPinMismatch = errors.New("pin code mismatch")
	// ErrPinNotSet occurs when a PIN-gated action runs before a PIN exists.
	ErrPinNotSet = errors.New("pin code not set")
	// ErrPinNotConfirmed occurs when a PIN-gated action runs before the
	// session confirmed the PIN. The client routes this to the confirm
	// dialog rather than the setup flow.
	ErrPinNotConfirmed = errors.New("pin code not confirmed")
)

// UserSafeMessage maps internal errors to text safe to show end users.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "The requested record could not be found."
	case errors.Is(err, ErrInvalidCredentials):
		return "Email or password is incorrect."
	case errors.Is(err, ErrPinMismatch):
		return "The PIN code you entered is incorrect."
	case errors.Is(err, ErrPinNotSet):
		return "Set a PIN code before revealing balances."
	case errors.Is(err, ErrPinNotConfirmed):
		return "Confirm your PIN code to reveal balances."
	default:
		return "Something went wrong. Please try again."
	}
}

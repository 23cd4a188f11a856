// Package pincode gates balance reveals behind a bcrypt-hashed PIN
// stored on the user record.
package pincode

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaulta/vaulta/internal/shared"
	"github.com/vaulta/vaulta/internal/users"
)

const sessionKeyVerified = "pin_verified"

// Verified reports whether the session already confirmed the PIN.
func Verified(sess *shared.Session) bool {
	return sess != nil && sess.Get(sessionKeyVerified) == "true"
}

// MarkVerified flags the session as PIN-confirmed until logout.
func MarkVerified(sess *shared.Session) {
	if sess != nil {
		sess.Set(sessionKeyVerified, "true")
	}
}

// Service manages the user's PIN code.
type Service struct {
	users users.Repository
}

// NewService constructs the pincode service.
func NewService(userRepo users.Repository) *Service {
	return &Service{users: userRepo}
}

// Set hashes and stores a new PIN for the user.
func (s *Service) Set(ctx context.Context, userID, pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	if err := s.users.SetPinCode(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("store pin: %w", err)
	}
	return nil
}

// Confirm checks the submitted PIN against the stored hash.
func (s *Service) Confirm(ctx context.Context, userID, pin string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user.PinCodeHash == nil || *user.PinCodeHash == "" {
		return shared.ErrPinNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PinCodeHash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return shared.ErrPinMismatch
		}
		return fmt.Errorf("compare pin: %w", err)
	}
	return nil
}

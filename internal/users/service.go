package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaulta/vaulta/internal/shared"
)

// Service implements authentication and member lookup.
type Service struct {
	repo Repository
}

// NewService constructs the users service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate verifies credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Profile builds the session user's own view.
func (s *Service) Profile(ctx context.Context, id string) (*Profile, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		HasPin:    user.HasPinCode(),
	}, nil
}

// Members lists everyone the given user can send money to.
func (s *Service) Members(ctx context.Context, userID string) ([]Member, error) {
	return s.repo.ListMembers(ctx, userID)
}

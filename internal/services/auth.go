package services

import (
	"errors"
	"fmt"

	"tickethub/internal/models"
	"tickethub/internal/utils"
)

// AuthService handles signup, credential verification and password changes
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Signup registers a new account
func (s *AuthService) Signup(req *models.SignupRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Create(req.Email, hash, req.Role)
}

// Authenticate verifies credentials and returns the user. A missing user and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrAuthFailure
		}
		return nil, err
	}

	match, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		return nil, models.ErrAuthFailure
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ChangePassword re-verifies the current password before accepting the new
// hash
func (s *AuthService) ChangePassword(userID int, req *models.PasswordChangeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	match, err := utils.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		return models.ErrAuthFailure
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(userID, hash)
}

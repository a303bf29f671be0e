package models

import (
	"fmt"
	"regexp"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleAttendee  UserRole = "attendee"
	RoleOrganizer UserRole = "organizer"
)

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the data needed to create a new user
type SignupRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// PasswordChangeRequest carries a password update. The current password must
// be re-verified before the new one is accepted.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates signup data. An empty role defaults to attendee.
func (req *SignupRequest) Validate() error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	if req.Role == "" {
		req.Role = RoleAttendee
	}

	return validateRole(req.Role)
}

// Validate validates a password change request
func (req *PasswordChangeRequest) Validate() error {
	if req.CurrentPassword == "" {
		return fmt.Errorf("%w: current password is required", ErrInvalidInput)
	}

	return validatePassword(req.NewPassword)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if len(email) > 255 {
		return fmt.Errorf("%w: email must be less than 255 characters", ErrInvalidInput)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: email format is invalid", ErrInvalidInput)
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrInvalidInput)
	}

	if len(password) > 128 {
		return fmt.Errorf("%w: password must be less than 128 characters", ErrInvalidInput)
	}

	return nil
}

func validateRole(role UserRole) error {
	switch role {
	case RoleAttendee, RoleOrganizer:
		return nil
	default:
		return fmt.Errorf("%w: invalid user role", ErrInvalidInput)
	}
}

// IsOrganizer returns true if the user can create and manage events
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

// IsAttendee returns true if the user is a regular attendee
func (u *User) IsAttendee() bool {
	return u.Role == RoleAttendee
}

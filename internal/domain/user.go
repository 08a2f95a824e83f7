package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid user role")
)

// UserRole determines a user's permission level.
type UserRole string

// User roles.
const (
	RoleUser    UserRole = "User"
	RoleManager UserRole = "Manager"
	RoleAdmin   UserRole = "Admin"
)

// ParseUserRole parses a role string case-insensitively.
// Returns ErrInvalidRole for unknown values.
func ParseUserRole(s string) (UserRole, error) {
	for _, role := range []UserRole{RoleUser, RoleManager, RoleAdmin} {
		if strings.EqualFold(s, string(role)) {
			return role, nil
		}
	}
	return "", ErrInvalidRole
}

// User represents a registered user of the application.
// It contains essential user information and authentication details.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	HashedPassword    string     `json:"-"` // Never expose password hash in JSON
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	Bio               string     `json:"bio,omitempty"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty"`
	Role              UserRole   `json:"role"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

// NewUser creates a new User with defaults for a fresh registration:
// role User, active, createdAt set. The caller is responsible for setting
// HashedPassword before the user is stored.
func NewUser(username, email string) *User {
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Role:      RoleUser,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if _, err := ParseUserRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

// validEmailFormat performs basic validation of email format: one @ with a
// dotted domain after it. Request-level validation applies stricter rules.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

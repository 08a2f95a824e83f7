package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service"
)

// RegisterRequest represents the payload for user registration.
type RegisterRequest struct {
	Username        string `json:"username"         validate:"required,min=3,max=50"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name"       validate:"max=50"`
	LastName        string `json:"last_name"        validate:"max=50"`
}

// LoginRequest represents the payload for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the payload for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ValidateTokenRequest represents the payload for token validation.
type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse is the response body for auth operations.
type AuthResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Token        string               `json:"token,omitempty"`
	RefreshToken string               `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time           `json:"expires_at,omitempty"`
	User         *service.UserSummary `json:"user,omitempty"`
}

// NewAuthResponse converts a service auth result into the response body.
func NewAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Success:      result.Success,
		Message:      result.Message,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.ExpiresAt,
		User:         result.User,
	}
}

// ValidateTokenResponse is the response body for token validation.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// CreateTaskRequest represents the payload for creating a task.
// Priority is parsed case-insensitively by the service; unknown values are
// rejected there rather than by a case-sensitive oneof tag here.
type CreateTaskRequest struct {
	Title          string     `json:"title"           validate:"required,max=200"`
	Description    string     `json:"description"     validate:"max=1000"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	AssignedTo     string     `json:"assigned_to"     validate:"max=50"`
	Tags           []string   `json:"tags"`
	EstimatedHours *int       `json:"estimated_hours" validate:"omitempty,gt=0"`
	Notes          string     `json:"notes"           validate:"max=500"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

// ToInput converts the request into the service input.
func (r CreateTaskRequest) ToInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:          r.Title,
		Description:    r.Description,
		Priority:       r.Priority,
		DueDate:        r.DueDate,
		AssignedTo:     r.AssignedTo,
		Tags:           r.Tags,
		EstimatedHours: r.EstimatedHours,
		Notes:          r.Notes,
		CategoryID:     r.CategoryID,
	}
}

// UpdateTaskRequest represents a partial task update. Absent fields are left
// untouched.
type UpdateTaskRequest struct {
	Title          *string    `json:"title"           validate:"omitempty,max=200"`
	Description    *string    `json:"description"     validate:"omitempty,max=1000"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	AssignedTo     *string    `json:"assigned_to"     validate:"omitempty,max=50"`
	Tags           []string   `json:"tags"`
	EstimatedHours *int       `json:"estimated_hours" validate:"omitempty,gt=0"`
	ActualHours    *int       `json:"actual_hours"    validate:"omitempty,gt=0"`
	Notes          *string    `json:"notes"           validate:"omitempty,max=500"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

// ToInput converts the request into the service input.
func (r UpdateTaskRequest) ToInput() service.UpdateTaskInput {
	return service.UpdateTaskInput{
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		Priority:       r.Priority,
		DueDate:        r.DueDate,
		AssignedTo:     r.AssignedTo,
		Tags:           r.Tags,
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
		Notes:          r.Notes,
		CategoryID:     r.CategoryID,
	}
}

// TaskListResponse is the response body for task listings.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
	Count int            `json:"count"`
}

// NewTaskListResponse builds a listing response, normalizing a nil slice to an
// empty one so the JSON is always an array.
func NewTaskListResponse(tasks []*domain.Task) TaskListResponse {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return TaskListResponse{Tasks: tasks, Count: len(tasks)}
}

// CreateUserRequest represents the payload for administratively creating a
// user.
type CreateUserRequest struct {
	Username    string `json:"username"     validate:"required,min=3,max=50"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=6,max=100"`
	FirstName   string `json:"first_name"   validate:"max=50"`
	LastName    string `json:"last_name"    validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
	Bio         string `json:"bio"          validate:"max=500"`
	Role        string `json:"role"`
}

// ToInput converts the request into the service input.
func (r CreateUserRequest) ToInput() service.CreateUserInput {
	return service.CreateUserInput{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Bio:         r.Bio,
		Role:        r.Role,
	}
}

// UpdateUserRequest represents a partial profile update. Absent fields are
// left untouched.
type UpdateUserRequest struct {
	FirstName         *string `json:"first_name"          validate:"omitempty,max=50"`
	LastName          *string `json:"last_name"           validate:"omitempty,max=50"`
	PhoneNumber       *string `json:"phone_number"        validate:"omitempty,max=20"`
	Bio               *string `json:"bio"                 validate:"omitempty,max=500"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
	IsActive          *bool   `json:"is_active"`
}

// ToInput converts the request into the service input.
func (r UpdateUserRequest) ToInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		PhoneNumber:       r.PhoneNumber,
		Bio:               r.Bio,
		ProfilePictureURL: r.ProfilePictureURL,
		IsActive:          r.IsActive,
	}
}

// UserListResponse is the response body for user listings.
type UserListResponse struct {
	Users []*service.UserSummary `json:"users"`
	Count int                    `json:"count"`
}

// NewUserListResponse builds a listing response with a non-nil slice.
func NewUserListResponse(users []*service.UserSummary) UserListResponse {
	if users == nil {
		users = []*service.UserSummary{}
	}
	return UserListResponse{Users: users, Count: len(users)}
}

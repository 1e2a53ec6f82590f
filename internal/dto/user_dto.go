package dto

import (
	"time"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// UserCreateRequest captures a new account payload.
type UserCreateRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required,oneof=faculty hod principal admin"`
	DepartmentID *uint  `json:"department_id"`
}

// UserUpdateRequest captures partial update payloads for accounts.
type UserUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role" validate:"omitempty,oneof=faculty hod principal admin"`
	DepartmentID *uint   `json:"department_id"`
}

// ChangePasswordRequest lets an authenticated user rotate their own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserListRequest defines filters for listing accounts.
type UserListRequest struct {
	Page         int
	PageSize     int
	Role         string
	DepartmentID *uint
	Search       string
}

// UserResponse serializes account data. Credential material is never
// included.
type UserResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	DepartmentID   *uint     `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserListResponse wraps a paginated account listing.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	response := UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.Department != nil {
		response.DepartmentName = user.Department.Name
	}
	return response
}

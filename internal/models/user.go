package models

import "time"

// Role constants for the four account types.
const (
	RoleFaculty   = "faculty"
	RoleHOD       = "hod"
	RolePrincipal = "principal"
	RoleAdmin     = "admin"
)

// User represents an account that can authenticate against the API.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	Email        string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	Role         string      `gorm:"size:32;not null" json:"role"`
	DepartmentID *uint       `json:"department_id"`
	Department   *Department `json:"department,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RequiresDepartment reports whether the role must be bound to a department.
func RequiresDepartment(role string) bool {
	return role == RoleFaculty || role == RoleHOD
}

// ValidRole reports whether the role is one of the known account types.
func ValidRole(role string) bool {
	switch role {
	case RoleFaculty, RoleHOD, RolePrincipal, RoleAdmin:
		return true
	default:
		return false
	}
}

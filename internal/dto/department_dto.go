package dto

import (
	"time"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// DepartmentCreateRequest captures a new department payload.
type DepartmentCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Code string `json:"code" validate:"required,min=1,max=32"`
}

// DepartmentResponse serializes a department.
type DepartmentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDepartmentResponse converts a department model into a DTO.
func NewDepartmentResponse(department models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        department.ID,
		Name:      department.Name,
		Code:      department.Code,
		CreatedAt: department.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// AchievementCreateRequest captures a faculty submission. Dates arrive as
// ISO strings and are parsed by the service.
type AchievementCreateRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=255"`
	Description     string   `json:"description" validate:"required,min=1"`
	Category        string   `json:"category" validate:"required"`
	SubCategory     string   `json:"sub_category" validate:"omitempty,max=128"`
	AchievementDate string   `json:"achievement_date" validate:"required"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Duration        string   `json:"duration" validate:"omitempty,max=64"`
	FundedBy        string   `json:"funded_by" validate:"omitempty,max=255"`
	GrantAmount     *float64 `json:"grant_amount"`
	ProofURL        string   `json:"proof_url" validate:"omitempty,max=512"`
}

// AchievementUpdateRequest captures a partial edit by the owning faculty.
type AchievementUpdateRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"description" validate:"omitempty,min=1"`
	Category        *string  `json:"category"`
	SubCategory     *string  `json:"sub_category" validate:"omitempty,max=128"`
	AchievementDate *string  `json:"achievement_date"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
	Duration        *string  `json:"duration" validate:"omitempty,max=64"`
	FundedBy        *string  `json:"funded_by" validate:"omitempty,max=255"`
	GrantAmount     *float64 `json:"grant_amount"`
	ProofURL        *string  `json:"proof_url" validate:"omitempty,max=512"`
}

// Decision outcomes accepted by the review endpoint.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DecisionRequest captures an approve/reject call by HOD or Admin.
type DecisionRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approve reject"`
	Reason  string `json:"reason" validate:"omitempty,max=2000"`
}

// AchievementListRequest defines filters for listing achievements. The
// role-based scope is applied on top of these by the service.
type AchievementListRequest struct {
	Page         int
	PageSize     int
	Category     string
	Status       string
	DepartmentID *uint
	FacultyID    *uint
	From         string
	To           string
}

// AchievementResponse serializes an achievement with resolved references.
type AchievementResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	SubCategory     string     `json:"sub_category,omitempty"`
	AchievementDate time.Time  `json:"achievement_date"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Duration        string     `json:"duration,omitempty"`
	FundedBy        string     `json:"funded_by,omitempty"`
	GrantAmount     *float64   `json:"grant_amount,omitempty"`
	FacultyID       uint       `json:"faculty_id"`
	FacultyName     string     `json:"faculty_name,omitempty"`
	DepartmentID    uint       `json:"department_id"`
	DepartmentName  string     `json:"department_name,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ProofURL        string     `json:"proof_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AchievementListResponse wraps a paginated achievement listing.
type AchievementListResponse struct {
	Items      []AchievementResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewAchievementResponse converts an achievement model into a DTO. A dangling
// faculty or department reference resolves to "Unknown" rather than erroring.
func NewAchievementResponse(achievement models.Achievement) AchievementResponse {
	response := AchievementResponse{
		ID:              achievement.ID,
		Title:           achievement.Title,
		Description:     achievement.Description,
		Category:        achievement.Category,
		SubCategory:     achievement.SubCategory,
		AchievementDate: achievement.AchievementDate,
		StartDate:       achievement.StartDate,
		EndDate:         achievement.EndDate,
		Duration:        achievement.Duration,
		FundedBy:        achievement.FundedBy,
		GrantAmount:     achievement.GrantAmount,
		FacultyID:       achievement.FacultyID,
		FacultyName:     "Unknown",
		DepartmentID:    achievement.DepartmentID,
		DepartmentName:  "Unknown",
		Status:          achievement.Status,
		RejectionReason: achievement.RejectionReason,
		ApprovedBy:      achievement.ApprovedBy,
		ApprovedAt:      achievement.ApprovedAt,
		ProofURL:        achievement.ProofURL,
		CreatedAt:       achievement.CreatedAt,
		UpdatedAt:       achievement.UpdatedAt,
	}
	if achievement.Faculty != nil {
		response.FacultyName = achievement.Faculty.Name
	}
	if achievement.Department != nil {
		response.DepartmentName = achievement.Department.Name
	}
	return response
}

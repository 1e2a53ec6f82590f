package models

import "time"

// Achievement status values. An edit by the owning faculty always moves the
// record back to pending so it gets re-reviewed.
const (
	AchievementStatusPending  = "pending"
	AchievementStatusApproved = "approved"
	AchievementStatusRejected = "rejected"
)

// Achievement categories form a fixed enum.
const (
	CategoryPublication   = "Publication"
	CategoryFDP           = "FDP"
	CategoryPatent        = "Patent"
	CategoryAward         = "Award"
	CategoryCertification = "Certification"
	CategorySeminar       = "Seminar"
	CategorySTTP          = "STTP"
	CategoryProject       = "Project"
	CategoryConference    = "Conference"
	CategoryOther         = "Other"
)

// Categories lists every accepted achievement category.
var Categories = []string{
	CategoryPublication,
	CategoryFDP,
	CategoryPatent,
	CategoryAward,
	CategoryCertification,
	CategorySeminar,
	CategorySTTP,
	CategoryProject,
	CategoryConference,
	CategoryOther,
}

// ValidCategory reports whether the category is part of the fixed enum.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Achievement represents a single academic accomplishment submitted by a
// faculty member. DepartmentID is copied from the owner at creation time and
// never changes on edit.
type Achievement struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"type:text;not null" json:"description"`
	Category        string      `gorm:"size:64;not null;index" json:"category"`
	SubCategory     string      `gorm:"size:128" json:"sub_category"`
	AchievementDate time.Time   `gorm:"not null;index" json:"achievement_date"`
	StartDate       *time.Time  `json:"start_date"`
	EndDate         *time.Time  `json:"end_date"`
	Duration        string      `gorm:"size:64" json:"duration"`
	FundedBy        string      `gorm:"size:255" json:"funded_by"`
	GrantAmount     *float64    `json:"grant_amount"`
	FacultyID       uint        `gorm:"not null;index" json:"faculty_id"`
	Faculty         *User       `json:"faculty,omitempty"`
	DepartmentID    uint        `gorm:"not null;index" json:"department_id"`
	Department      *Department `json:"department,omitempty"`
	Status          string      `gorm:"size:32;not null;default:pending;index" json:"status"`
	RejectionReason *string     `gorm:"type:text" json:"rejection_reason"`
	ApprovedBy      *uint       `json:"approved_by"`
	ApprovedAt      *time.Time  `json:"approved_at"`
	ProofURL        string      `gorm:"size:512" json:"proof_url"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsDecided reports whether the achievement has been explicitly approved or
// rejected at least once since its last edit.
func (a Achievement) IsDecided() bool {
	return a.Status == AchievementStatusApproved || a.Status == AchievementStatusRejected
}

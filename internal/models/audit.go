package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction constants represent the privileged actions that are logged.
const (
	AuditActionCreateUser         = "CREATE_USER"
	AuditActionUpdateUser         = "UPDATE_USER"
	AuditActionDeleteUser         = "DELETE_USER"
	AuditActionLogin              = "LOGIN"
	AuditActionLogout             = "LOGOUT"
	AuditActionApproveAchievement = "APPROVE_ACHIEVEMENT"
	AuditActionRejectAchievement  = "REJECT_ACHIEVEMENT"
	AuditActionSystemUpdate       = "SYSTEM_UPDATE"
)

// AuditLog is an append-only record of a privileged state change. Entries are
// never mutated or deleted after creation.
type AuditLog struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ActorID      uint              `gorm:"not null;index" json:"actor_id"`
	Actor        *User             `json:"actor,omitempty"`
	Action       string            `gorm:"size:64;not null;index" json:"action"`
	TargetUserID *uint             `json:"target_user_id"`
	Details      datatypes.JSONMap `gorm:"type:json" json:"details"`
	IPAddress    string            `gorm:"size:64" json:"ip_address"`
	UserAgent    string            `gorm:"size:255" json:"user_agent"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
}

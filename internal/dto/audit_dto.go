package dto

import (
	"time"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// AuditListRequest defines filters for listing audit entries.
type AuditListRequest struct {
	Page    int
	ActorID uint
	Action  string
}

// AuditEntryResponse serializes one audit trail entry.
type AuditEntryResponse struct {
	ID           uint                   `json:"id"`
	ActorID      uint                   `json:"actor_id"`
	ActorName    string                 `json:"actor_name,omitempty"`
	Action       string                 `json:"action"`
	TargetUserID *uint                  `json:"target_user_id,omitempty"`
	Details      map[string]interface{} `json:"details"`
	IPAddress    string                 `json:"ip_address,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// AuditListResponse wraps a paginated audit trail listing.
type AuditListResponse struct {
	Items      []AuditEntryResponse `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}

// NewAuditEntryResponse converts an audit model into a DTO.
func NewAuditEntryResponse(entry models.AuditLog) AuditEntryResponse {
	response := AuditEntryResponse{
		ID:           entry.ID,
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		TargetUserID: entry.TargetUserID,
		Details:      entry.Details,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		CreatedAt:    entry.CreatedAt,
	}
	if entry.Actor != nil {
		response.ActorName = entry.Actor.Name
	}
	return response
}

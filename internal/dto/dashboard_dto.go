package dto

import "time"

// DashboardResponse aggregates the admin landing page counters.
type DashboardResponse struct {
	UsersByRole          map[string]int64     `json:"users_by_role"`
	TotalUsers           int64                `json:"total_users"`
	TotalDepartments     int64                `json:"total_departments"`
	AchievementsByStatus map[string]int64     `json:"achievements_by_status"`
	RecentAudit          []AuditEntryResponse `json:"recent_audit"`
	GeneratedAt          time.Time            `json:"generated_at"`
	CacheHit             bool                 `json:"cache_hit,omitempty"`
}

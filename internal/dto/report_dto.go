package dto

import "time"

// ReportRequest defines the optional filters for a report. All combine with
// AND on top of the actor's role scope.
type ReportRequest struct {
	From         string
	To           string
	Category     string
	DepartmentID *uint
	FacultyID    *uint
}

// CategoryCounts is the fixed bucket breakdown of a report row set. Total
// always equals the number of rows; rows matching no bucket are counted only
// in Total.
type CategoryCounts struct {
	Publications  int `json:"publications"`
	Patents       int `json:"patents"`
	Awards        int `json:"awards"`
	FDPs          int `json:"fdps"`
	FDPsOrganised int `json:"fdps_organised"`
	FDPsAttended  int `json:"fdps_attended"`
	Workshops     int `json:"workshops"`
	Projects      int `json:"projects"`
	Total         int `json:"total"`
}

// ReportResponse carries the rows and their bucket counts.
type ReportResponse struct {
	Rows        []AchievementResponse `json:"rows"`
	Counts      CategoryCounts        `json:"counts"`
	GeneratedAt time.Time             `json:"generated_at"`
	CacheHit    bool                  `json:"cache_hit,omitempty"`
}

// PeriodBucket is one calendar slice of a period-based report.
type PeriodBucket struct {
	Label  string         `json:"label"`
	Year   int            `json:"year"`
	Month  int            `json:"month,omitempty"`
	Counts CategoryCounts `json:"counts"`
}

// PeriodReportResponse partitions a filtered row set by calendar period.
type PeriodReportResponse struct {
	Period  string         `json:"period"`
	Buckets []PeriodBucket `json:"buckets"`
	Counts  CategoryCounts `json:"counts"`
}

// DepartmentComparisonRow is one department's share of a comparative report.
type DepartmentComparisonRow struct {
	DepartmentID   uint           `json:"department_id"`
	DepartmentName string         `json:"department_name"`
	Counts         CategoryCounts `json:"counts"`
}

// DepartmentComparisonResponse ranks departments by total, descending, ties
// in first-seen order.
type DepartmentComparisonResponse struct {
	Departments []DepartmentComparisonRow `json:"departments"`
	Counts      CategoryCounts            `json:"counts"`
}

// FacultySection is one faculty member's slice of a bulk department export.
// The renderer starts each section on a new sheet.
type FacultySection struct {
	FacultyID   uint                  `json:"faculty_id"`
	FacultyName string                `json:"faculty_name"`
	Rows        []AchievementResponse `json:"rows"`
	Counts      CategoryCounts        `json:"counts"`
}

// BulkReportResponse is the ordered list of per-faculty sections for one
// department.
type BulkReportResponse struct {
	DepartmentID   uint             `json:"department_id"`
	DepartmentName string           `json:"department_name"`
	Sections       []FacultySection `json:"sections"`
}

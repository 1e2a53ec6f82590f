package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
)

func sampleRow(title string) dto.AchievementResponse {
	return dto.AchievementResponse{
		Title:           title,
		Category:        "Publication",
		FacultyName:     "Asha Rao",
		DepartmentName:  "Computer Engineering",
		AchievementDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:          "approved",
	}
}

func TestReportHeadersAndRows(t *testing.T) {
	document, err := Report(dto.ReportResponse{Rows: []dto.AchievementResponse{sampleRow("Paper one")}})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(document))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, ReportColumns, rows[0])
	require.Equal(t, []string{"Paper one", "Publication", "Asha Rao", "Computer Engineering", "2026-03-15", "approved"}, rows[1])
}

func TestBulkReportSheetPerFaculty(t *testing.T) {
	bulk := dto.BulkReportResponse{
		DepartmentID:   1,
		DepartmentName: "Computer Engineering",
		Sections: []dto.FacultySection{
			{FacultyID: 1, FacultyName: "Asha Rao", Rows: []dto.AchievementResponse{sampleRow("Paper one")}},
			{FacultyID: 2, FacultyName: "Ravi Nair", Rows: []dto.AchievementResponse{sampleRow("Paper two"), sampleRow("Paper three")}},
		},
	}

	document, err := BulkReport(bulk)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(document))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	require.Len(t, sheets, 2)
	require.Equal(t, "1 Asha Rao", sheets[0])
	require.Equal(t, "2 Ravi Nair", sheets[1])

	rows, err := file.GetRows(sheets[1])
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestBulkReportEmptyDepartment(t *testing.T) {
	document, err := BulkReport(dto.BulkReportResponse{DepartmentID: 1})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(document))
	require.NoError(t, err)
	defer file.Close()
	require.Equal(t, []string{"Empty"}, file.GetSheetList())
}

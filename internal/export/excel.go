// Package export renders report data into spreadsheet documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
)

// ReportColumns is the fixed column set of every exported sheet.
var ReportColumns = []string{"Title", "Category", "Faculty Name", "Department", "Date", "Status"}

const dateLayout = "2006-01-02"

// Report renders a flat row set into a single-sheet workbook.
func Report(report dto.ReportResponse) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Report"
	file.SetSheetName(file.GetSheetName(0), sheet)

	if err := writeSheet(file, sheet, report.Rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BulkReport renders a department bulk report with one sheet per faculty
// member, preserving section order.
func BulkReport(bulk dto.BulkReportResponse) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if len(bulk.Sections) == 0 {
		file.SetSheetName(file.GetSheetName(0), "Empty")
		var buf bytes.Buffer
		if err := file.Write(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	for i, section := range bulk.Sections {
		sheet := sheetName(section.FacultyName, i)
		if i == 0 {
			file.SetSheetName(file.GetSheetName(0), sheet)
		} else {
			if _, err := file.NewSheet(sheet); err != nil {
				return nil, err
			}
		}
		if err := writeSheet(file, sheet, section.Rows); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(file *excelize.File, sheet string, rows []dto.AchievementResponse) error {
	for col, header := range ReportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Title,
			row.Category,
			row.FacultyName,
			row.DepartmentName,
			row.AchievementDate.Format(dateLayout),
			row.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// sheetName keeps names unique and inside the 31-character sheet limit.
func sheetName(name string, index int) string {
	candidate := fmt.Sprintf("%d %s", index+1, name)
	if len(candidate) > 31 {
		candidate = candidate[:31]
	}
	return candidate
}

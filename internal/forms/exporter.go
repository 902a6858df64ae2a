package forms

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildSubmissionsWorkbook renders submissions into an xlsx workbook with
// the flattened application fields alongside the common columns.
func BuildSubmissionsWorkbook(subs []FormSubmission) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Submissions"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{
		"ID", "Form Type", "Name", "Email", "Phone",
		"Branch", "Year", "Domain of Interest", "Message",
		"Status", "Priority", "Submitted At",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, s := range subs {
		var extra map[string]string
		if len(s.FormData) > 0 {
			json.Unmarshal(s.FormData, &extra)
		}
		row := []interface{}{
			s.ID,
			string(s.FormType),
			s.Name,
			s.Email,
			s.Phone,
			extra["branch"],
			extra["year"],
			extra["domainOfInterest"],
			s.Message,
			string(s.Status),
			string(s.Priority),
			s.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

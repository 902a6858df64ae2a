package event

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildRegistrationsWorkbook renders an event's registration list as an XLSX
// workbook for the admin panel download.
func BuildRegistrationsWorkbook(e *Event) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Registrations"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []interface{}{"#", "Name", "Email", "Phone", "Registered At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, reg := range e.Registrations {
		row := []interface{}{
			i + 1,
			reg.Name,
			reg.Email,
			reg.Phone,
			reg.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	summaryRow := len(e.Registrations) + 3
	capacity := "unlimited"
	if e.MaxParticipants != nil {
		capacity = fmt.Sprintf("%d", *e.MaxParticipants)
	}
	summary := []interface{}{
		fmt.Sprintf("%s: %d registered, capacity %s", e.Title, len(e.Registrations), capacity),
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", summaryRow), &summary); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	return f, nil
}

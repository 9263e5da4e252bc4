package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const LedgerSheet = "Payments"

// LedgerRow is one payment joined with its student and course.
type LedgerRow struct {
	RegistrationNo  string     `gorm:"column:registration_no"`
	StudentName     string     `gorm:"column:student_name"`
	CourseName      string     `gorm:"column:course_name"`
	Month           string     `gorm:"column:month"`
	AmountDue       int64      `gorm:"column:amount_due"`
	AmountPaid      int64      `gorm:"column:amount_paid"`
	RemainingAmount int64      `gorm:"column:remaining_amount"`
	Status          string     `gorm:"column:status"`
	PaidOn          *time.Time `gorm:"column:paid_on"`
	Method          *string    `gorm:"column:method"`
	TransactionID   *string    `gorm:"column:transaction_id"`
}

var ledgerHeaders = []string{
	"Registration No", "Student", "Course", "Month",
	"Amount Due", "Amount Paid", "Remaining", "Status",
	"Paid On", "Method", "Transaction ID",
}

// BuildLedger writes rows to a single-sheet workbook with a totals line.
func BuildLedger(rows []LedgerRow) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(LedgerSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(LedgerSheet, cell, h); err != nil {
			return nil, err
		}
	}
	bold, styleErr := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if styleErr == nil {
		_ = f.SetRowStyle(LedgerSheet, 1, 1, bold)
	}

	var due, paid, rem int64
	for i, r := range rows {
		row := i + 2
		values := []any{
			r.RegistrationNo, r.StudentName, r.CourseName, r.Month,
			r.AmountDue, r.AmountPaid, r.RemainingAmount, r.Status,
			"", "", "",
		}
		if r.PaidOn != nil {
			values[8] = r.PaidOn.Format("2006-01-02")
		}
		if r.Method != nil {
			values[9] = *r.Method
		}
		if r.TransactionID != nil {
			values[10] = *r.TransactionID
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(LedgerSheet, cell, &values); err != nil {
			return nil, err
		}
		due += r.AmountDue
		paid += r.AmountPaid
		rem += r.RemainingAmount
	}

	totalRow := len(rows) + 2
	_ = f.SetCellValue(LedgerSheet, fmt.Sprintf("D%d", totalRow), "Total")
	_ = f.SetCellValue(LedgerSheet, fmt.Sprintf("E%d", totalRow), due)
	_ = f.SetCellValue(LedgerSheet, fmt.Sprintf("F%d", totalRow), paid)
	_ = f.SetCellValue(LedgerSheet, fmt.Sprintf("G%d", totalRow), rem)
	if styleErr == nil {
		_ = f.SetRowStyle(LedgerSheet, totalRow, totalRow, bold)
	}
	return f, nil
}

package stats

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	jobsSheet    = "Jobs"
	summarySheet = "Summary"
)

type XlsxRenderer struct{}

func NewXlsxRenderer() *XlsxRenderer {
	return &XlsxRenderer{}
}

func (r *XlsxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XlsxRenderer) FileExtension() string {
	return "xlsx"
}

// Render writes a workbook with the month's jobs on one sheet and subtotals, expenses and totals
// on another. Amount cells keep full values and are displayed with the owner's precision.
func (r *XlsxRenderer) Render(w io.Writer, summary MonthlySummary) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", jobsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: moneyFormat(summary.Preferences.Precision)})
	if err != nil {
		return err
	}

	jobRows := [][]any{{"Date", "Location", "Event", "Position", "Hours", "Wage", "Payout"}}
	for _, j := range summary.Jobs {
		jobRows = append(jobRows, []any{j.Date.String(), j.Location, j.Event, j.PositionName, j.Hours, j.Wage, j.Payout})
	}
	if err := writeRows(f, jobsSheet, jobRows); err != nil {
		return err
	}
	if len(summary.Jobs) > 0 {
		if err := f.SetCellStyle(jobsSheet, "F2", fmt.Sprintf("G%d", len(jobRows)), moneyStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(jobsSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(jobsSheet, "B", "D", 24); err != nil {
		return err
	}

	summaryRows := [][]any{{"Position", "Hours", "Wage", "Payout"}}
	for _, p := range summary.Positions {
		summaryRows = append(summaryRows, []any{p.Name, p.HoursWorked, p.Wage, p.Payout})
	}
	summaryRows = append(summaryRows, []any{}, []any{"Expense", "Date", "Amount"})
	for _, e := range summary.Expenses {
		summaryRows = append(summaryRows, []any{e.Name, e.Date.String(), e.Amount})
	}
	summaryRows = append(summaryRows,
		[]any{},
		[]any{"Total hours", summary.Totals.Hours},
		[]any{"Total payout", summary.Totals.Payout},
		[]any{"Total expenses", summary.Totals.Expenses},
		[]any{"Net", summary.Totals.Net},
		[]any{"Currency", summary.Preferences.Currency},
	)
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("could not write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func moneyFormat(precision int) *string {
	format := "#,##0"
	if precision > 0 {
		format += "." + strings.Repeat("0", precision)
	}
	return &format
}

package stats

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CsvRenderer struct{}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

func (r *CsvRenderer) ContentType() string {
	return "text/csv"
}

func (r *CsvRenderer) FileExtension() string {
	return "csv"
}

// Render writes the jobs, the per-position subtotals, the expenses and the totals as
// consecutive blocks separated by empty rows. Amounts are rounded to the owner's precision.
func (r *CsvRenderer) Render(w io.Writer, summary MonthlySummary) error {
	precision := int32(summary.Preferences.Precision)
	money := func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(precision)
	}
	hours := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	data := [][]string{{"Date", "Location", "Event", "Position", "Hours", "Wage", "Payout"}}
	for _, j := range summary.Jobs {
		data = append(data, []string{
			j.Date.String(), text(j.Location), text(j.Event), text(j.PositionName), hours(j.Hours), money(j.Wage), money(j.Payout),
		})
	}

	data = append(data, []string{}, []string{"Position", "Hours", "Wage", "Payout"})
	for _, p := range summary.Positions {
		data = append(data, []string{text(p.Name), hours(p.HoursWorked), money(p.Wage), money(p.Payout)})
	}

	data = append(data, []string{}, []string{"Expense", "Date", "Amount"})
	for _, e := range summary.Expenses {
		data = append(data, []string{text(e.Name), e.Date.String(), money(e.Amount)})
	}

	totals := summary.Totals
	data = append(data,
		[]string{},
		[]string{"Total hours", hours(totals.Hours)},
		[]string{"Total payout", money(totals.Payout)},
		[]string{"Total expenses", money(totals.Expenses)},
		[]string{"Net", money(totals.Net)},
		[]string{"Currency", summary.Preferences.Currency},
	)

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return err
	}
	return nil
}

// text keeps user input from being read as a formula by spreadsheet applications.
func text(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

package stats

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/expense"
	"github.com/stay-js/job-keeper/pkg/job"
	"github.com/stay-js/job-keeper/pkg/position"
	"github.com/stay-js/job-keeper/pkg/preferences"
)

// PositionSubtotal is the footer row of a position in a job listing.
type PositionSubtotal struct {
	PositionId  int64
	Name        string
	HoursWorked float64
	Wage        float64
	Payout      float64
}

type Totals struct {
	Hours    float64
	Payout   float64
	Expenses float64
	// Net is the payout left after the period's expenses.
	Net float64
}

// FormattedTotals are the totals written with the owner's preferences.
type FormattedTotals struct {
	Hours    string
	Payout   string
	Expenses string
	Net      string
}

type MonthlySummary struct {
	Month       Month
	Dates       daterange.Range
	Jobs        []job.JobDetails
	Expenses    []expense.Expense
	Positions   []PositionSubtotal
	Totals      Totals
	Formatted   FormattedTotals
	Preferences preferences.Resolved
}

type RangeStats struct {
	Dates     *daterange.Range
	Positions []position.PositionStats
	Hours     float64
	Payout    float64
}

// SummarizeJobs groups jobs by position id. Two positions sharing a name stay separate rows.
// Rows are ordered by name, then id.
func SummarizeJobs(jobs []job.JobDetails) []PositionSubtotal {
	hours := make(map[int64]decimal.Decimal)
	rows := make(map[int64]*PositionSubtotal)
	for _, j := range jobs {
		row, ok := rows[j.PositionId]
		if !ok {
			row = &PositionSubtotal{PositionId: j.PositionId, Name: j.PositionName, Wage: j.Wage}
			rows[j.PositionId] = row
		}
		hours[j.PositionId] = hours[j.PositionId].Add(decimal.NewFromFloat(j.Hours))
	}

	subtotals := make([]PositionSubtotal, 0, len(rows))
	for id, row := range rows {
		h := hours[id]
		row.HoursWorked = h.InexactFloat64()
		row.Payout = h.Mul(decimal.NewFromFloat(row.Wage)).InexactFloat64()
		subtotals = append(subtotals, *row)
	}
	sort.Slice(subtotals, func(i, j int) bool {
		if subtotals[i].Name != subtotals[j].Name {
			return subtotals[i].Name < subtotals[j].Name
		}
		return subtotals[i].PositionId < subtotals[j].PositionId
	})
	return subtotals
}

// ComputeTotals sums the payout of jobs and subtracts the expenses of the same period.
func ComputeTotals(jobs []job.JobDetails, expenses []expense.Expense) Totals {
	var hours, payout, spent decimal.Decimal
	for _, j := range jobs {
		hours = hours.Add(decimal.NewFromFloat(j.Hours))
		payout = payout.Add(decimal.NewFromFloat(j.Payout))
	}
	for _, e := range expenses {
		spent = spent.Add(decimal.NewFromFloat(e.Amount))
	}
	return Totals{
		Hours:    hours.InexactFloat64(),
		Payout:   payout.InexactFloat64(),
		Expenses: spent.InexactFloat64(),
		Net:      payout.Sub(spent).InexactFloat64(),
	}
}

func formatTotals(t Totals, prefs preferences.UserPreferences) FormattedTotals {
	f := prefs.Formatters()
	return FormattedTotals{
		Hours:    f.Hours(t.Hours),
		Payout:   f.Currency(t.Payout),
		Expenses: f.Currency(t.Expenses),
		Net:      f.Currency(t.Net),
	}
}

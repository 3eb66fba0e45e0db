package expense

import "github.com/golang-sql/civil"

// Expense offsets the payout of the period it is dated in.
type Expense struct {
	Id     int64
	Name   string
	Amount float64
	Date   civil.Date
}

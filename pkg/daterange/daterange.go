// Package daterange models the inclusive calendar date bounds used to narrow jobs,
// expenses and statistics. A nil *Range means the full history.
package daterange

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-sql/civil"
)

var ErrInvalidRange = errors.New("invalid date range")

type Range struct {
	From civil.Date
	To   civil.Date
}

// Parse builds a range from two YYYY-MM-DD strings. When either bound is empty the range is
// unbounded and nil is returned without error.
func Parse(from, to string) (*Range, error) {
	if from == "" || to == "" {
		return nil, nil
	}
	fromDate, err := civil.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be in YYYY-MM-DD format", ErrInvalidRange)
	}
	toDate, err := civil.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("%w: to must be in YYYY-MM-DD format", ErrInvalidRange)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidRange)
	}
	return &Range{From: fromDate, To: toDate}, nil
}

// Contains reports whether d falls within the range, bounds included. A nil range contains every date.
func (r *Range) Contains(d civil.Date) bool {
	if r == nil {
		return true
	}
	return !d.Before(r.From) && !d.After(r.To)
}

// Bounds returns the range as UTC midnights suitable for DATE query parameters.
func (r *Range) Bounds() (time.Time, time.Time) {
	return r.From.In(time.UTC), r.To.In(time.UTC)
}

func (r *Range) String() string {
	if r == nil {
		return "all time"
	}
	return r.From.String() + ".." + r.To.String()
}

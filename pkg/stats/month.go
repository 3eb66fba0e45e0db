package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/utils"
	"github.com/stay-js/job-keeper/pkg/daterange"
)

const (
	MinYear = 1
	MaxYear = 9999
)

// Month is the state of the month navigator. Month counts from 0 (January) to 11 (December).
type Month struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// CurrentMonth is the month the clock is in, in UTC.
func CurrentMonth(clock utils.Clock) Month {
	now := clock.Now().UTC()
	return Month{Month: int(now.Month()) - 1, Year: now.Year()}
}

// ParseMonth reads the navigator state from query values. Absent values default to current.
func ParseMonth(year, month string, current Month) (Month, error) {
	m := current
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y < MinYear || y > MaxYear {
			return Month{}, fmt.Errorf("year must be a number between 1 and 9999")
		}
		m.Year = y
	}
	if month != "" {
		mo, err := strconv.Atoi(month)
		if err != nil || mo < 0 || mo > 11 {
			return Month{}, fmt.Errorf("month must be a number between 0 and 11")
		}
		m.Month = mo
	}
	return m, nil
}

// Next stays on December of MaxYear.
func (m Month) Next() Month {
	if m.Month == 11 {
		if m.Year >= MaxYear {
			return m
		}
		return Month{Month: 0, Year: m.Year + 1}
	}
	return Month{Month: m.Month + 1, Year: m.Year}
}

// Prev stays on January of MinYear.
func (m Month) Prev() Month {
	if m.Month == 0 {
		if m.Year <= MinYear {
			return m
		}
		return Month{Month: 11, Year: m.Year - 1}
	}
	return Month{Month: m.Month - 1, Year: m.Year}
}

// Range covers the first to the last calendar day of the month.
func (m Month) Range() daterange.Range {
	first := time.Date(m.Year, time.Month(m.Month+1), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return daterange.Range{From: civil.DateOf(first), To: civil.DateOf(last)}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month+1)
}

package job

import (
	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/pkg/daterange"
)

// Job is a single shift worked in a position. Event is optional.
type Job struct {
	Id         int64
	Date       civil.Date
	Location   string
	Event      string
	Hours      float64
	PositionId int64
}

// JobDetails is a job joined with its position. Payout is derived from the position's current
// wage on every read and never stored.
type JobDetails struct {
	Job
	PositionName string
	Wage         float64
	Payout       float64
}

// Filter narrows a job listing. Query is matched fuzzily against location, event and position name.
type Filter struct {
	Dates *daterange.Range
	Query string
}

package position

// Position is a role the owner works in, paid by the hour.
type Position struct {
	Id   int64
	Name string
	Wage float64
}

// PositionStats is a position with the hours recorded against it and the resulting payout.
// InUse reports whether any job references the position, regardless of the date range the
// statistics were computed for.
type PositionStats struct {
	Position
	HoursWorked float64
	Payout      float64
	InUse       bool
}

// Deletable reports whether the store would accept deleting the position.
func (s PositionStats) Deletable() bool {
	return !s.InUse
}

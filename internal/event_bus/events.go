package event_bus

const (
	PositionWageChangedType EventType = "position.wage_changed"
	PreferencesUpdatedType  EventType = "preferences.updated"
)

// PositionWageChanged is published after a position's hourly wage was replaced. Payouts are
// derived from the current wage, so every recorded job of the position is affected.
type PositionWageChanged struct {
	UserId     string
	PositionId int64
	OldWage    float64
	NewWage    float64
}

type PreferencesUpdated struct {
	UserId string
}

package job

import (
	"github.com/stay-js/job-keeper/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// SubscribeWageChanges logs how many recorded jobs get a new payout when a position's wage changes.
func SubscribeWageChanges(bus *event_bus.EventBus, repo Repository) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.PositionWageChangedType,
		func(e event_bus.EventT[event_bus.PositionWageChanged]) error {
			count, err := repo.CountJobsForPosition(e.Context(), e.Data.UserId, e.Data.PositionId)
			if err != nil {
				return err
			}
			log.Infof("wage of position %d changed from %.2f to %.2f, payout of %d job(s) recomputed",
				e.Data.PositionId, e.Data.OldWage, e.Data.NewWage, count)
			return nil
		})
}

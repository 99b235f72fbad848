package tracker

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
)

// Passengers are told they have arrived once the bus is within this distance
// of their drop-off point.
const arrivalThresholdKm = 0.5

// Minimum gap between en-route updates for the same entry.
const periodicInterval = 15 * time.Minute

// DispatchFunc hands a decided notification off for delivery. Dispatch is
// best-effort; a failure must not abort evaluation of the remaining entries.
type DispatchFunc func(btdf.NotificationDelivery) error

// EvaluateNotifications runs the arrival and periodic rules over the
// journey's notification entries against its current location. Entries are
// mutated in place; one delivery is dispatched per entry that fires a rule.
// Returns the number of deliveries dispatched.
//
// Evaluation only happens when a location update arrives - there is no
// background timer, so a journey that stops reporting also stops notifying.
func EvaluateNotifications(journey *btdf.Journey, now time.Time, dispatch DispatchFunc) int {
	dispatched := 0

	for _, entry := range journey.Notifications {
		if entry.Reached {
			continue
		}

		distanceKm := journey.CurrentLocation.Distance(&entry.DropoffCoordinates)

		if distanceKm < arrivalThresholdKm {
			// Arrival wins over the periodic rule and fires exactly once;
			// the entry is skipped permanently from here on.
			entry.Reached = true
			entry.LastNotified = now

			err := dispatch(btdf.NotificationDelivery{
				Type:            btdf.NotificationDeliveryArrived,
				PassengerID:     entry.PassengerID.Hex(),
				BusID:           journey.BusID,
				DropoffLocation: entry.DropoffLocation,
				Location:        journey.CurrentLocation,
				DistanceKm:      distanceKm,
				OccurredAt:      now,
			})
			if err != nil {
				log.Error().Err(err).Str("busid", journey.BusID).Msg("Failed to dispatch arrival notification")
			} else {
				dispatched += 1
			}

			continue
		}

		if now.Sub(entry.LastNotified) >= periodicInterval {
			err := dispatch(btdf.NotificationDelivery{
				Type:            btdf.NotificationDeliveryEnRoute,
				PassengerID:     entry.PassengerID.Hex(),
				BusID:           journey.BusID,
				DropoffLocation: entry.DropoffLocation,
				Location:        journey.CurrentLocation,
				DistanceKm:      distanceKm,
				ETAMinutes:      btdf.EstimateETA(distanceKm),
				OccurredAt:      now,
			})
			if err != nil {
				log.Error().Err(err).Str("busid", journey.BusID).Msg("Failed to dispatch en-route notification")
			} else {
				dispatched += 1
			}

			// Delivery failure does not roll the timestamp back - the system
			// favours notify-once over retry storms.
			entry.LastNotified = now
		}
	}

	return dispatched
}

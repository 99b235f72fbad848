package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yathra/yathra/pkg/btdf"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func collectingDispatch(deliveries *[]btdf.NotificationDelivery) DispatchFunc {
	return func(delivery btdf.NotificationDelivery) error {
		*deliveries = append(*deliveries, delivery)
		return nil
	}
}

func testJourney(location btdf.Location, entries ...*btdf.NotificationEntry) *btdf.Journey {
	return &btdf.Journey{
		BusID:           "NB-1234",
		Status:          btdf.JourneyStatusActive,
		Direction:       btdf.JourneyDirectionForward,
		CurrentLocation: location,
		Notifications:   entries,
	}
}

func TestEvaluateArrival(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	// About 0.33 km south of the bus
	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Kadawatha",
		DropoffCoordinates: btdf.Location{Latitude: 7.0000, Longitude: 79.9500},
		LastNotified:       now.Add(-2 * time.Minute),
	}

	journey := testJourney(btdf.Location{Latitude: 7.0030, Longitude: 79.9500}, entry)

	var deliveries []btdf.NotificationDelivery
	dispatched := EvaluateNotifications(journey, now, collectingDispatch(&deliveries))

	assert.Equal(t, 1, dispatched)
	require.Len(t, deliveries, 1)

	assert.Equal(t, btdf.NotificationDeliveryArrived, deliveries[0].Type)
	assert.Equal(t, "Kadawatha", deliveries[0].DropoffLocation)
	assert.Equal(t, "NB-1234", deliveries[0].BusID)
	assert.Less(t, deliveries[0].DistanceKm, 0.5)

	assert.True(t, entry.Reached)
	assert.Equal(t, now, entry.LastNotified)
}

func TestEvaluateArrivalFiresOnce(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Kadawatha",
		DropoffCoordinates: btdf.Location{Latitude: 7.0000, Longitude: 79.9500},
	}

	journey := testJourney(btdf.Location{Latitude: 7.0030, Longitude: 79.9500}, entry)

	var deliveries []btdf.NotificationDelivery
	EvaluateNotifications(journey, now, collectingDispatch(&deliveries))
	require.Len(t, deliveries, 1)

	// Bus keeps reporting near the stop, and later drives away again -
	// neither should produce anything further for this entry
	EvaluateNotifications(journey, now.Add(time.Minute), collectingDispatch(&deliveries))

	journey.CurrentLocation = btdf.Location{Latitude: 7.2000, Longitude: 79.9500}
	EvaluateNotifications(journey, now.Add(time.Hour), collectingDispatch(&deliveries))

	assert.Len(t, deliveries, 1)
}

func TestEvaluatePeriodicUpdate(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	// About 10 km away
	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Nittambuwa",
		DropoffCoordinates: btdf.Location{Latitude: 7.0900, Longitude: 79.9500},
		LastNotified:       now.Add(-20 * time.Minute),
	}

	journey := testJourney(btdf.Location{Latitude: 7.0000, Longitude: 79.9500}, entry)

	var deliveries []btdf.NotificationDelivery
	dispatched := EvaluateNotifications(journey, now, collectingDispatch(&deliveries))

	assert.Equal(t, 1, dispatched)
	require.Len(t, deliveries, 1)

	assert.Equal(t, btdf.NotificationDeliveryEnRoute, deliveries[0].Type)
	assert.InDelta(t, 10.0, deliveries[0].DistanceKm, 0.1)
	assert.Equal(t, 20, deliveries[0].ETAMinutes)

	assert.False(t, entry.Reached)
	assert.Equal(t, now, entry.LastNotified)
}

func TestEvaluatePeriodicTooSoon(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	lastNotified := now.Add(-5 * time.Minute)

	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Nittambuwa",
		DropoffCoordinates: btdf.Location{Latitude: 7.0900, Longitude: 79.9500},
		LastNotified:       lastNotified,
	}

	journey := testJourney(btdf.Location{Latitude: 7.0000, Longitude: 79.9500}, entry)

	var deliveries []btdf.NotificationDelivery
	dispatched := EvaluateNotifications(journey, now, collectingDispatch(&deliveries))

	assert.Equal(t, 0, dispatched)
	assert.Empty(t, deliveries)
	assert.Equal(t, lastNotified, entry.LastNotified)
}

func TestEvaluatePeriodicExactBoundary(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Nittambuwa",
		DropoffCoordinates: btdf.Location{Latitude: 7.0900, Longitude: 79.9500},
		LastNotified:       now.Add(-15 * time.Minute),
	}

	journey := testJourney(btdf.Location{Latitude: 7.0000, Longitude: 79.9500}, entry)

	var deliveries []btdf.NotificationDelivery
	EvaluateNotifications(journey, now, collectingDispatch(&deliveries))

	assert.Len(t, deliveries, 1)
}

func TestEvaluateArrivalWinsOverPeriodic(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	// Close enough to arrive, and also overdue for a periodic update
	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Kadawatha",
		DropoffCoordinates: btdf.Location{Latitude: 7.0000, Longitude: 79.9500},
		LastNotified:       now.Add(-time.Hour),
	}

	journey := testJourney(btdf.Location{Latitude: 7.0030, Longitude: 79.9500}, entry)

	var deliveries []btdf.NotificationDelivery
	EvaluateNotifications(journey, now, collectingDispatch(&deliveries))

	require.Len(t, deliveries, 1)
	assert.Equal(t, btdf.NotificationDeliveryArrived, deliveries[0].Type)
}

func TestEvaluateDispatchFailureIsolated(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	failing := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Nittambuwa",
		DropoffCoordinates: btdf.Location{Latitude: 7.0900, Longitude: 79.9500},
		LastNotified:       now.Add(-20 * time.Minute),
	}
	succeeding := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Warakapola",
		DropoffCoordinates: btdf.Location{Latitude: 7.2000, Longitude: 80.1000},
		LastNotified:       now.Add(-20 * time.Minute),
	}

	journey := testJourney(btdf.Location{Latitude: 7.0000, Longitude: 79.9500}, failing, succeeding)

	var deliveries []btdf.NotificationDelivery
	calls := 0
	dispatched := EvaluateNotifications(journey, now, func(delivery btdf.NotificationDelivery) error {
		calls += 1
		if calls == 1 {
			return errors.New("queue unavailable")
		}
		deliveries = append(deliveries, delivery)
		return nil
	})

	assert.Equal(t, 1, dispatched)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "Warakapola", deliveries[0].DropoffLocation)

	// Failed dispatch still advances the timestamp rather than retrying
	// on every location update
	assert.Equal(t, now, failing.LastNotified)
}

func TestEvaluateMultipleEntries(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	arriving := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Kadawatha",
		DropoffCoordinates: btdf.Location{Latitude: 7.0030, Longitude: 79.9500},
		LastNotified:       now.Add(-2 * time.Minute),
	}
	overdue := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Nittambuwa",
		DropoffCoordinates: btdf.Location{Latitude: 7.0900, Longitude: 79.9500},
		LastNotified:       now.Add(-16 * time.Minute),
	}
	recent := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Warakapola",
		DropoffCoordinates: btdf.Location{Latitude: 7.2000, Longitude: 80.1000},
		LastNotified:       now.Add(-time.Minute),
	}
	reached := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Peliyagoda",
		DropoffCoordinates: btdf.Location{Latitude: 7.0030, Longitude: 79.9500},
		Reached:            true,
	}

	journey := testJourney(btdf.Location{Latitude: 7.0000, Longitude: 79.9500}, arriving, overdue, recent, reached)

	var deliveries []btdf.NotificationDelivery
	dispatched := EvaluateNotifications(journey, now, collectingDispatch(&deliveries))

	assert.Equal(t, 2, dispatched)
	require.Len(t, deliveries, 2)

	assert.Equal(t, btdf.NotificationDeliveryArrived, deliveries[0].Type)
	assert.Equal(t, "Kadawatha", deliveries[0].DropoffLocation)
	assert.Equal(t, btdf.NotificationDeliveryEnRoute, deliveries[1].Type)
	assert.Equal(t, "Nittambuwa", deliveries[1].DropoffLocation)
}

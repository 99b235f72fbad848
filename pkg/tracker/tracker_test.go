package tracker

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yathra/yathra/pkg/btdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stubStore(t *testing.T) {
	t.Helper()

	origResolve := resolveBus
	origFind := findJourney
	origPersist := persistJourney
	origComplete := completeJourneys
	origPublish := publishDelivery

	t.Cleanup(func() {
		resolveBus = origResolve
		findJourney = origFind
		persistJourney = origPersist
		completeJourneys = origComplete
		publishDelivery = origPublish
	})

	resolveBus = func(ctx context.Context, searchTerm string) string {
		return searchTerm
	}
}

func TestUpdateLocationNoActiveJourney(t *testing.T) {
	stubStore(t)

	findJourney = func(ctx context.Context, busID string) *btdf.Journey {
		return nil
	}

	persisted := 0
	persistJourney = func(ctx context.Context, journey *btdf.Journey) error {
		persisted += 1
		return nil
	}

	published := 0
	publishDelivery = func(delivery btdf.NotificationDelivery) error {
		published += 1
		return nil
	}

	// Repeated updates for an unstarted bus keep failing the same way and
	// never touch the store or the queue
	for i := 0; i < 2; i++ {
		journey, err := UpdateLocation(context.Background(), "NB-1234", 7.0, 79.95)
		assert.Nil(t, journey)
		assert.ErrorIs(t, err, ErrJourneyNotStarted)
	}

	assert.Zero(t, persisted)
	assert.Zero(t, published)
}

func TestUpdateLocationEvaluatesAndPersists(t *testing.T) {
	stubStore(t)

	entry := &btdf.NotificationEntry{
		PassengerID:        primitive.NewObjectID(),
		DropoffLocation:    "Nittambuwa",
		DropoffCoordinates: btdf.Location{Latitude: 7.0900, Longitude: 79.9500},
	}

	findJourney = func(ctx context.Context, busID string) *btdf.Journey {
		return &btdf.Journey{
			BusID:         busID,
			Status:        btdf.JourneyStatusActive,
			Notifications: []*btdf.NotificationEntry{entry},
		}
	}

	var persisted *btdf.Journey
	persistJourney = func(ctx context.Context, journey *btdf.Journey) error {
		persisted = journey
		return nil
	}

	var deliveries []btdf.NotificationDelivery
	publishDelivery = func(delivery btdf.NotificationDelivery) error {
		deliveries = append(deliveries, delivery)
		return nil
	}

	journey, err := UpdateLocation(context.Background(), "NB-1234", 7.0, 79.95)
	require.NoError(t, err)
	require.NotNil(t, journey)

	assert.Equal(t, btdf.Location{Latitude: 7.0, Longitude: 79.95}, journey.CurrentLocation)
	assert.Equal(t, journey.LastUpdated, entry.LastNotified)

	require.Len(t, deliveries, 1)
	assert.Equal(t, btdf.NotificationDeliveryEnRoute, deliveries[0].Type)

	// The persisted snapshot carries the mutated notification entries
	require.NotNil(t, persisted)
	assert.Same(t, journey, persisted)
}

func TestStopJourneyCompletesActive(t *testing.T) {
	stubStore(t)

	resolveBus = func(ctx context.Context, searchTerm string) string {
		return "NB-1234"
	}

	var completedBus string
	completeJourneys = func(ctx context.Context, busID string, now time.Time) (int64, error) {
		completedBus = busID
		return 2, nil
	}

	count, err := StopJourney(context.Background(), "nb-1234")
	require.NoError(t, err)

	assert.Equal(t, int64(2), count)
	assert.Equal(t, "NB-1234", completedBus)
}

func TestJourneyCompletion(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 45, 0, 0, time.UTC)

	set := journeyCompletion(now)["$set"].(bson.M)

	assert.Equal(t, btdf.JourneyStatusCompleted, set["status"])
	assert.Equal(t, now, set["endtime"])
	assert.Equal(t, now, set["lastupdated"])
}

func TestCoordinatesValid(t *testing.T) {
	assert.True(t, coordinatesValid(6.9344, 79.8428))
	assert.True(t, coordinatesValid(0, 0))
	assert.True(t, coordinatesValid(-89.9, 179.9))

	assert.False(t, coordinatesValid(math.NaN(), 79.8428))
	assert.False(t, coordinatesValid(6.9344, math.NaN()))
	assert.False(t, coordinatesValid(math.Inf(1), 79.8428))
	assert.False(t, coordinatesValid(6.9344, math.Inf(-1)))
}

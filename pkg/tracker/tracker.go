package tracker

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"github.com/yathra/yathra/pkg/notify"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var journeyLocks keyedMutex

// Store and queue indirections, swapped out by tests.
var (
	resolveBus       = ResolveBusID
	findJourney      = findActiveJourney
	persistJourney   = persistEvaluatedJourney
	completeJourneys = completeActiveJourneys

	publishDelivery DispatchFunc = notify.PublishDelivery
)

// UpdateLocation ingests a coordinate update from a conductor's device,
// evaluates pending passenger notifications against the new position and
// persists the journey in a single update. Returns the updated snapshot.
func UpdateLocation(ctx context.Context, searchTerm string, latitude float64, longitude float64) (*btdf.Journey, error) {
	if !coordinatesValid(latitude, longitude) {
		return nil, ErrInvalidCoordinates
	}

	busID := resolveBus(ctx, searchTerm)

	unlock := journeyLocks.Lock(busID)
	defer unlock()

	journey := findJourney(ctx, busID)
	if journey == nil {
		return nil, ErrJourneyNotStarted
	}

	now := time.Now()
	journey.CurrentLocation = btdf.Location{Latitude: latitude, Longitude: longitude}
	journey.LastUpdated = now

	dispatched := EvaluateNotifications(journey, now, publishDelivery)
	if dispatched > 0 {
		log.Info().Str("busid", journey.BusID).Int("dispatched", dispatched).Msg("Dispatched passenger notifications")
	}

	if err := persistJourney(ctx, journey); err != nil {
		// The notification entries were already evaluated and possibly
		// delivered, so record what would have been lost.
		log.Error().Err(err).
			Str("busid", journey.BusID).
			Int("entries", len(journey.Notifications)).
			Msg("Failed to persist evaluated journey")
		return nil, err
	}

	return journey, nil
}

func persistEvaluatedJourney(ctx context.Context, journey *btdf.Journey) error {
	journeysCollection := database.GetCollection("journeys")
	_, err := journeysCollection.UpdateOne(ctx, bson.M{"_id": journey.ID}, bson.M{"$set": bson.M{
		"currentlocation": journey.CurrentLocation,
		"lastupdated":     journey.LastUpdated,
		"notifications":   journey.Notifications,
	}})

	return err
}

// StartJourney begins a new active journey for a bus, replacing any previous
// active journey, and builds the journey's notification entries from same-day
// tickets whose drop-off matches a registered route stop.
func StartJourney(ctx context.Context, searchTerm string, latitude float64, longitude float64, direction btdf.JourneyDirection) (*btdf.Journey, error) {
	if !coordinatesValid(latitude, longitude) {
		return nil, ErrInvalidCoordinates
	}

	if direction != btdf.JourneyDirectionReturn {
		direction = btdf.JourneyDirectionForward
	}

	busID := resolveBus(ctx, searchTerm)

	unlock := journeyLocks.Lock(busID)
	defer unlock()

	journeysCollection := database.GetCollection("journeys")

	// At most one active journey per bus - stale active ones get replaced
	// here; completed ones stay behind as history.
	_, err := journeysCollection.DeleteMany(ctx, bson.M{
		"busid":  caseInsensitiveMatch(busID),
		"status": btdf.JourneyStatusActive,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	journey := &btdf.Journey{
		BusID:           busID,
		Status:          btdf.JourneyStatusActive,
		Direction:       direction,
		CurrentLocation: btdf.Location{Latitude: latitude, Longitude: longitude},
		LastUpdated:     now,
		StartTime:       now,
		Notifications:   buildNotificationEntries(ctx, busID, now),
	}

	result, err := journeysCollection.InsertOne(ctx, journey)
	if err != nil {
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		journey.ID = insertedID
	}

	log.Info().
		Str("busid", busID).
		Str("direction", string(direction)).
		Int("notifications", len(journey.Notifications)).
		Msg("Journey started")

	return journey, nil
}

// StopJourney marks the bus's active journeys as completed, keeping them as
// history, and reports how many were closed.
func StopJourney(ctx context.Context, searchTerm string) (int64, error) {
	busID := resolveBus(ctx, searchTerm)

	unlock := journeyLocks.Lock(busID)
	defer unlock()

	return completeJourneys(ctx, busID, time.Now())
}

func completeActiveJourneys(ctx context.Context, busID string, now time.Time) (int64, error) {
	journeysCollection := database.GetCollection("journeys")
	result, err := journeysCollection.UpdateMany(ctx, bson.M{
		"busid":  caseInsensitiveMatch(busID),
		"status": btdf.JourneyStatusActive,
	}, journeyCompletion(now))
	if err != nil {
		return 0, err
	}

	return result.ModifiedCount, nil
}

func journeyCompletion(now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"status":      btdf.JourneyStatusCompleted,
		"endtime":     now,
		"lastupdated": now,
	}}
}

// FindActiveJourney resolves the search term and returns the bus's active
// journey, or nil when there is none.
func FindActiveJourney(ctx context.Context, searchTerm string) *btdf.Journey {
	return findJourney(ctx, resolveBus(ctx, searchTerm))
}

func findActiveJourney(ctx context.Context, busID string) *btdf.Journey {
	journeysCollection := database.GetCollection("journeys")

	opts := options.FindOne().SetSort(bson.D{{Key: "lastupdated", Value: -1}})

	var journey *btdf.Journey
	journeysCollection.FindOne(ctx, bson.M{
		"busid":  caseInsensitiveMatch(busID),
		"status": btdf.JourneyStatusActive,
	}, opts).Decode(&journey)

	return journey
}

// buildNotificationEntries matches the bus's same-day tickets against the
// registered route stops. Tickets whose drop-off name is not a known stop
// produce no entry - there is nothing to measure distance against.
func buildNotificationEntries(ctx context.Context, busID string, now time.Time) []*btdf.NotificationEntry {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	ticketsCollection := database.GetCollection("tickets")
	routeStopsCollection := database.GetCollection("route_stops")

	cursor, err := ticketsCollection.Find(ctx, bson.M{
		"busid": caseInsensitiveMatch(busID),
		"traveldate": bson.M{
			"$gte": startOfDay,
			"$lt":  endOfDay,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("busid", busID).Msg("Failed to query same-day tickets")
		return nil
	}

	var entries []*btdf.NotificationEntry

	for cursor.Next(ctx) {
		var ticket *btdf.Ticket
		if err := cursor.Decode(&ticket); err != nil {
			log.Error().Err(err).Msg("Failed to decode Ticket")
			continue
		}

		var routeStop *btdf.RouteStop
		routeStopsCollection.FindOne(ctx, bson.M{"name": caseInsensitiveMatch(ticket.Dropoff)}).Decode(&routeStop)

		if routeStop == nil {
			log.Debug().Str("dropoff", ticket.Dropoff).Str("busid", busID).Msg("Ticket drop-off is not a registered route stop")
			continue
		}

		entries = append(entries, &btdf.NotificationEntry{
			PassengerID:        ticket.PassengerID,
			DropoffLocation:    routeStop.Name,
			DropoffCoordinates: routeStop.Location,
		})
	}

	return entries
}

func coordinatesValid(latitude float64, longitude float64) bool {
	for _, value := range []float64{latitude, longitude} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}

	return true
}

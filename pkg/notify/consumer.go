package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/cenkalti/backoff/v4"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const deliveryConcurrency = 4
const maxSendElapsedTime = 30 * time.Second

type NotificationBatchConsumer struct {
	Mailer *Mailer
}

func NewNotificationBatchConsumer(mailer *Mailer) *NotificationBatchConsumer {
	return &NotificationBatchConsumer{Mailer: mailer}
}

func (c *NotificationBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	sendPool := pool.New().WithMaxGoroutines(deliveryConcurrency)
	for _, payload := range payloads {
		sendPool.Go(func() {
			c.deliver(payload)
		})
	}
	sendPool.Wait()

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume notification delivery")
		}
	}
}

func (c *NotificationBatchConsumer) deliver(payload string) {
	var delivery *btdf.NotificationDelivery
	if err := json.Unmarshal([]byte(payload), &delivery); err != nil {
		log.Error().Err(err).Msg("Failed to decode notification delivery")
		return
	}

	log.Debug().Msg(pretty.Sprint(delivery))

	passenger := findPassenger(delivery.PassengerID)
	if passenger == nil || passenger.Email == "" {
		log.Warn().Str("passengerid", delivery.PassengerID).Msg("No email address for passenger, dropping notification")
		recordDeliveryEvent(delivery, false, "NO_PASSENGER_EMAIL")
		return
	}

	var subject, text, html string

	switch delivery.Type {
	case btdf.NotificationDeliveryArrived:
		subject, text, html = renderArrived(delivery.DropoffLocation)
	case btdf.NotificationDeliveryEnRoute:
		subject, text, html = renderEnRoute(c.busNumber(delivery.BusID), delivery.DropoffLocation, delivery.Location, delivery.DistanceKm, delivery.ETAMinutes)
	default:
		log.Error().Str("type", string(delivery.Type)).Msg("Unknown notification delivery type")
		return
	}

	success := c.send(passenger.Email, subject, text, html)
	if !success {
		log.Warn().
			Str("passengerid", delivery.PassengerID).
			Str("type", string(delivery.Type)).
			Msg("Notification delivery failed, not retrying further")
	}

	recordDeliveryEvent(delivery, success, "")
}

// send retries transient SMTP failures with exponential backoff, bounded so
// a dead gateway cannot stall the consumer batch indefinitely.
func (c *NotificationBatchConsumer) send(to string, subject string, text string, html string) bool {
	if !c.Mailer.Configured() {
		return c.Mailer.Send(to, subject, text, html)
	}

	operation := func() error {
		if c.Mailer.Send(to, subject, text, html) {
			return nil
		}

		return errors.New("smtp delivery failed")
	}

	sendBackoff := backoff.NewExponentialBackOff()
	sendBackoff.MaxElapsedTime = maxSendElapsedTime

	if err := backoff.Retry(operation, sendBackoff); err != nil {
		return false
	}

	return true
}

func (c *NotificationBatchConsumer) busNumber(busID string) string {
	busesCollection := database.GetCollection("buses")

	var bus *btdf.Bus
	busesCollection.FindOne(context.Background(), bson.M{"busid": busID}).Decode(&bus)

	if bus == nil || bus.BusNumber == "" {
		return busID
	}

	return bus.BusNumber
}

func findPassenger(passengerID string) *btdf.Passenger {
	objectID, err := primitive.ObjectIDFromHex(passengerID)
	if err != nil {
		log.Error().Err(err).Str("passengerid", passengerID).Msg("Malformed passenger reference")
		return nil
	}

	passengersCollection := database.GetCollection("passengers")

	var passenger *btdf.Passenger
	passengersCollection.FindOne(context.Background(), bson.M{"_id": objectID}).Decode(&passenger)

	return passenger
}

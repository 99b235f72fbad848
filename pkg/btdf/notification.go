package btdf

import "time"

// NotificationDelivery is the payload published to the notification queue
// when the evaluator decides a passenger should hear about their bus. The
// consumer resolves the passenger's email address at delivery time.
type NotificationDelivery struct {
	Type NotificationDeliveryType

	PassengerID string
	BusID       string

	DropoffLocation string
	Location        Location

	DistanceKm float64
	ETAMinutes int

	OccurredAt time.Time
}

type NotificationDeliveryType string

const (
	NotificationDeliveryArrived NotificationDeliveryType = "Arrived"
	NotificationDeliveryEnRoute NotificationDeliveryType = "EnRoute"
)

package btdf

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ticket struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	PassengerID primitive.ObjectID `groups:"basic"`

	PNR      string `groups:"basic"`
	TicketNo string `groups:"basic"`

	Pickup  string `groups:"basic"`
	Dropoff string `groups:"basic"`

	TravelDate time.Time `groups:"basic"`
	StartTime  string    `groups:"basic"`
	EndTime    string    `groups:"basic"`

	BusID string `groups:"basic"`

	CreationDateTime time.Time `groups:"detailed"`
}

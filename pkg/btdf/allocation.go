package btdf

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Allocation assigns a conductor to a bus for one calendar day. A bus carries
// at most one allocation per day, and so does a conductor.
type Allocation struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	BusRef       primitive.ObjectID `groups:"basic"`
	ConductorRef primitive.ObjectID `groups:"basic"`

	Date time.Time `groups:"basic"`

	CreationDateTime time.Time `groups:"detailed"`
}

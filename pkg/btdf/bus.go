package btdf

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bus struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	BusID         string `groups:"basic"`
	BusNumber     string `groups:"basic"`
	RouteName     string `groups:"basic"`
	ConductorName string `groups:"basic"`
	MobileNo      string `groups:"detailed"`

	StopRefs []primitive.ObjectID `groups:"detailed"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`
}

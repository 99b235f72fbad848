package btdf

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stop is a depot record, the top level grouping for route stops.
type Stop struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name     string   `groups:"basic"`
	Location Location `groups:"basic"`

	CreationDateTime time.Time `groups:"detailed"`
}

// RouteStop is a named stop along a route, tied to its depot by name. The
// notification entries built at journey start match ticket drop-off names
// against these records.
type RouteStop struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name     string   `groups:"basic"`
	DepoName string   `groups:"basic"`
	Location Location `groups:"basic"`

	CreationDateTime time.Time `groups:"detailed"`
}

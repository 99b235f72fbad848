package btdf

import (
	"context"
	"time"

	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Journey struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	BusID string `groups:"basic"`
	Bus   *Bus   `groups:"detailed" bson:"-"`

	Status    JourneyStatus    `groups:"basic"`
	Direction JourneyDirection `groups:"basic"`

	CurrentLocation Location `groups:"basic"`

	LastUpdated time.Time  `groups:"basic"`
	StartTime   time.Time  `groups:"basic"`
	EndTime     *time.Time `groups:"basic" bson:",omitempty"`

	Notifications []*NotificationEntry `groups:"internal"`
}

type JourneyStatus string

const (
	JourneyStatusActive    JourneyStatus = "active"
	JourneyStatusCompleted JourneyStatus = "completed"
)

type JourneyDirection string

const (
	JourneyDirectionForward JourneyDirection = "forward"
	JourneyDirectionReturn  JourneyDirection = "return"
)

func (j *Journey) GetBus() {
	busesCollection := database.GetCollection("buses")
	busesCollection.FindOne(context.Background(), bson.M{"busid": j.BusID}).Decode(&j.Bus)
}

// NotificationEntry is one passenger's pending drop-off alert on a journey.
// Entries are created in bulk when the journey starts and are never deleted,
// only flagged reached.
type NotificationEntry struct {
	PassengerID primitive.ObjectID `groups:"internal"`

	DropoffLocation    string   `groups:"internal"`
	DropoffCoordinates Location `groups:"internal"`

	LastNotified time.Time `groups:"internal"`
	Reached      bool      `groups:"internal"`
}

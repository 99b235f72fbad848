package btdf

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Passenger struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name  string `groups:"basic"`
	Email string `groups:"basic"`
	Phone string `groups:"basic"`

	Password string `json:"-" groups:"internal"`

	CreationDateTime time.Time `groups:"detailed"`
}

type Conductor struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name  string `groups:"basic"`
	Email string `groups:"basic"`
	Phone string `groups:"basic"`

	Password string `json:"-" groups:"internal"`

	CreationDateTime time.Time `groups:"detailed"`
}

type Admin struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name  string `groups:"basic"`
	Email string `groups:"basic"`

	Password string `json:"-" groups:"internal"`

	CreationDateTime time.Time `groups:"detailed"`
}

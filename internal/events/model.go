package events

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	return s == StatusUpcoming || s == StatusCompleted
}

// Event is a timeline entry. Date is a calendar day (YYYY-MM-DD) with no
// time component, and Status is only ever toggled by admin action.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Date        string             `bson:"date" json:"date"`
	Description string             `bson:"description" json:"description"`
	Venue       string             `bson:"venue" json:"venue"`
	Status      Status             `bson:"status" json:"status"`
}

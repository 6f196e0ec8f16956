package members

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a public directory entry. The store-assigned identifier travels
// on the wire as "_id"; clients rename it to a uniform "id" field on read.
type Member struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Instagram string             `bson:"instagram" json:"instagram"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
}

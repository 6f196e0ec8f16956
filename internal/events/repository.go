package events

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	FindAll(ctx context.Context) ([]Event, error)
	Insert(ctx context.Context, event *Event) error
	Update(ctx context.Context, id string, fields bson.M) (*Event, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		coll: db.Collection("events"),
	}
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Event, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("could not list events: %v", err)
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("could not decode events: %v", err)
	}
	return events, nil
}

func (r *mongoRepository) Insert(ctx context.Context, event *Event) error {
	res, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("could not create event: %v", err)
	}

	event.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, fields bson.M) (*Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	var event Event
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("could not update event: %v", err)
	}

	return &event, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("could not delete event: %v", err)
	}
	return nil
}

func (r *mongoRepository) DeleteAll(ctx context.Context) error {
	if err := r.coll.Drop(ctx); err != nil {
		return fmt.Errorf("could not drop events collection: %v", err)
	}
	return nil
}

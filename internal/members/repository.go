package members

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMemberNotFound = errors.New("member not found")

type Repository interface {
	FindAll(ctx context.Context) ([]Member, error)
	Insert(ctx context.Context, member *Member) error
	Update(ctx context.Context, id string, fields bson.M) (*Member, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		coll: db.Collection("members"),
	}
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Member, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("could not list members: %v", err)
	}
	defer cursor.Close(ctx)

	members := []Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("could not decode members: %v", err)
	}
	return members, nil
}

func (r *mongoRepository) Insert(ctx context.Context, member *Member) error {
	res, err := r.coll.InsertOne(ctx, member)
	if err != nil {
		return fmt.Errorf("could not create member: %v", err)
	}

	member.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, fields bson.M) (*Member, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	var member Member
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("could not update member: %v", err)
	}

	return &member, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Nothing can match a malformed id, deletes are idempotent.
		return nil
	}

	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("could not delete member: %v", err)
	}
	return nil
}

func (r *mongoRepository) DeleteAll(ctx context.Context) error {
	if err := r.coll.Drop(ctx); err != nil {
		return fmt.Errorf("could not drop members collection: %v", err)
	}
	return nil
}

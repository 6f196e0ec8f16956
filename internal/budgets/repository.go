package budgets

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBudgetNotFound = errors.New("budget not found")

type Repository interface {
	FindAll(ctx context.Context) ([]Budget, error)
	FindByEvent(ctx context.Context, eventID string) (*Budget, error)
	Insert(ctx context.Context, budget *Budget) error
	Upsert(ctx context.Context, budget *Budget) (*Budget, error)
	DeleteByEvent(ctx context.Context, eventID string) error
	DeleteAll(ctx context.Context) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		coll: db.Collection("budgets"),
	}
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Budget, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("could not list budgets: %v", err)
	}
	defer cursor.Close(ctx)

	budgets := []Budget{}
	if err := cursor.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("could not decode budgets: %v", err)
	}
	return budgets, nil
}

func (r *mongoRepository) FindByEvent(ctx context.Context, eventID string) (*Budget, error) {
	var budget Budget
	err := r.coll.FindOne(ctx, bson.M{"eventId": eventID}).Decode(&budget)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("could not find budget: %v", err)
	}
	return &budget, nil
}

func (r *mongoRepository) Insert(ctx context.Context, budget *Budget) error {
	res, err := r.coll.InsertOne(ctx, budget)
	if err != nil {
		return fmt.Errorf("could not create budget: %v", err)
	}

	budget.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Upsert replaces the whole budget document for its event, inserting it if
// none exists, and returns the stored document.
func (r *mongoRepository) Upsert(ctx context.Context, budget *Budget) (*Budget, error) {
	var stored Budget
	err := r.coll.FindOneAndReplace(
		ctx,
		bson.M{"eventId": budget.EventID},
		budget,
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("could not upsert budget: %v", err)
	}
	return &stored, nil
}

func (r *mongoRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return fmt.Errorf("could not delete budget: %v", err)
	}
	return nil
}

func (r *mongoRepository) DeleteAll(ctx context.Context) error {
	if err := r.coll.Drop(ctx); err != nil {
		return fmt.Errorf("could not drop budgets collection: %v", err)
	}
	return nil
}

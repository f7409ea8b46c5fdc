package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slintsurvey/internal/model"
)

// ErrNotFound is returned when deleting a response that does not exist
var ErrNotFound = errors.New("response not found")

// ResponseRepo persists finalized survey responses
type ResponseRepo interface {
	// Create assigns ID and CreatedAt and stores the response
	Create(ctx context.Context, response *model.StoredResponse) error
	// List returns every response, newest first
	List(ctx context.Context) ([]*model.StoredResponse, error)
	GetByID(ctx context.Context, id string) (*model.StoredResponse, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

type mongoResponseRepo struct {
	collection *mongo.Collection
}

// NewMongoResponseRepo creates a response repository on the responses collection
func NewMongoResponseRepo(db *mongo.Database) ResponseRepo {
	return &mongoResponseRepo{
		collection: db.Collection("responses"),
	}
}

// EnsureIndexes creates the createdAt index used by List
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("responses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *mongoResponseRepo) Create(ctx context.Context, response *model.StoredResponse) error {
	response.ID = ""
	response.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		response.ID = oid.Hex()
	}
	return nil
}

func (r *mongoResponseRepo) List(ctx context.Context) ([]*model.StoredResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []*model.StoredResponse{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *mongoResponseRepo) GetByID(ctx context.Context, id string) (*model.StoredResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var response model.StoredResponse
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *mongoResponseRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoResponseRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoResponseRepo) Close(ctx context.Context) error {
	return r.collection.Database().Client().Disconnect(ctx)
}

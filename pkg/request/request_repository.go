package request

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/database"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type (
	RequestRepository interface {
		FindAll(ctx context.Context) ([]domain.Document, error)
		FindByRequester(ctx context.Context, requestUserEmail string) ([]domain.Document, error)
		Insert(ctx context.Context, payload domain.Document) (string, error)
	}

	requestRepository struct {
		collection *mongo.Collection
	}
)

func NewRequestRepository(db *mongo.Database) RequestRepository {
	return &requestRepository{collection: db.Collection(domain.CollectionRequestFood)}
}

func (r *requestRepository) find(ctx context.Context, filter bson.M) ([]domain.Document, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("finding food requests: %w", err)
	}
	return database.DecodeAll(ctx, cursor)
}

func (r *requestRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	return r.find(ctx, bson.M{})
}

func (r *requestRepository) FindByRequester(ctx context.Context, requestUserEmail string) ([]domain.Document, error) {
	return r.find(ctx, bson.M{"requestUserEmail": requestUserEmail})
}

func (r *requestRepository) Insert(ctx context.Context, payload domain.Document) (string, error) {
	res, err := r.collection.InsertOne(ctx, database.InsertableDocument(payload))
	if err != nil {
		return "", fmt.Errorf("inserting food request: %w", err)
	}
	return database.IDString(res.InsertedID), nil
}

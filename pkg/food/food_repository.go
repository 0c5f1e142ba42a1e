package food

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/database"
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	FoodRepository interface {
		FindAll(ctx context.Context) ([]domain.Document, error)
		FindByName(ctx context.Context, foodName string) ([]domain.Document, error)
		FindByDonator(ctx context.Context, donatorEmail string) ([]domain.Document, error)
		FindPage(ctx context.Context, skip, limit int64) ([]domain.Document, error)
		Count(ctx context.Context) (int64, error)

		// FindByID returns nil without error when nothing matches.
		FindByID(ctx context.Context, id string) (domain.Document, error)
		Insert(ctx context.Context, payload domain.Document) (string, error)
		Upsert(ctx context.Context, id string, set domain.Document) (domain.UpsertResult, error)
		// Delete returns the removed document, or nil when nothing matched.
		Delete(ctx context.Context, id string) (domain.Document, error)
	}

	foodRepository struct {
		collection *mongo.Collection
	}
)

func NewFoodRepository(db *mongo.Database) FoodRepository {
	return &foodRepository{collection: db.Collection(domain.CollectionAvailableFood)}
}

func (r *foodRepository) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]domain.Document, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("finding available food: %w", err)
	}
	return database.DecodeAll(ctx, cursor)
}

func (r *foodRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	return r.find(ctx, bson.M{})
}

func (r *foodRepository) FindByName(ctx context.Context, foodName string) ([]domain.Document, error) {
	filter := bson.M{"foodName": primitive.Regex{Pattern: regexp.QuoteMeta(foodName), Options: "i"}}
	return r.find(ctx, filter)
}

func (r *foodRepository) FindByDonator(ctx context.Context, donatorEmail string) ([]domain.Document, error) {
	return r.find(ctx, bson.M{"donatorEmail": donatorEmail})
}

func (r *foodRepository) FindPage(ctx context.Context, skip, limit int64) ([]domain.Document, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *foodRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting available food: %w", err)
	}
	return count, nil
}

func (r *foodRepository) FindByID(ctx context.Context, id string) (domain.Document, error) {
	oid, err := database.ObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding available food %s: %w", id, err)
	}
	return domain.Document(doc), nil
}

func (r *foodRepository) Insert(ctx context.Context, payload domain.Document) (string, error) {
	res, err := r.collection.InsertOne(ctx, database.InsertableDocument(payload))
	if err != nil {
		return "", fmt.Errorf("inserting available food: %w", err)
	}
	return database.IDString(res.InsertedID), nil
}

func (r *foodRepository) Upsert(ctx context.Context, id string, set domain.Document) (domain.UpsertResult, error) {
	oid, err := database.ObjectID(id)
	if err != nil {
		return domain.UpsertResult{}, err
	}

	update := bson.M{"$set": bson.M(set)}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("updating available food %s: %w", id, err)
	}

	result := domain.UpsertResult{
		ID:       oid.Hex(),
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}
	if res.UpsertedCount > 0 {
		result.Created = true
		result.ID = database.IDString(res.UpsertedID)
	}
	return result, nil
}

func (r *foodRepository) Delete(ctx context.Context, id string) (domain.Document, error) {
	oid, err := database.ObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("deleting available food %s: %w", id, err)
	}
	return domain.Document(doc), nil
}

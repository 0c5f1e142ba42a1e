package database

import (
	"Surplus-Reduction-Backend/domain"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ObjectID parses a hex identifier, mapping malformed input to
// domain.ErrInvalidID.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// IDString renders a store-assigned _id the way clients see it.
func IDString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// InsertableDocument copies payload without any client supplied _id so the
// store always assigns the identifier.
func InsertableDocument(payload domain.Document) bson.M {
	doc := make(bson.M, len(payload))
	for key, value := range payload {
		if key == "_id" {
			continue
		}
		doc[key] = value
	}
	return doc
}

// DecodeAll drains cursor into documents. The result is never nil.
func DecodeAll(ctx context.Context, cursor *mongo.Cursor) ([]domain.Document, error) {
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decoding documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, domain.Document(m))
	}
	return docs, nil
}

package database

import (
	"Surplus-Reduction-Backend/domain"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UUID parses an identifier for the postgres backend, mapping malformed
// input to domain.ErrInvalidID.
func UUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return parsed, nil
}

// JSONDocument converts a payload into a jsonb column value, dropping _id.
func JSONDocument(payload domain.Document) datatypes.JSONMap {
	doc := make(datatypes.JSONMap, len(payload))
	for key, value := range payload {
		if key == "_id" {
			continue
		}
		doc[key] = value
	}
	return doc
}

// RowDocument exposes a stored row as a document with its id under _id.
func RowDocument(id uuid.UUID, stored datatypes.JSONMap) domain.Document {
	doc := make(domain.Document, len(stored)+1)
	for key, value := range stored {
		doc[key] = value
	}
	doc["_id"] = id.String()
	return doc
}

// EscapeLike makes s match literally inside a LIKE/ILIKE pattern.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

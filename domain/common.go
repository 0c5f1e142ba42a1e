package domain

import (
	"errors"
)

const (
	CollectionAvailableFood = "availableFood"
	CollectionRequestFood   = "requestFood"

	TokenCookieName = "token"
	LocalsIdentity  = "identity"
)

var (
	MessageUnauthorizedNoToken  = "unauthorized access"
	MessageUnauthorizedInvalid  = "unauthorized access: invalid token"
	MessageForbiddenAccess      = "forbidden access"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageInvalidID            = "invalid identifier"

	ErrTokenNotFound   = errors.New("token not found")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrForbiddenAccess = errors.New("forbidden access")
	ErrInvalidID       = errors.New("invalid identifier")
)

// Document is a schema-flexible record as stored in a collection. The
// store-assigned identifier is exposed under the "_id" key.
type Document map[string]any

// InsertResult mirrors what the store reports after an insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// DeleteResult reports whether a document was actually removed.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

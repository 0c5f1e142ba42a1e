// Package storetest provides in-memory repositories with the same
// observable behaviour as the mongo repositories, for tests.
package storetest

import (
	"Surplus-Reduction-Backend/domain"
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStoreDown is returned by every call once Fail is set.
var ErrStoreDown = errors.New("store unavailable")

type collection struct {
	mu    sync.Mutex
	ids   []string
	docs  map[string]domain.Document
	Fail  bool
	Calls int
}

func newCollection() *collection {
	return &collection{docs: map[string]domain.Document{}}
}

func (c *collection) begin() error {
	c.Calls++
	if c.Fail {
		return ErrStoreDown
	}
	return nil
}

func copyDoc(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (c *collection) filter(match func(domain.Document) bool) []domain.Document {
	out := make([]domain.Document, 0)
	for _, id := range c.ids {
		if doc := c.docs[id]; match(doc) {
			out = append(out, copyDoc(doc))
		}
	}
	return out
}

func (c *collection) insert(id string, payload domain.Document) {
	doc := make(domain.Document, len(payload)+1)
	for k, v := range payload {
		if k != "_id" {
			doc[k] = v
		}
	}
	doc["_id"] = id
	c.ids = append(c.ids, id)
	c.docs[id] = doc
}

func validID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

func fieldEquals(field, value string) func(domain.Document) bool {
	return func(doc domain.Document) bool {
		s, ok := doc[field].(string)
		return ok && s == value
	}
}

// FoodRepository is an in-memory listing collection.
type FoodRepository struct {
	*collection
}

func NewFoodRepository() *FoodRepository {
	return &FoodRepository{collection: newCollection()}
}

func (r *FoodRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	return r.filter(func(domain.Document) bool { return true }), nil
}

func (r *FoodRepository) FindByName(ctx context.Context, foodName string) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(foodName)
	return r.filter(func(doc domain.Document) bool {
		name, ok := doc["foodName"].(string)
		return ok && strings.Contains(strings.ToLower(name), needle)
	}), nil
}

func (r *FoodRepository) FindByDonator(ctx context.Context, donatorEmail string) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	return r.filter(fieldEquals("donatorEmail", donatorEmail)), nil
}

func (r *FoodRepository) FindPage(ctx context.Context, skip, limit int64) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	all := r.filter(func(domain.Document) bool { return true })
	if skip >= int64(len(all)) {
		return []domain.Document{}, nil
	}
	end := int64(len(all))
	if limit < end-skip {
		end = skip + limit
	}
	return all[skip:end], nil
}

func (r *FoodRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return 0, err
	}
	return int64(len(r.ids)), nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id string) (domain.Document, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return copyDoc(doc), nil
}

func (r *FoodRepository) Insert(ctx context.Context, payload domain.Document) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return "", err
	}
	id := primitive.NewObjectID().Hex()
	r.insert(id, payload)
	return id, nil
}

func (r *FoodRepository) Upsert(ctx context.Context, id string, set domain.Document) (domain.UpsertResult, error) {
	if err := validID(id); err != nil {
		return domain.UpsertResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return domain.UpsertResult{}, err
	}

	doc, ok := r.docs[id]
	if !ok {
		r.insert(id, set)
		return domain.UpsertResult{Created: true, ID: id}, nil
	}

	result := domain.UpsertResult{ID: id, Matched: 1}
	for k, v := range set {
		if current, exists := doc[k]; !exists || !reflect.DeepEqual(current, v) {
			result.Modified = 1
		}
		doc[k] = v
	}
	return result, nil
}

func (r *FoodRepository) Delete(ctx context.Context, id string) (domain.Document, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}

	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	delete(r.docs, id)
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return doc, nil
}

// RequestRepository is an in-memory food request collection.
type RequestRepository struct {
	*collection
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{collection: newCollection()}
}

func (r *RequestRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	return r.filter(func(domain.Document) bool { return true }), nil
}

func (r *RequestRepository) FindByRequester(ctx context.Context, requestUserEmail string) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	return r.filter(fieldEquals("requestUserEmail", requestUserEmail)), nil
}

func (r *RequestRepository) Insert(ctx context.Context, payload domain.Document) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return "", err
	}
	id := primitive.NewObjectID().Hex()
	r.insert(id, payload)
	return id, nil
}

package food

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/entities"
	"Surplus-Reduction-Backend/internal/database"
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type foodPostgresRepository struct {
	db *gorm.DB
}

// NewFoodPostgresRepository stores listings as jsonb documents.
func NewFoodPostgresRepository(db *gorm.DB) FoodRepository {
	return &foodPostgresRepository{db: db}
}

func (r *foodPostgresRepository) find(query *gorm.DB) ([]domain.Document, error) {
	var rows []entities.AvailableFood
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("finding available food: %w", err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, database.RowDocument(row.ID, row.Document))
	}
	return docs, nil
}

func (r *foodPostgresRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *foodPostgresRepository) FindByName(ctx context.Context, foodName string) ([]domain.Document, error) {
	pattern := "%" + database.EscapeLike(foodName) + "%"
	return r.find(r.db.WithContext(ctx).Where("document->>'foodName' ILIKE ?", pattern))
}

func (r *foodPostgresRepository) FindByDonator(ctx context.Context, donatorEmail string) ([]domain.Document, error) {
	return r.find(r.db.WithContext(ctx).Where("document->>'donatorEmail' = ?", donatorEmail))
}

func (r *foodPostgresRepository) FindPage(ctx context.Context, skip, limit int64) ([]domain.Document, error) {
	return r.find(r.db.WithContext(ctx).Offset(int(skip)).Limit(int(limit)))
}

func (r *foodPostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.AvailableFood{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting available food: %w", err)
	}
	return count, nil
}

func (r *foodPostgresRepository) FindByID(ctx context.Context, id string) (domain.Document, error) {
	uid, err := database.UUID(id)
	if err != nil {
		return nil, err
	}

	var row entities.AvailableFood
	if err := r.db.WithContext(ctx).Where("id = ?", uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding available food %s: %w", id, err)
	}
	return database.RowDocument(row.ID, row.Document), nil
}

func (r *foodPostgresRepository) Insert(ctx context.Context, payload domain.Document) (string, error) {
	row := entities.AvailableFood{
		ID:       uuid.New(),
		Document: database.JSONDocument(payload),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("inserting available food: %w", err)
	}
	return row.ID.String(), nil
}

// Upsert runs in a transaction with the row locked, so the two branches
// cannot interleave with a concurrent update of the same id.
func (r *foodPostgresRepository) Upsert(ctx context.Context, id string, set domain.Document) (domain.UpsertResult, error) {
	uid, err := database.UUID(id)
	if err != nil {
		return domain.UpsertResult{}, err
	}

	result := domain.UpsertResult{ID: uid.String()}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row entities.AvailableFood
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", uid).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Created = true
			return createListing(tx, uid, set)
		}
		if err != nil {
			return err
		}

		result.Matched = 1
		merged, changed := mergeListing(row.Document, set)
		if !changed {
			return nil
		}
		result.Modified = 1
		return updateListing(tx, uid, merged)
	})
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("updating available food %s: %w", id, err)
	}
	return result, nil
}

func createListing(tx *gorm.DB, id uuid.UUID, set domain.Document) error {
	return tx.Create(&entities.AvailableFood{ID: id, Document: database.JSONDocument(set)}).Error
}

func updateListing(tx *gorm.DB, id uuid.UUID, document datatypes.JSONMap) error {
	return tx.Model(&entities.AvailableFood{}).Where("id = ?", id).Update("document", document).Error
}

// mergeListing applies set on top of stored and reports whether any value
// actually changed. stored is not modified.
func mergeListing(stored datatypes.JSONMap, set domain.Document) (datatypes.JSONMap, bool) {
	merged := make(datatypes.JSONMap, len(stored)+len(set))
	for key, value := range stored {
		merged[key] = value
	}

	changed := false
	for key, value := range set {
		if current, ok := merged[key]; !ok || !reflect.DeepEqual(current, value) {
			changed = true
		}
		merged[key] = value
	}
	return merged, changed
}

func (r *foodPostgresRepository) Delete(ctx context.Context, id string) (domain.Document, error) {
	uid, err := database.UUID(id)
	if err != nil {
		return nil, err
	}

	var rows []entities.AvailableFood
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", uid).
		Delete(&rows)
	if res.Error != nil {
		return nil, fmt.Errorf("deleting available food %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 || len(rows) == 0 {
		return nil, nil
	}
	return database.RowDocument(rows[0].ID, rows[0].Document), nil
}

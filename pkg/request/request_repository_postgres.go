package request

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/entities"
	"Surplus-Reduction-Backend/internal/database"
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type requestPostgresRepository struct {
	db *gorm.DB
}

func NewRequestPostgresRepository(db *gorm.DB) RequestRepository {
	return &requestPostgresRepository{db: db}
}

func (r *requestPostgresRepository) find(query *gorm.DB) ([]domain.Document, error) {
	var rows []entities.RequestFood
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("finding food requests: %w", err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, database.RowDocument(row.ID, row.Document))
	}
	return docs, nil
}

func (r *requestPostgresRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *requestPostgresRepository) FindByRequester(ctx context.Context, requestUserEmail string) ([]domain.Document, error) {
	return r.find(r.db.WithContext(ctx).Where("document->>'requestUserEmail' = ?", requestUserEmail))
}

func (r *requestPostgresRepository) Insert(ctx context.Context, payload domain.Document) (string, error) {
	row := entities.RequestFood{
		ID:       uuid.New(),
		Document: database.JSONDocument(payload),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("inserting food request: %w", err)
	}
	return row.ID.String(), nil
}

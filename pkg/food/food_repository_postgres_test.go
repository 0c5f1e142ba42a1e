package food

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/storetest"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPostgresFindQueries(t *testing.T) {
	db, recorder := storetest.DryRunPostgres(t)
	repo := NewFoodPostgresRepository(db)
	ctx := context.Background()

	_, err := repo.FindByName(ctx, "50%_rice")
	require.NoError(t, err)
	assert.Contains(t, recorder.Last(), `document->>'foodName' ILIKE`)
	assert.Contains(t, recorder.Last(), `%50\%\_rice%`)

	_, err = repo.FindByDonator(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, recorder.Last(), `document->>'donatorEmail' = 'a@x.com'`)

	_, err = repo.FindPage(ctx, 10, 10)
	require.NoError(t, err)
	assert.Contains(t, recorder.Last(), "LIMIT 10")
	assert.Contains(t, recorder.Last(), "OFFSET 10")
}

func TestPostgresRejectsMalformedID(t *testing.T) {
	db, recorder := storetest.DryRunPostgres(t)
	repo := NewFoodPostgresRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = repo.Upsert(ctx, "not-a-uuid", domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = repo.Delete(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Equal(t, "", recorder.Last())
}

func TestPostgresInsertAssignsID(t *testing.T) {
	db, recorder := storetest.DryRunPostgres(t)
	repo := NewFoodPostgresRepository(db)

	id, err := repo.Insert(context.Background(), domain.Document{"_id": "client", "foodName": "Rice"})
	require.NoError(t, err)
	assert.NotEqual(t, "client", id)
	assert.Contains(t, recorder.Last(), `INSERT INTO "available_food"`)
}

func TestMergeListing(t *testing.T) {
	stored := datatypes.JSONMap{"foodName": "Rice", "quantity": "5kg", "donatorEmail": "a@x.com"}

	tests := []struct {
		name    string
		set     domain.Document
		changed bool
		want    datatypes.JSONMap
	}{
		{
			name:    "same values",
			set:     domain.Document{"foodName": "Rice", "quantity": "5kg"},
			changed: false,
			want:    datatypes.JSONMap{"foodName": "Rice", "quantity": "5kg", "donatorEmail": "a@x.com"},
		},
		{
			name:    "changed value",
			set:     domain.Document{"foodName": "Bread", "quantity": "5kg"},
			changed: true,
			want:    datatypes.JSONMap{"foodName": "Bread", "quantity": "5kg", "donatorEmail": "a@x.com"},
		},
		{
			name:    "new key set to null",
			set:     domain.Document{"notes": nil},
			changed: true,
			want:    datatypes.JSONMap{"foodName": "Rice", "quantity": "5kg", "donatorEmail": "a@x.com", "notes": nil},
		},
		{
			name:    "nested value compared deeply",
			set:     domain.Document{"location": map[string]any{"city": "Dhaka"}},
			changed: true,
			want:    datatypes.JSONMap{"foodName": "Rice", "quantity": "5kg", "donatorEmail": "a@x.com", "location": map[string]any{"city": "Dhaka"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, changed := mergeListing(stored, tt.set)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, merged)
		})
	}
	assert.Len(t, stored, 3, "stored document must not be modified")

	merged, changed := mergeListing(
		datatypes.JSONMap{"location": map[string]any{"city": "Dhaka"}},
		domain.Document{"location": map[string]any{"city": "Dhaka"}},
	)
	assert.False(t, changed)
	assert.Len(t, merged, 1)

	merged, changed = mergeListing(nil, domain.Document{"foodName": "Rice"})
	assert.True(t, changed)
	assert.Equal(t, datatypes.JSONMap{"foodName": "Rice"}, merged)
}

func TestPostgresUpsertStatements(t *testing.T) {
	db, recorder := storetest.DryRunPostgres(t)
	id := uuid.New()

	require.NoError(t, createListing(db, id, domain.Document{"_id": "client", "foodName": "Rice"}))
	assert.Contains(t, recorder.Last(), `INSERT INTO "available_food"`)
	assert.Contains(t, recorder.Last(), id.String())
	assert.NotContains(t, recorder.Last(), "client")

	require.NoError(t, updateListing(db, id, datatypes.JSONMap{"foodName": "Bread"}))
	assert.Contains(t, recorder.Last(), `UPDATE "available_food" SET "document"=`)
	assert.Contains(t, recorder.Last(), "Bread")
	assert.Contains(t, recorder.Last(), "WHERE id = '"+id.String()+"'")
}

func TestPostgresDeleteReturnsRow(t *testing.T) {
	db, recorder := storetest.DryRunPostgres(t)
	repo := NewFoodPostgresRepository(db)
	id := uuid.New()

	doc, err := repo.Delete(context.Background(), id.String())
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, recorder.Last(), `DELETE FROM "available_food" WHERE id = '`+id.String()+"'")
	assert.Contains(t, recorder.Last(), "RETURNING *")
}

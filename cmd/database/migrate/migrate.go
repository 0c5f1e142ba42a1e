package migration

import (
	"Surplus-Reduction-Backend/cmd/config"
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/entities"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Migrate prepares the store for queries: indexes on the fields the API
// filters by for mongo, tables for postgres.
func Migrate(ctx context.Context, db *config.Database) error {
	if db.Postgres != nil {
		return migratePostgres(db.Postgres)
	}
	return migrateMongo(ctx, db.Mongo)
}

func migratePostgres(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.AvailableFood{}); err != nil {
		return fmt.Errorf("migrating available food table: %w", err)
	}
	if err := db.AutoMigrate(&entities.RequestFood{}); err != nil {
		return fmt.Errorf("migrating request food table: %w", err)
	}
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_available_food_donator ON available_food ((document->>'donatorEmail'))`,
		`CREATE INDEX IF NOT EXISTS idx_request_food_requester ON request_food ((document->>'requestUserEmail'))`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	log.Info("database migration complete")
	return nil
}

func migrateMongo(ctx context.Context, db *mongo.Database) error {
	availableFood := []mongo.IndexModel{
		{Keys: bson.D{{Key: "foodName", Value: 1}}},
		{Keys: bson.D{{Key: "donatorEmail", Value: 1}}},
	}
	if _, err := db.Collection(domain.CollectionAvailableFood).Indexes().CreateMany(ctx, availableFood); err != nil {
		return fmt.Errorf("creating available food indexes: %w", err)
	}

	requestFood := []mongo.IndexModel{
		{Keys: bson.D{{Key: "requestUserEmail", Value: 1}}},
	}
	if _, err := db.Collection(domain.CollectionRequestFood).Indexes().CreateMany(ctx, requestFood); err != nil {
		return fmt.Errorf("creating request food indexes: %w", err)
	}

	log.Info("database indexes ensured")
	return nil
}

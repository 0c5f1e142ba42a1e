package config

import (
	"Surplus-Reduction-Backend/internal/utils"
	"Surplus-Reduction-Backend/pkg/food"
	"Surplus-Reduction-Backend/pkg/request"
	"context"
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is the single store handle opened at startup and shared by all
// requests. Exactly one of Mongo and Postgres is set.
type Database struct {
	Driver   string
	Client   *mongo.Client
	Mongo    *mongo.Database
	Postgres *gorm.DB
}

func mongoURI(cfg utils.Config) string {
	if cfg.MongoURI != "" {
		return cfg.MongoURI
	}
	if cfg.DBHost == "" {
		return "mongodb://localhost:27017"
	}
	return fmt.Sprintf(
		"mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(cfg.DBUser),
		url.QueryEscape(cfg.DBPassword),
		cfg.DBHost,
	)
}

func postgresDSN(cfg utils.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)
}

func ConnectDB(ctx context.Context, cfg utils.Config) (*Database, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(postgresDSN(cfg)), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return &Database{Driver: cfg.DBDriver, Postgres: db}, nil
	default:
		serverAPI := options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI(cfg)).SetServerAPIOptions(serverAPI))
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		return &Database{Driver: "mongo", Client: client, Mongo: client.Database(cfg.DBName)}, nil
	}
}

func (d *Database) Repositories() (food.FoodRepository, request.RequestRepository) {
	if d.Postgres != nil {
		return food.NewFoodPostgresRepository(d.Postgres), request.NewRequestPostgresRepository(d.Postgres)
	}
	return food.NewFoodRepository(d.Mongo), request.NewRequestRepository(d.Mongo)
}

func (d *Database) Close(ctx context.Context) error {
	if d.Client != nil {
		return d.Client.Disconnect(ctx)
	}
	if d.Postgres != nil {
		sqlDB, err := d.Postgres.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

package config

import (
	"Surplus-Reduction-Backend/internal/api/handlers"
	"Surplus-Reduction-Backend/internal/api/presenters"
	"Surplus-Reduction-Backend/internal/api/routes"
	"Surplus-Reduction-Backend/internal/middleware"
	"Surplus-Reduction-Backend/internal/utils"
	"Surplus-Reduction-Backend/internal/utils/mailing"
	"Surplus-Reduction-Backend/internal/utils/storage"
	"Surplus-Reduction-Backend/pkg/food"
	"Surplus-Reduction-Backend/pkg/jwt"
	"Surplus-Reduction-Backend/pkg/request"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the long-lived collaborators injected into handlers.
// S3 and Mailer may be nil.
type Dependencies struct {
	FoodRepository    food.FoodRepository
	RequestRepository request.RequestRepository
	S3                storage.AwsS3
	Mailer            mailing.Mailer
	LogOutput         io.Writer
}

// NewApp opens the access log, builds the optional integrations from cfg and
// returns the configured app.
func NewApp(ctx context.Context, cfg utils.Config, db *Database) (*fiber.App, io.Closer, error) {
	if err := os.MkdirAll(cfg.LogDir, os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(
		filepath.Join(cfg.LogDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, err
	}

	foodRepository, requestRepository := db.Repositories()
	deps := Dependencies{
		FoodRepository:    foodRepository,
		RequestRepository: requestRepository,
		LogOutput:         file,
	}

	s3, err := storage.NewAwsS3(ctx, storage.S3Config{
		Bucket:    cfg.AWSS3Bucket,
		Region:    cfg.AWSS3Region,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	switch {
	case errors.Is(err, storage.ErrStorageNotConfigured):
		log.Info("s3 not configured, food image upload disabled")
	case err != nil:
		log.Warnf("s3 unavailable, food image upload disabled: %v", err)
	default:
		deps.S3 = s3
	}

	mailer, err := mailing.NewMailer(mailing.MailConfig{
		AppURL:       cfg.AppURL,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPSender:   cfg.SMTPSenderName,
		SMTPEmail:    cfg.SMTPAuthEmail,
		SMTPPassword: cfg.SMTPAuthPassword,
	})
	switch {
	case errors.Is(err, mailing.ErrMailNotConfigured):
		log.Info("smtp not configured, request notifications disabled")
	case err != nil:
		log.Warnf("smtp unavailable, request notifications disabled: %v", err)
	default:
		deps.Mailer = mailer
	}

	return BuildApp(cfg, deps), file, nil
}

// BuildApp wires handlers and routes around the given dependencies.
func BuildApp(cfg utils.Config, deps Dependencies) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: presenters.ErrorHandler,
	})
	middlewares := middleware.NewMiddleware(cfg.CORSOrigins)
	validator := utils.Validate

	app.Use(recover.New())
	if deps.LogOutput != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Output:     deps.LogOutput,
		}))
	}

	// Service
	jwtService := jwt.NewJWTService(cfg.AccessTokenSecret)
	foodService := food.NewFoodService(deps.FoodRepository, deps.S3)
	requestService := request.NewRequestService(deps.RequestRepository, deps.Mailer, cfg.AppURL)

	// Handler
	authHandler := handlers.NewAuthHandler(jwtService, cfg.IsProduction())
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	requestHandler := handlers.NewRequestHandler(requestService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		AuthHandler:    authHandler,
		FoodHandler:    foodHandler,
		RequestHandler: requestHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app
}

package main

import (
	"Surplus-Reduction-Backend/cmd/config"
	migration "Surplus-Reduction-Backend/cmd/database/migrate"
	"Surplus-Reduction-Backend/internal/utils"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg := utils.LoadConfig()
	if err := utils.ValidateConfig(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(ctx, db); err != nil {
		log.Warnf("error preparing database: %v", err)
	}

	app, accessLog, err := config.NewApp(ctx, cfg, db)
	cancel()
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("error shutting down server: %v", err)
		}
	}()

	log.Infof("running port : %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("server stopped: %v", err)
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := db.Close(closeCtx); err != nil {
		log.Errorf("error closing database: %v", err)
	}
	if err := accessLog.Close(); err != nil {
		log.Errorf("error closing access log: %v", err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobmarket/internal/app"
	"jobmarket/internal/config"
	"jobmarket/internal/database/migration"
	"jobmarket/internal/ingestion"
	"jobmarket/internal/logger"
	"jobmarket/migrations"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(cfg.Logger)

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	applied, err := migration.Runner{Files: migrations.FS}.Run(migCtx, c.DB.SQLDB())
	migCancel()
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.WithField("applied", applied).Info("migrations up to date")

	bootstrap, cleanup, err := app.Bootstrap(c)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Errorf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Hub.Run(ctx)

	var scheduler *ingestion.Scheduler
	if spec := strings.TrimSpace(cfg.Ingestion.Schedule); spec != "" && !strings.EqualFold(spec, "off") {
		scheduler, err = ingestion.NewScheduler(spec, c.Ingestion, 30*time.Minute)
		if err != nil {
			log.Fatalf("invalid ingestion schedule: %v", err)
		}
		scheduler.Start()
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorf("server error: %v", err)
		}
	case <-sigCh:
		log.Info("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}

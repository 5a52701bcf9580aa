package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"task-planner/internal/api"
	"task-planner/internal/config"
	"task-planner/internal/repository"
	"task-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)

	app := api.NewApp(api.Deps{
		Auth:       authSvc,
		Tasks:      taskSvc,
		Categories: categorySvc,
		Users:      userRepo,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()
	log.WithField("addr", cfg.HTTPAddr).Info("Task planner started.")

	<-ctx.Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Info("Shutdown complete.")
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpadapter "taskvault/internal/adapter/http"
	"taskvault/internal/adapter/http/handlers"
	httpmiddleware "taskvault/internal/adapter/http/middleware"
	"taskvault/internal/adapter/notify"
	"taskvault/internal/adapter/storage"
	"taskvault/internal/app/service"
	"taskvault/internal/config"
	"taskvault/internal/scheduler"
	"taskvault/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open storage backend", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			logger.Warn("failed to close storage backend", zap.Error(err))
		}
	}()
	logger.Info("storage backend ready", zap.String("type", backend.StorageType()))

	taskService := service.NewTaskService(backend.Tasks, backend.Categories)
	categoryService := service.NewCategoryService(backend.Categories)
	authService := service.NewAuthService(backend.Users, cfg.JWTSecret, cfg.JWTExpire)

	reminders := scheduler.New(
		backend.Tasks,
		backend.Categories,
		notify.NewLogNotifier(logger),
		cfg.ReminderInterval,
	)
	go reminders.Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	httpadapter.RegisterRoutes(
		r,
		handlers.NewHealthHandler(backend),
		handlers.NewAuthHandler(authService),
		handlers.NewTaskHandler(taskService),
		handlers.NewCategoryHandler(categoryService),
		httpmiddleware.RequireAuth(authService, backend.Users),
	)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

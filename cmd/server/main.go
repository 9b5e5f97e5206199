package main

import (
	"context"
	"net/http"

	"FileVault/internal/blobstore"
	"FileVault/internal/config"
	"FileVault/internal/handlers"
	"FileVault/internal/middleware"
	"FileVault/internal/repo"
	"FileVault/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	var blobs blobstore.Store
	switch cfg.BlobBackend {
	case "minio":
		blobs, err = blobstore.NewMinio(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		blobs, err = blobstore.NewLocal(cfg.UploadDir)
	}
	if err != nil {
		sugar.Fatalw("failed to initialize blob storage", "backend", cfg.BlobBackend, "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	fileRepo := repo.NewFileRepository(gormDB)
	shareRepo := repo.NewShareRepository(gormDB)

	userService := service.NewUserService(userRepo)
	fileService := service.NewFileService(fileRepo, blobs, sugar)
	shareService := service.NewShareService(shareRepo, fileRepo, userRepo)
	authorizer := service.NewAuthorizer(fileRepo, shareRepo)

	h := handlers.NewHandler(userService, fileService, shareService, authorizer, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"BlobBackend", cfg.BlobBackend,
		"MaxUploadMB", cfg.MaxUploadMB,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

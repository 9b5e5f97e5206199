package handlers

import (
	"FileVault/internal/config"
	"FileVault/internal/middleware"
	"FileVault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	fileService *service.FileService,
	shareService *service.ShareService,
	authorizer *service.Authorizer,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, cfg)
	fileHandler := NewFileHandler(fileService, authorizer, logger, cfg)
	shareHandler := NewShareHandler(shareService, fileService, authorizer, logger)

	// Auth
	r.Post("/auth/register", userHandler.Register)
	r.Post("/auth/login", userHandler.Login)

	// Files
	r.Route("/files", func(r chi.Router) {
		r.Post("/upload", fileHandler.Upload)
		r.Get("/list", fileHandler.List)
		r.Get("/{id}", fileHandler.Get)
		r.Get("/{id}/download", fileHandler.Download)
		r.Put("/{id}/rename", fileHandler.Rename)
		r.Delete("/{id}", fileHandler.Delete)
	})

	// Sharing
	r.Route("/sharing", func(r chi.Router) {
		r.Post("/share", shareHandler.Share)
		r.Get("/shared-with-me", shareHandler.SharedWithMe)
		r.Get("/my-shares", shareHandler.MyShares)
		r.Get("/download/{id}", shareHandler.Download)
		r.Delete("/revoke/{id}", shareHandler.Revoke)
	})

	return &Handler{Router: r}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"FileVault/internal/config"
	"FileVault/internal/middleware"
	"FileVault/internal/service"

	"go.uber.org/zap"
)

// UserHandler — регистрация и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
}

// Register создаёт пользователя и сразу выдаёт токен.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := middleware.BuildJWT(user.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Register: failed to build token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	_ = middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret)

	writeJSON(w, http.StatusCreated, authResponse{Token: token, UserID: user.ID, Login: user.Login})
}

// Login проверяет учётные данные и выдаёт токен.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := middleware.BuildJWT(user.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Login: failed to build token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	_ = middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret)

	writeJSON(w, http.StatusOK, authResponse{Token: token, UserID: user.ID, Login: user.Login})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"FileVault/internal/model"
	"FileVault/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeServiceError маппит ошибки бизнес-уровня в HTTP-статусы.
// NotFound и Denied различаются: маскировку Denied под NotFound при
// необходимости делает конкретный маршрут, не этот маппер.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrDenied):
		writeMessage(w, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrShareExists):
		writeMessage(w, http.StatusConflict, "file already shared with this user")
	case errors.Is(err, service.ErrInvalidGrantee):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrLoginTaken):
		writeMessage(w, http.StatusConflict, "login already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrStorageUnavailable):
		writeMessage(w, http.StatusServiceUnavailable, "storage unavailable, retry later")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// fileDTO — представление файла в ответах API.
type fileDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toFileDTO(f *model.File) fileDTO {
	return fileDTO{
		ID:          f.ID,
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
		CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   f.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// paginationDTO — блок пагинации в стиле оригинального API.
type paginationDTO struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

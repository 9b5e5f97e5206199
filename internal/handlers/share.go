package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"FileVault/internal/middleware"
	"FileVault/internal/model"
	"FileVault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShareHandler — выдача, отзыв и просмотр доступов к файлам.
type ShareHandler struct {
	ShareService *service.ShareService
	FileService  *service.FileService
	Authorizer   *service.Authorizer
	Logger       *zap.SugaredLogger
}

func NewShareHandler(shareService *service.ShareService, fileService *service.FileService, authorizer *service.Authorizer, logger *zap.SugaredLogger) *ShareHandler {
	return &ShareHandler{ShareService: shareService, FileService: fileService, Authorizer: authorizer, Logger: logger}
}

type shareRequest struct {
	FileID      string `json:"file_id"`
	Username    string `json:"username"`
	Permission  string `json:"permission"`
	ExpiresDays int    `json:"expires_days"`
}

// shareDTO — представление доступа в ответах API. Owner заполняется
// только в shared-with-me, Grantee — только в my-shares.
type shareDTO struct {
	ID         string   `json:"id"`
	File       *fileDTO `json:"file,omitempty"`
	Owner      string   `json:"owner,omitempty"`
	Grantee    string   `json:"shared_with,omitempty"`
	Permission string   `json:"permission"`
	SharedAt   string   `json:"shared_at"`
	ExpiresAt  *string  `json:"expires_at"`
}

func toShareDTO(s *model.FileShare) shareDTO {
	dto := shareDTO{
		ID:         s.ID,
		Permission: s.Permission,
		SharedAt:   s.SharedAt.UTC().Format(time.RFC3339),
	}
	if s.ExpiresAt != nil {
		v := s.ExpiresAt.UTC().Format(time.RFC3339)
		dto.ExpiresAt = &v
	}
	if s.File != nil {
		f := toFileDTO(s.File)
		dto.File = &f
		if s.File.Owner != nil {
			dto.Owner = s.File.Owner.Login
		}
	}
	if s.Grantee != nil {
		dto.Grantee = s.Grantee.Login
	}
	return dto
}

// Share выдаёт доступ к своему файлу другому пользователю по логину.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileID == "" || req.Username == "" {
		writeMessage(w, http.StatusBadRequest, "file_id and username are required")
		return
	}
	if req.Permission == "" {
		req.Permission = model.PermissionRead
	}

	grant, err := h.ShareService.Grant(r.Context(), req.FileID, userID, req.Username, req.Permission, req.ExpiresDays)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "file shared successfully",
		"share":   toShareDTO(grant),
	})
}

// SharedWithMe — активные доступы, выданные вызывающему, новые первыми.
func (h *ShareHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, perPage := pageParams(r)
	shares, total, err := h.ShareService.ListReceived(r.Context(), userID, page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]shareDTO, 0, len(shares))
	for i := range shares {
		items = append(items, toShareDTO(&shares[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"shares":     items,
		"pagination": paginationDTO{Page: page, PerPage: perPage, Total: total},
	})
}

// MyShares — доступы, которые вызывающий выдал на свои файлы,
// включая истёкшие (владелец видит полную историю).
func (h *ShareHandler) MyShares(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	shares, err := h.ShareService.ListIssued(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]shareDTO, 0, len(shares))
	for i := range shares {
		items = append(items, toShareDTO(&shares[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"shares": items})
}

// Download скачивает расшаренный файл. Авторизатор сам разберётся,
// владелец это или получатель с действующим read-доступом.
func (h *ShareHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := h.Authorizer.Authorize(r.Context(), userID, chi.URLParam(r, "id"), model.PermissionRead)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rc, err := h.FileService.Open(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("Download: stream interrupted", "file_id", f.ID, "error", err)
	}
}

// Revoke отзывает выданный доступ; отзывать может только владелец файла.
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.ShareService.Revoke(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "share revoked successfully")
}

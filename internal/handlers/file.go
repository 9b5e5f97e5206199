package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"FileVault/internal/config"
	"FileVault/internal/middleware"
	"FileVault/internal/model"
	"FileVault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler — загрузка, листинг, скачивание, переименование и удаление файлов.
// Скачивание, переименование и удаление идут через авторизатор: сначала
// "можно ли", потом само действие.
type FileHandler struct {
	FileService *service.FileService
	Authorizer  *service.Authorizer
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewFileHandler(fileService *service.FileService, authorizer *service.Authorizer, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{FileService: fileService, Authorizer: authorizer, Logger: logger, Config: cfg}
}

// Upload принимает multipart/form-data с полем "file".
// Повторная загрузка того же контента — 409 с существующей записью.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	maxContent := h.Config.MaxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxContent+1024*1024) // запас на multipart-обвязку

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxContent {
		writeMessage(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	name := service.SanitizeName(header.Filename)
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "no file selected")
		return
	}
	if !h.extensionAllowed(name) {
		writeMessage(w, http.StatusBadRequest, "file type not allowed")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	record, duplicate, err := h.FileService.Upload(r.Context(), userID, name, contentType, file, header.Size)
	if err != nil {
		h.Logger.Errorw("Upload: service error", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	if duplicate {
		writeJSON(w, http.StatusConflict, map[string]any{
			"message": "file already exists",
			"file":    toFileDTO(record),
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "file uploaded successfully",
		"file":    toFileDTO(record),
	})
}

func (h *FileHandler) extensionAllowed(name string) bool {
	if len(h.Config.AllowedExtensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range h.Config.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// List отдаёт страницу файлов вызывающего, новые первыми.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, perPage := pageParams(r)
	files, total, err := h.FileService.List(r.Context(), userID, page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]fileDTO, 0, len(files))
	for i := range files {
		items = append(items, toFileDTO(&files[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"files":      items,
		"pagination": paginationDTO{Page: page, PerPage: perPage, Total: total},
	})
}

// Get — метаданные собственного файла (owner-only быстрый путь).
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := h.FileService.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"file": toFileDTO(f)})
}

// Download отдаёт контент файла; доступ проверяет авторизатор,
// так что маршрут работает и для владельца, и для получателя доступа.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
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

type renameRequest struct {
	NewName string `json:"new_name"`
}

// Rename меняет отображаемое имя; нужен write-доступ.
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewName == "" {
		writeMessage(w, http.StatusBadRequest, "new name is required")
		return
	}

	f, err := h.Authorizer.Authorize(r.Context(), userID, chi.URLParam(r, "id"), model.PermissionWrite)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	renamed, err := h.FileService.Rename(r.Context(), f.ID, f.OwnerID, req.NewName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "file renamed successfully",
		"file":    toFileDTO(renamed),
	})
}

// Delete удаляет файл, его доступы и, если ссылок больше нет, блоб.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := h.Authorizer.Authorize(r.Context(), userID, chi.URLParam(r, "id"), model.PermissionDelete)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.FileService.Delete(r.Context(), f.ID, f.OwnerID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "file deleted successfully")
}

func pageParams(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return page, perPage
}

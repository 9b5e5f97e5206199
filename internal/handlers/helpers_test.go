package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FileVault/internal/blobstore"
	"FileVault/internal/config"
	"FileVault/internal/handlers"
	"FileVault/internal/middleware"
	"FileVault/internal/model"
	"FileVault/internal/repo"
	"FileVault/internal/service"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"go.uber.org/zap"
)

// newVaultRouter собирает полный стек поверх in-memory SQLite и локального
// блоб-хранилища во временном каталоге. Тесты ходят через роутер, как клиент.
func newVaultRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.File{}, &model.FileShare{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	blobs, err := blobstore.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init blobstore: %v", err)
	}

	cfg := &config.Config{
		AuthSecret:        "test-secret",
		MaxUploadMB:       1,
		AllowedExtensions: []string{"txt", "pdf", "png"},
		ShareTTLDays:      30,
	}
	logger := zap.NewNop().Sugar()

	users := repo.NewUserRepository(db)
	files := repo.NewFileRepository(db)
	shares := repo.NewShareRepository(db)

	userSvc := service.NewUserService(users)
	fileSvc := service.NewFileService(files, blobs, logger)
	shareSvc := service.NewShareService(shares, files, users)
	authorizer := service.NewAuthorizer(files, shares)

	h := handlers.NewHandler(userSvc, fileSvc, shareSvc, authorizer, logger, cfg)
	return h.Router, cfg
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// registerUser регистрирует пользователя через API и возвращает его ID.
func registerUser(t *testing.T, router http.Handler, login string) int64 {
	t.Helper()
	body := fmt.Sprintf(`{"login":%q,"password":"secret"}`, login)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %q: expected 201, got %d: %s", login, rr.Code, rr.Body.String())
	}
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("register %q: bad response: %v", login, err)
	}
	return resp.UserID
}

// uploadFile загружает файл через multipart и возвращает код ответа и id файла (если есть).
func uploadFile(t *testing.T, router http.Handler, userID int64, secret, filename string, content []byte) (int, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("multipart write: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/files/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	addAuthCookie(t, req, userID, secret)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp struct {
		File struct {
			ID string `json:"id"`
		} `json:"file"`
	}
	_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp)
	return rr.Code, resp.File.ID
}

// shareFile выдаёт доступ через API и возвращает код ответа и id доступа.
func shareFile(t *testing.T, router http.Handler, ownerID int64, secret, fileID, username, permission string) (int, string) {
	t.Helper()
	body := fmt.Sprintf(`{"file_id":%q,"username":%q,"permission":%q}`, fileID, username, permission)
	req := httptest.NewRequest(http.MethodPost, "/sharing/share", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthCookie(t, req, ownerID, secret)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp struct {
		Share struct {
			ID string `json:"id"`
		} `json:"share"`
	}
	_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp)
	return rr.Code, resp.Share.ID
}

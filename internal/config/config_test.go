package config

import (
	"flag"
	"os"
	"strings"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("BLOB_BACKEND", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("ALLOWED_EXTENSIONS", "")
	t.Setenv("SHARE_TTL_DAYS", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("ENABLE_HTTPS", "")
	t.Setenv("TOKEN_FILE", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.BlobBackend != "local" {
		t.Fatalf("BlobBackend default expected 'local', got %q", cfg.BlobBackend)
	}
	if cfg.UploadDir != "uploads" {
		t.Fatalf("UploadDir default expected 'uploads', got %q", cfg.UploadDir)
	}
	if cfg.MaxUploadMB != 100 {
		t.Fatalf("MaxUploadMB default expected 100, got %d", cfg.MaxUploadMB)
	}
	if cfg.ShareTTLDays != 30 {
		t.Fatalf("ShareTTLDays default expected 30, got %d", cfg.ShareTTLDays)
	}
	if len(cfg.AllowedExtensions) == 0 {
		t.Fatal("AllowedExtensions default must be non-empty")
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.TokenFile == "" {
		t.Fatal("TokenFile default must be non-empty")
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("BLOB_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("ALLOWED_EXTENSIONS", "PDF, txt")
	t.Setenv("SHARE_TTL_DAYS", "7")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "example.com:443" {
		t.Fatalf("BaseURL expected 'example.com:443', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.BlobBackend != "minio" || cfg.MinioEndpoint != "minio.local:9000" {
		t.Fatalf("minio settings not picked up: backend=%q endpoint=%q", cfg.BlobBackend, cfg.MinioEndpoint)
	}
	if cfg.MaxUploadMB != 10 {
		t.Fatalf("MaxUploadMB expected 10, got %d", cfg.MaxUploadMB)
	}
	if cfg.ShareTTLDays != 7 {
		t.Fatalf("ShareTTLDays expected 7, got %d", cfg.ShareTTLDays)
	}
	// расширения нормализуются: нижний регистр, без пробелов
	want := []string{"pdf", "txt"}
	if len(cfg.AllowedExtensions) != 2 || cfg.AllowedExtensions[0] != want[0] || cfg.AllowedExtensions[1] != want[1] {
		t.Fatalf("AllowedExtensions expected %v, got %v", want, cfg.AllowedExtensions)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
}

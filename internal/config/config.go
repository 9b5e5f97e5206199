package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Blob storage: local (каталог на диске) либо minio (S3-совместимое)
	BlobBackend    string `env:"BLOB_BACKEND"`
	UploadDir      string `env:"UPLOAD_DIR"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`

	// Upload policy
	MaxUploadMB       int64    `env:"MAX_UPLOAD_MB"`
	AllowedExtensions []string `env:"ALLOWED_EXTENSIONS" envSeparator:","`

	// Sharing
	ShareTTLDays int `env:"SHARE_TTL_DAYS"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BlobBackend, "blob-backend", cfg.BlobBackend, "хранилище контента: local или minio")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для контента при blob-backend=local")
	flag.StringVar(&cfg.MinioEndpoint, "minio-endpoint", cfg.MinioEndpoint, "адрес MinIO/S3")
	flag.StringVar(&cfg.MinioBucket, "minio-bucket", cfg.MinioBucket, "бакет MinIO/S3")
	flag.Int64Var(&cfg.MaxUploadMB, "max-upload-mb", cfg.MaxUploadMB, "максимальный размер загружаемого файла, МБ")
	flag.IntVar(&cfg.ShareTTLDays, "share-ttl-days", cfg.ShareTTLDays, "срок доступа по умолчанию, дней")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the vault server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.BlobBackend == "" {
		cfg.BlobBackend = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.MinioBucket == "" {
		cfg.MinioBucket = "vault"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 100
	}
	if cfg.ShareTTLDays <= 0 {
		cfg.ShareTTLDays = 30
	}
	exts := make([]string, 0, len(cfg.AllowedExtensions))
	for _, e := range cfg.AllowedExtensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			exts = append(exts, e)
		}
	}
	cfg.AllowedExtensions = exts
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = []string{"txt", "pdf", "png", "jpg", "jpeg", "gif", "doc", "docx", "xls", "xlsx", "zip"}
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".vault_token")
	}
}

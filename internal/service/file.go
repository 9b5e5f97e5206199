package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"FileVault/internal/blobstore"
	"FileVault/internal/fingerprint"
	"FileVault/internal/model"
	"FileVault/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// FileService — каталог файлов: загрузка с дедупликацией, переименование,
// удаление с каскадом и листинг. Байты живут в блоб-хранилище, метаданные в БД.
type FileService struct {
	files repo.FileRepository
	blobs blobstore.Store
	log   *zap.SugaredLogger
}

func NewFileService(files repo.FileRepository, blobs blobstore.Store, log *zap.SugaredLogger) *FileService {
	return &FileService{files: files, blobs: blobs, log: log}
}

// Upload сохраняет контент и создаёт запись файла.
// Если у владельца уже есть файл с тем же отпечатком, возвращается существующая
// запись и duplicate=true; новые байты при этом не пишутся. Это не ошибка,
// а идемпотентный исход — решение о сообщении пользователю за вызывающим.
func (s *FileService) Upload(ctx context.Context, ownerID int64, name, contentType string, r io.ReadSeeker, size int64) (*model.File, bool, error) {
	hash, err := fingerprint.Reader(r)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// быстрый путь: дубликат виден до записи байтов
	if existing, err := s.files.GetByOwnerAndHash(ctx, ownerID, hash); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	key := fmt.Sprintf("%d/%s", ownerID, uuid.New().String())
	if err := s.blobs.Put(ctx, key, r, size, contentType); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	f := &model.File{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        name,
		StorageKey:  key,
		Size:        size,
		ContentType: contentType,
		ContentHash: hash,
	}

	created, err := s.files.CreateIfAbsent(ctx, f)
	if err != nil {
		// метаданные не записались — подчищаем осиротевший блоб
		s.cleanupBlob(ctx, key)
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !created {
		// гонка: параллельная загрузка того же контента успела первой
		s.cleanupBlob(ctx, key)
		existing, err := s.files.GetByOwnerAndHash(ctx, ownerID, hash)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return existing, true, nil
	}
	return f, false, nil
}

// cleanupBlob — компенсирующее удаление, best effort: неудачу только логируем.
func (s *FileService) cleanupBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warnw("failed to clean up orphaned blob", "key", key, "error", err)
	}
}

// Get — owner-only чтение метаданных; чужие и несуществующие — ErrNotFound.
func (s *FileService) Get(ctx context.Context, fileID string, ownerID int64) (*model.File, error) {
	f, err := s.files.GetByIDAndOwner(ctx, fileID, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return f, nil
}

// Open отдаёт поток контента файла из блоб-хранилища.
func (s *FileService) Open(ctx context.Context, f *model.File) (io.ReadCloser, error) {
	rc, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return rc, nil
}

// Rename меняет отображаемое имя. Идентичность файла (id, ключ, отпечаток,
// владелец) не затрагивается.
func (s *FileService) Rename(ctx context.Context, fileID string, ownerID int64, newName string) (*model.File, error) {
	clean := SanitizeName(newName)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty name after sanitization", ErrInvalidArgument)
	}

	rows, err := s.files.UpdateName(ctx, fileID, ownerID, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return f, nil
}

// Delete удаляет запись вместе со всеми выданными доступами (каскад) и убирает
// блоб, если на его ключ больше не ссылается ни одна запись.
func (s *FileService) Delete(ctx context.Context, fileID string, ownerID int64) error {
	f, err := s.files.GetByIDAndOwner(ctx, fileID, ownerID)
	if err != nil {
		return mapRepoErr(err)
	}

	if err := s.files.DeleteCascade(ctx, f.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	refs, err := s.files.CountByStorageKey(ctx, f.StorageKey)
	if err != nil {
		s.log.Warnw("failed to count storage key references, keeping blob", "key", f.StorageKey, "error", err)
		return nil
	}
	if refs == 0 {
		s.cleanupBlob(ctx, f.StorageKey)
	}
	return nil
}

// List — страница файлов владельца, новые первыми.
func (s *FileService) List(ctx context.Context, ownerID int64, page, perPage int) ([]model.File, int64, error) {
	offset, limit := pageBounds(page, perPage)
	files, total, err := s.files.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return files, total, nil
}

func pageBounds(page, perPage int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPageSize
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}
	return (page - 1) * perPage, perPage
}

func mapRepoErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// непечатаемые символы ASCII плюс разделители путей
var unsafeNameChars = regexp.MustCompile(`[\x00-\x1f\x7f/\\]`)

// SanitizeName чистит пользовательское имя файла: убирает разделители путей и
// управляющие символы, схлопывает ведущие точки. Аналог werkzeug secure_filename.
func SanitizeName(name string) string {
	clean := unsafeNameChars.ReplaceAllString(name, "")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimLeft(clean, ".")
	return clean
}

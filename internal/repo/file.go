package repo

import (
	"context"

	"FileVault/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FileRepository — контракт доступа к записям файлов.
// Дедупликация опирается на уникальный индекс (owner_id, content_hash):
// гонка параллельных загрузок решается на уровне БД, не приложения.
type FileRepository interface {
	// CreateIfAbsent пытается создать запись. Если у владельца уже есть файл
	// с таким content_hash — ничего не делает и возвращает created=false.
	CreateIfAbsent(ctx context.Context, f *model.File) (created bool, err error)

	// GetByOwnerAndHash возвращает запись владельца с данным отпечатком контента.
	GetByOwnerAndHash(ctx context.Context, ownerID int64, hash string) (*model.File, error)

	// GetByID возвращает запись без проверки владения (для авторизатора).
	GetByID(ctx context.Context, id string) (*model.File, error)

	// GetByIDAndOwner возвращает запись, только если она принадлежит ownerID.
	GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*model.File, error)

	// UpdateName меняет отображаемое имя; updated_at обновляет gorm.
	// Возвращает число затронутых строк (0 — нет такой записи у владельца).
	UpdateName(ctx context.Context, id string, ownerID int64, name string) (int64, error)

	// DeleteCascade в одной транзакции удаляет все доступы файла и саму запись.
	DeleteCascade(ctx context.Context, id string) error

	// ListByOwner возвращает страницу записей владельца, новые первыми, и общее число.
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.File, int64, error)

	// CountByStorageKey считает записи, ссылающиеся на данный ключ хранилища.
	CountByStorageKey(ctx context.Context, key string) (int64, error)
}

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepository создаёт реализацию репозитория для File.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) CreateIfAbsent(ctx context.Context, f *model.File) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "content_hash"}},
		DoNothing: true,
	}).Create(f)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *fileRepo) GetByOwnerAndHash(ctx context.Context, ownerID int64, hash string) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND content_hash = ?", ownerID, hash).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) GetByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) UpdateName(ctx context.Context, id string, ownerID int64, name string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("name", name)
	return tx.RowsAffected, tx.Error
}

func (r *fileRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", id).Delete(&model.FileShare{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.File{}).Error
	})
}

func (r *fileRepo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.File, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.File{}).
		Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []model.File
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&files).Error
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (r *fileRepo) CountByStorageKey(ctx context.Context, key string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("storage_key = ?", key).
		Count(&n).Error
	return n, err
}

package repo

import (
	"context"
	"time"

	"FileVault/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShareRepository — контракт доступа к записям о шаринге.
// Единственность активного доступа обеспечивает уникальный индекс
// (file_id, grantee_id); протухшая запись при новой выдаче заменяется.
type ShareRepository interface {
	// CreateIfAbsent в одной транзакции снимает протухший доступ пары
	// (file_id, grantee_id) и вставляет новый. Если активный доступ уже
	// существует — возвращает created=false.
	CreateIfAbsent(ctx context.Context, s *model.FileShare, now time.Time) (created bool, err error)

	// GetByID возвращает доступ вместе с файлом (нужен владелец файла для revoke).
	GetByID(ctx context.Context, id string) (*model.FileShare, error)

	// GetActive возвращает действующий на момент now доступ пары, если он есть.
	GetActive(ctx context.Context, fileID string, granteeID int64, now time.Time) (*model.FileShare, error)

	// Delete удаляет доступ; возвращает число затронутых строк.
	Delete(ctx context.Context, id string) (int64, error)

	// ListReceived — страница действующих доступов получателя, новые первыми,
	// с файлом и его владельцем; протухшие исключены.
	ListReceived(ctx context.Context, granteeID int64, now time.Time, offset, limit int) ([]model.FileShare, int64, error)

	// ListIssued — все доступы к файлам владельца, включая протухшие,
	// с файлом и получателем. Без пагинации: владельцу нужна полная картина.
	ListIssued(ctx context.Context, ownerID int64) ([]model.FileShare, error)
}

type shareRepo struct {
	db *gorm.DB
}

// NewShareRepository создаёт реализацию репозитория для FileShare.
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepo{db: db}
}

func (r *shareRepo) CreateIfAbsent(ctx context.Context, s *model.FileShare, now time.Time) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// место освобождается только от протухшей записи; активную не трогаем
		if err := tx.Where("file_id = ? AND grantee_id = ? AND expires_at IS NOT NULL AND expires_at <= ?",
			s.FileID, s.GranteeID, now).Delete(&model.FileShare{}).Error; err != nil {
			return err
		}
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_id"}, {Name: "grantee_id"}},
			DoNothing: true,
		}).Create(s)
		if ins.Error != nil {
			return ins.Error
		}
		created = ins.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *shareRepo) GetByID(ctx context.Context, id string) (*model.FileShare, error) {
	var s model.FileShare
	err := r.db.WithContext(ctx).Preload("File").Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shareRepo) GetActive(ctx context.Context, fileID string, granteeID int64, now time.Time) (*model.FileShare, error) {
	var s model.FileShare
	err := r.db.WithContext(ctx).
		Where("file_id = ? AND grantee_id = ? AND (expires_at IS NULL OR expires_at > ?)",
			fileID, granteeID, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shareRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FileShare{})
	return tx.RowsAffected, tx.Error
}

func (r *shareRepo) ListReceived(ctx context.Context, granteeID int64, now time.Time, offset, limit int) ([]model.FileShare, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.FileShare{}).
		Where("grantee_id = ? AND expires_at > ?", granteeID, now).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shares []model.FileShare
	err := r.db.WithContext(ctx).
		Where("grantee_id = ? AND expires_at > ?", granteeID, now).
		Preload("File").
		Preload("File.Owner").
		Order("shared_at DESC").
		Offset(offset).Limit(limit).
		Find(&shares).Error
	if err != nil {
		return nil, 0, err
	}
	return shares, total, nil
}

func (r *shareRepo) ListIssued(ctx context.Context, ownerID int64) ([]model.FileShare, error) {
	var shares []model.FileShare
	err := r.db.WithContext(ctx).
		Joins("JOIN files ON files.id = file_shares.file_id").
		Where("files.owner_id = ?", ownerID).
		Preload("File").
		Preload("Grantee").
		Order("file_shares.shared_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

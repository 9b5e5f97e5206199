package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FileVault/internal/model"
	"FileVault/internal/repo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultShareTTLDays — срок действия доступа, если вызывающий его не указал.
const DefaultShareTTLDays = 30

// ShareService — реестр выданных доступов: выдача, отзыв и обзор.
// Владелец файла выдаёт доступ другому пользователю на ограниченный срок;
// протухшая запись остаётся в базе, но ничего не разрешает.
type ShareService struct {
	shares repo.ShareRepository
	files  repo.FileRepository
	users  repo.UserRepository

	now func() time.Time
}

func NewShareService(shares repo.ShareRepository, files repo.FileRepository, users repo.UserRepository) *ShareService {
	return &ShareService{shares: shares, files: files, users: users, now: time.Now}
}

// Grant выдаёт получателю granteeLogin доступ к файлу на ttlDays дней
// (0 — срок по умолчанию). Выдавать может только владелец файла; самому себе
// доступ не выдаётся; при живом доступе на эту пару — ErrShareExists.
func (s *ShareService) Grant(ctx context.Context, fileID string, ownerID int64, granteeLogin, permission string, ttlDays int) (*model.FileShare, error) {
	if !validPermission(permission) {
		return nil, fmt.Errorf("%w: unknown permission %q", ErrInvalidArgument, permission)
	}
	if ttlDays < 0 {
		return nil, fmt.Errorf("%w: negative ttl", ErrInvalidArgument)
	}
	if ttlDays == 0 {
		ttlDays = DefaultShareTTLDays
	}

	if _, err := s.files.GetByIDAndOwner(ctx, fileID, ownerID); err != nil {
		return nil, mapRepoErr(err)
	}

	grantee, err := s.users.GetUserByLogin(ctx, granteeLogin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q does not exist", ErrInvalidGrantee, granteeLogin)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if grantee.ID == ownerID {
		return nil, fmt.Errorf("%w: cannot share with yourself", ErrInvalidGrantee)
	}

	now := s.now().UTC()
	expires := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	share := &model.FileShare{
		ID:         uuid.New().String(),
		FileID:     fileID,
		GranteeID:  grantee.ID,
		Permission: permission,
		SharedAt:   now,
		ExpiresAt:  &expires,
	}

	created, err := s.shares.CreateIfAbsent(ctx, share, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !created {
		return nil, ErrShareExists
	}
	return share, nil
}

// Revoke снимает доступ. Чужие и несуществующие доступы неразличимы — ErrNotFound;
// повторный вызов тоже вернёт ErrNotFound, владение перепроверяется каждый раз.
func (s *ShareService) Revoke(ctx context.Context, grantID string, ownerID int64) error {
	share, err := s.shares.GetByID(ctx, grantID)
	if err != nil {
		return mapRepoErr(err)
	}
	if share.File == nil || share.File.OwnerID != ownerID {
		return ErrNotFound
	}

	rows, err := s.shares.Delete(ctx, grantID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReceived — действующие доступы получателя; протухшие молча исключаются.
func (s *ShareService) ListReceived(ctx context.Context, granteeID int64, page, perPage int) ([]model.FileShare, int64, error) {
	offset, limit := pageBounds(page, perPage)
	shares, total, err := s.shares.ListReceived(ctx, granteeID, s.now().UTC(), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return shares, total, nil
}

// ListIssued — все выдачи владельца, включая протухшие: для аудита и повторной
// выдачи владельцу нужна полная картина.
func (s *ShareService) ListIssued(ctx context.Context, ownerID int64) ([]model.FileShare, error) {
	shares, err := s.shares.ListIssued(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return shares, nil
}

func validPermission(p string) bool {
	switch p {
	case model.PermissionRead, model.PermissionWrite, model.PermissionDelete:
		return true
	}
	return false
}

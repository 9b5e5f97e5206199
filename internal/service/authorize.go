package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FileVault/internal/model"
	"FileVault/internal/repo"

	"gorm.io/gorm"
)

// permissionRank задаёт строгую иерархию прав: delete ⊇ write ⊇ read.
var permissionRank = map[string]int{
	model.PermissionRead:   1,
	model.PermissionWrite:  2,
	model.PermissionDelete: 3,
}

// Authorizer отвечает на вопрос "может ли пользователь U выполнить действие A
// над файлом F". Владелец может всё; остальным нужен действующий доступ,
// право которого покрывает запрошенное действие. Сам авторизатор ничего не
// выполняет — действие остаётся за каталогом файлов и блоб-хранилищем.
type Authorizer struct {
	files  repo.FileRepository
	shares repo.ShareRepository

	now func() time.Time
}

func NewAuthorizer(files repo.FileRepository, shares repo.ShareRepository) *Authorizer {
	return &Authorizer{files: files, shares: shares, now: time.Now}
}

// Authorize возвращает запись файла, если действие разрешено.
// Несуществующий файл — ErrNotFound; недостаток прав — ErrDenied.
func (a *Authorizer) Authorize(ctx context.Context, requesterID int64, fileID, action string) (*model.File, error) {
	need, ok := permissionRank[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, action)
	}

	f, err := a.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if f.OwnerID == requesterID {
		return f, nil
	}

	share, err := a.shares.GetActive(ctx, fileID, requesterID, a.now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDenied
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if permissionRank[share.Permission] < need {
		return nil, ErrDenied
	}
	return f, nil
}

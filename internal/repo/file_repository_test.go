package repo

import (
	"context"
	"testing"
	"time"

	"FileVault/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, login string) *model.User {
	t.Helper()
	u := &model.User{Login: login, Password: "hash"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func newFile(ownerID int64, name, hash string) *model.File {
	return &model.File{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        name,
		StorageKey:  uuid.New().String(),
		Size:        3,
		ContentType: "text/plain",
		ContentHash: hash,
	}
}

func TestFileRepository_CreateIfAbsent_Dedup(t *testing.T) {
	db := newTestDB(t)
	r := NewFileRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	const hash = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	created, err := r.CreateIfAbsent(ctx, newFile(owner.ID, "a.txt", hash))
	assert.NoError(t, err)
	assert.True(t, created)

	// тот же контент у того же владельца — вставки нет
	created, err = r.CreateIfAbsent(ctx, newFile(owner.ID, "copy.txt", hash))
	assert.NoError(t, err)
	assert.False(t, created)

	existing, err := r.GetByOwnerAndHash(ctx, owner.ID, hash)
	assert.NoError(t, err)
	assert.Equal(t, "a.txt", existing.Name)

	// тот же контент у другого владельца — отдельная запись
	other := seedUser(t, db, "other")
	created, err = r.CreateIfAbsent(ctx, newFile(other.ID, "b.txt", hash))
	assert.NoError(t, err)
	assert.True(t, created)
}

func TestFileRepository_OwnershipLookups(t *testing.T) {
	db := newTestDB(t)
	r := NewFileRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	stranger := seedUser(t, db, "stranger")

	f := newFile(owner.ID, "doc.pdf", "bbbb")
	_, err := r.CreateIfAbsent(ctx, f)
	assert.NoError(t, err)

	// GetByID не проверяет владение
	got, err := r.GetByID(ctx, f.ID)
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, got.OwnerID)

	// GetByIDAndOwner для чужого — ErrRecordNotFound
	_, err = r.GetByIDAndOwner(ctx, f.ID, stranger.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	got, err = r.GetByIDAndOwner(ctx, f.ID, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
}

func TestFileRepository_UpdateName(t *testing.T) {
	db := newTestDB(t)
	r := NewFileRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	f := newFile(owner.ID, "old.txt", "cccc")
	_, err := r.CreateIfAbsent(ctx, f)
	assert.NoError(t, err)

	rows, err := r.UpdateName(ctx, f.ID, owner.ID, "new.txt")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	got, _ := r.GetByID(ctx, f.ID)
	assert.Equal(t, "new.txt", got.Name)
	// ключ и отпечаток не меняются
	assert.Equal(t, f.StorageKey, got.StorageKey)
	assert.Equal(t, f.ContentHash, got.ContentHash)

	// чужой владелец — ноль строк
	rows, err = r.UpdateName(ctx, f.ID, owner.ID+100, "x")
	assert.NoError(t, err)
	assert.Zero(t, rows)
}

func TestFileRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	r := NewFileRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	grantee := seedUser(t, db, "grantee")

	f := newFile(owner.ID, "shared.txt", "dddd")
	_, err := r.CreateIfAbsent(ctx, f)
	assert.NoError(t, err)

	share := &model.FileShare{
		ID:         uuid.New().String(),
		FileID:     f.ID,
		GranteeID:  grantee.ID,
		Permission: model.PermissionRead,
	}
	assert.NoError(t, db.Create(share).Error)

	assert.NoError(t, r.DeleteCascade(ctx, f.ID))

	_, err = r.GetByID(ctx, f.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	var nShares int64
	db.Model(&model.FileShare{}).Where("file_id = ?", f.ID).Count(&nShares)
	assert.Zero(t, nShares)
}

func TestFileRepository_ListByOwner_Pagination(t *testing.T) {
	db := newTestDB(t)
	r := NewFileRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hashes := []string{"h1", "h2", "h3"}
	for i, h := range hashes {
		f := newFile(owner.ID, h+".txt", h)
		_, err := r.CreateIfAbsent(ctx, f)
		assert.NoError(t, err)
		// created_at с разным значением, чтобы порядок был детерминирован
		db.Model(&model.File{}).Where("id = ?", f.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Hour))
	}

	files, total, err := r.ListByOwner(ctx, owner.ID, 0, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, total)
	if assert.Len(t, files, 2) {
		// новые первыми
		assert.Equal(t, "h3.txt", files[0].Name)
		assert.Equal(t, "h2.txt", files[1].Name)
	}

	files, _, err = r.ListByOwner(ctx, owner.ID, 2, 2)
	assert.NoError(t, err)
	if assert.Len(t, files, 1) {
		assert.Equal(t, "h1.txt", files[0].Name)
	}
}

func TestFileRepository_CountByStorageKey(t *testing.T) {
	db := newTestDB(t)
	r := NewFileRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	f := newFile(owner.ID, "x.txt", "eeee")
	_, err := r.CreateIfAbsent(ctx, f)
	assert.NoError(t, err)

	n, err := r.CountByStorageKey(ctx, f.StorageKey)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = r.CountByStorageKey(ctx, "missing-key")
	assert.NoError(t, err)
	assert.Zero(t, n)
}

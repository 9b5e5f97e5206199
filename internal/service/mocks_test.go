package service

import (
	"context"
	"io"
	"time"

	"FileVault/internal/blobstore"
	"FileVault/internal/model"
	"FileVault/internal/repo"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.FileRepository
type mockFileRepo struct{ mock.Mock }

func (m *mockFileRepo) CreateIfAbsent(ctx context.Context, f *model.File) (bool, error) {
	args := m.Called(ctx, f)
	return args.Bool(0), args.Error(1)
}

func (m *mockFileRepo) GetByOwnerAndHash(ctx context.Context, ownerID int64, hash string) (*model.File, error) {
	args := m.Called(ctx, ownerID, hash)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) GetByID(ctx context.Context, id string) (*model.File, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*model.File, error) {
	args := m.Called(ctx, id, ownerID)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) UpdateName(ctx context.Context, id string, ownerID int64, name string) (int64, error) {
	args := m.Called(ctx, id, ownerID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFileRepo) DeleteCascade(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFileRepo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.File, int64, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	var files []model.File
	if v, ok := args.Get(0).([]model.File); ok {
		files = v
	}
	return files, args.Get(1).(int64), args.Error(2)
}

func (m *mockFileRepo) CountByStorageKey(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.FileRepository = (*mockFileRepo)(nil)

// мок для repo.ShareRepository
type mockShareRepo struct{ mock.Mock }

func (m *mockShareRepo) CreateIfAbsent(ctx context.Context, s *model.FileShare, now time.Time) (bool, error) {
	args := m.Called(ctx, s, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockShareRepo) GetByID(ctx context.Context, id string) (*model.FileShare, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*model.FileShare); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShareRepo) GetActive(ctx context.Context, fileID string, granteeID int64, now time.Time) (*model.FileShare, error) {
	args := m.Called(ctx, fileID, granteeID, now)
	if s, ok := args.Get(0).(*model.FileShare); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShareRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockShareRepo) ListReceived(ctx context.Context, granteeID int64, now time.Time, offset, limit int) ([]model.FileShare, int64, error) {
	args := m.Called(ctx, granteeID, now, offset, limit)
	var shares []model.FileShare
	if v, ok := args.Get(0).([]model.FileShare); ok {
		shares = v
	}
	return shares, args.Get(1).(int64), args.Error(2)
}

func (m *mockShareRepo) ListIssued(ctx context.Context, ownerID int64) ([]model.FileShare, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.FileShare); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ShareRepository = (*mockShareRepo)(nil)

// мок для blobstore.Store
type mockBlobStore struct{ mock.Mock }

func (m *mockBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, r, size, contentType).Error(0)
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

var _ blobstore.Store = (*mockBlobStore)(nil)

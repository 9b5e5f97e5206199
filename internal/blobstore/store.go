package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound возвращается Get, когда объекта с таким ключом нет.
var ErrNotFound = errors.New("blobstore: object not found")

// Store — контракт блоб-хранилища. Контент непрозрачен, ключ задаёт вызывающий.
// Put атомарен с точки зрения читателей: либо ключ указывает на полностью
// записанный объект, либо объекта нет вовсе. Delete идемпотентен.
// Подсчётом ссылок хранилище не занимается — это ответственность каталога файлов.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

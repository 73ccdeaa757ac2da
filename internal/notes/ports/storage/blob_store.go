// Package storage определяет интерфейс бинарного хранилища вложений.
package storage

import "context"

// BlobStore хранит содержимое вложений по относительному пути.
// Remove не считает отсутствие файла ошибкой.
type BlobStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Open(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

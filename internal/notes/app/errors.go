// Package app implements application business logic for the notes service.
package app

import "errors"

// Ошибки уровня бизнес-логики. HTTP-адаптер сопоставляет их со статусами:
// ErrValidation - 400, ErrNotFound - 404, остальные - 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("invalid parameters")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStorageIO        = errors.New("storage failure")
)

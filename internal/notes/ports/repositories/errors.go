package repositories

import "errors"

// Ошибки хранилища, различимые бизнес-логикой. Возвращаются, когда
// запись исчезла между проверкой существования и самой операцией.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrFileNotFound = errors.New("file not found")
)

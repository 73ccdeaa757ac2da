package client

import "errors"

// Ошибки API клиента.
var (
	// ErrNotFound возвращается, когда сервер не нашел сущность.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest возвращается при отклоненном сервером запросе.
	ErrBadRequest = errors.New("bad request")
	// ErrServer возвращается при внутренней ошибке сервера.
	ErrServer = errors.New("server error")
)

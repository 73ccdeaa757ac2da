// Package httperr отображает ошибки бизнес-логики в HTTP-статусы.
package httperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"notedeck/internal/notes/app"
)

// Сообщения об ошибках для клиента.
const (
	MsgNotFound       = "Not found"
	MsgInternalError  = "Internal server error"
	MsgInvalidRequest = "Invalid request"
)

// Handle обрабатывает ошибки и возвращает соответствующий HTTP-статус.
// Пятисотые ответы несут текст сентинела, а не обернутой ошибки драйвера:
// клиенту достаточно различить недоступность хранилища, чтобы перейти
// на локальную копию.
func Handle(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := MsgInternalError

	switch {
	case errors.Is(err, app.ErrValidation):
		status = fiber.StatusBadRequest
		message = MsgInvalidRequest
	case errors.Is(err, app.ErrNotFound):
		status = fiber.StatusNotFound
		message = MsgNotFound
	case errors.Is(err, app.ErrStoreUnavailable):
		message = app.ErrStoreUnavailable.Error()
	case errors.Is(err, app.ErrStorageIO):
		message = app.ErrStorageIO.Error()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}

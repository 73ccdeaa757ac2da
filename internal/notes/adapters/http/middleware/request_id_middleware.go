// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notedeck/pkg/logger"
)

// RequestContextKey - ключ Locals, под которым хранится контекст запроса.
const RequestContextKey = "requestContext"

// HeaderRequestID - заголовок с клиентским идентификатором запроса.
const HeaderRequestID = "X-Request-Id"

// NewRequestIDMiddleware снабжает каждый запрос контекстом с request_id.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(RequestContextKey, requestCtx)
		return ctx.Next()
	}
}

// RequestContext извлекает контекст запроса из Locals.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context() // Запасной вариант
}

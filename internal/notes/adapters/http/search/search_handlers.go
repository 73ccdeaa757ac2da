// Package search содержит HTTP-обработчики серверного поиска.
package search

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/notes/adapters/http/httperr"
	"notedeck/internal/notes/adapters/http/middleware"
	"notedeck/internal/notes/ports/services"
	"notedeck/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerSearchTabs        = "handling search tabs request"
	LogHandlerSearchAttachments = "handling search attachments request"
)

// Handler обработчик HTTP-запросов поиска.
type Handler struct {
	searchService services.SearchService
}

// NewHandler создает новый экземпляр обработчика поиска.
func NewHandler(searchService services.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// SearchTabs обрабатывает поиск по именам и содержимому вкладок.
func (h *Handler) SearchTabs(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.SearchTabs"))
	log.Debug(reqCtx, LogHandlerSearchTabs)

	results, err := h.searchService.SearchTabs(reqCtx, ctx.Query("q"))
	if err != nil {
		log.Error(reqCtx, "failed to search tabs", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.JSON(results); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SearchAttachments обрабатывает поиск вложений по имени файла.
func (h *Handler) SearchAttachments(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.SearchAttachments"))
	log.Debug(reqCtx, LogHandlerSearchAttachments)

	results, err := h.searchService.SearchAttachments(reqCtx, ctx.Query("q"))
	if err != nil {
		log.Error(reqCtx, "failed to search attachments", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.JSON(results); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

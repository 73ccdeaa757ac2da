// Package tabs содержит HTTP-обработчики для работы с вкладками заметок.
package tabs

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/notes/adapters/http/httperr"
	"notedeck/internal/notes/adapters/http/middleware"
	"notedeck/internal/notes/app/dto"
	"notedeck/internal/notes/ports/services"
	"notedeck/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListTabs    = "handling list tabs request"
	LogHandlerReplaceTabs = "handling replace tabs request"

	ErrMsgMissingNoteID      = "noteId is required"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgMissingTabs        = "tabs array is required"
)

// Handler обработчик HTTP-запросов для работы с вкладками.
type Handler struct {
	tabsService services.TabsService
}

// NewHandler создает новый экземпляр обработчика вкладок.
func NewHandler(tabsService services.TabsService) *Handler {
	return &Handler{
		tabsService: tabsService,
	}
}

// ListTabs обрабатывает запрос на получение вкладок заметки.
func (h *Handler) ListTabs(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListTabs"))
	log.Debug(reqCtx, LogHandlerListTabs)

	noteID := ctx.Query("noteId")
	if noteID == "" {
		log.Error(reqCtx, ErrMsgMissingNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgMissingNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	tabs, err := h.tabsService.ListByNote(reqCtx, noteID)
	if err != nil {
		log.Error(reqCtx, "failed to list tabs", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.JSON(tabs); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ReplaceTabs обрабатывает полную замену набора вкладок заметки.
func (h *Handler) ReplaceTabs(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ReplaceTabs"))
	log.Debug(reqCtx, LogHandlerReplaceTabs)

	var req dto.ReplaceTabsRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if req.NoteID == "" {
		log.Error(reqCtx, ErrMsgMissingNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgMissingNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if req.Tabs == nil {
		log.Error(reqCtx, ErrMsgMissingTabs)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgMissingTabs,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	count, err := h.tabsService.ReplaceAll(reqCtx, req.NoteID, req.ToInputs())
	if err != nil {
		log.Error(reqCtx, "failed to replace tabs", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.JSON(dto.ReplaceTabsResponse{Count: count}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Package files содержит HTTP-обработчики для работы с вложениями заметок.
package files

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/notes/adapters/http/httperr"
	"notedeck/internal/notes/adapters/http/middleware"
	"notedeck/internal/notes/ports/services"
	"notedeck/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerUploadFile = "handling upload file request"
	LogHandlerListFiles  = "handling list files request"
	LogHandlerGetFile    = "handling get file request"
	LogHandlerDeleteFile = "handling delete file request"

	ErrMsgInvalidNoteID = "invalid note id"
	ErrMsgInvalidFileID = "invalid file id"
	ErrMsgNoFile        = "no file provided"

	MsgFileDeleted = "File deleted successfully"

	// FormFieldFile - имя поля multipart формы с содержимым вложения.
	FormFieldFile = "file"
)

// Handler обработчик HTTP-запросов для работы с вложениями.
type Handler struct {
	filesService services.FilesService
}

// NewHandler создает новый экземпляр обработчика вложений.
func NewHandler(filesService services.FilesService) *Handler {
	return &Handler{
		filesService: filesService,
	}
}

// UploadFile обрабатывает загрузку вложения к заметке.
func (h *Handler) UploadFile(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UploadFile"))
	log.Debug(reqCtx, LogHandlerUploadFile)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(reqCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	fileHeader, err := ctx.FormFile(FormFieldFile)
	if err != nil {
		log.Error(reqCtx, ErrMsgNoFile, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgNoFile,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error(reqCtx, "failed to open uploaded file", zap.Error(err))
		return httperr.Handle(ctx, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Warn(reqCtx, "failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error(reqCtx, "failed to read uploaded file", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	file, err := h.filesService.Upload(reqCtx, noteID, data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Error(reqCtx, "failed to upload file", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(file); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListFiles обрабатывает запрос на получение вложений заметки.
func (h *Handler) ListFiles(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListFiles"))
	log.Debug(reqCtx, LogHandlerListFiles)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(reqCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	files, err := h.filesService.ListByNote(reqCtx, noteID)
	if err != nil {
		log.Error(reqCtx, "failed to list files", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.JSON(files); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetFile отдает содержимое вложения с исходным типом и именем.
func (h *Handler) GetFile(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetFile"))
	log.Debug(reqCtx, LogHandlerGetFile)

	fileID := ctx.Params("file_id")
	if fileID == "" {
		log.Error(reqCtx, ErrMsgInvalidFileID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidFileID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	file, data, err := h.filesService.Get(reqCtx, fileID)
	if err != nil {
		log.Error(reqCtx, "failed to get file", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, file.Mimetype)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))

	if err := ctx.Send(data); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteFile обрабатывает удаление вложения.
func (h *Handler) DeleteFile(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteFile"))
	log.Debug(reqCtx, LogHandlerDeleteFile)

	fileID := ctx.Params("file_id")
	if fileID == "" {
		log.Error(reqCtx, ErrMsgInvalidFileID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidFileID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := h.filesService.Delete(reqCtx, fileID); err != nil {
		log.Error(reqCtx, "failed to delete file", zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	if err := ctx.JSON(fiber.Map{
		"message": MsgFileDeleted,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

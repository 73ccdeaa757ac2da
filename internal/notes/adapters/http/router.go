// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notedeck/internal/notes/adapters/http/files"
	"notedeck/internal/notes/adapters/http/middleware"
	"notedeck/internal/notes/adapters/http/notes"
	"notedeck/internal/notes/adapters/http/search"
	"notedeck/internal/notes/adapters/http/tabs"
	"notedeck/internal/notes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	notesService services.NotesService,
	filesService services.FilesService,
	tabsService services.TabsService,
	searchService services.SearchService,
) {
	notesHandler := notes.NewHandler(notesService)
	filesHandler := files.NewHandler(filesService)
	tabsHandler := tabs.NewHandler(tabsService)
	searchHandler := search.NewHandler(searchService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Заметки.
	app.Get("/notes", notesHandler.ListNotes)
	app.Post("/notes", notesHandler.CreateNote)
	app.Put("/notes", notesHandler.UpdateNote)
	app.Get("/notes/:note_id", notesHandler.GetNote)
	app.Patch("/notes/:note_id", notesHandler.PatchNote)
	app.Delete("/notes/:note_id", notesHandler.DeleteNote)

	// Вложения.
	app.Post("/notes/:note_id/files", filesHandler.UploadFile)
	app.Get("/notes/:note_id/files", filesHandler.ListFiles)
	app.Get("/files/:file_id", filesHandler.GetFile)
	app.Delete("/files/:file_id", filesHandler.DeleteFile)

	// Вкладки.
	app.Get("/tabs", tabsHandler.ListTabs)
	app.Post("/tabs", tabsHandler.ReplaceTabs)

	// Поиск.
	app.Get("/tabs/search", searchHandler.SearchTabs)
	app.Get("/search/attachments", searchHandler.SearchAttachments)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

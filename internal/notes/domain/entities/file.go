package entities

import "time"

// File представляет метаданные вложения, принадлежащего одной заметке.
type File struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"noteId"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Mimetype  string    `json:"mimetype"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

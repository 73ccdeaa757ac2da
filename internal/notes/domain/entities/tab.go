package entities

import "time"

// Ограничения и значения по умолчанию для вкладок.
const (
	// DefaultTabName присваивается вкладке без имени при сохранении.
	DefaultTabName = "Untitled"
	// MaxTabContentLen - максимальная длина содержимого вкладки в символах.
	MaxTabContentLen = 1_000_000
)

// Tab представляет именованную контекстную вкладку заметки.
// Набор вкладок заметки замещается целиком при каждом сохранении,
// поэтому идентификаторы стабильны только если клиент передает их сам.
type Tab struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"noteId"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TruncateTabContent обрезает содержимое вкладки до допустимой длины.
func TruncateTabContent(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxTabContentLen {
		return content
	}
	return string(runes[:MaxTabContentLen])
}

package dto

import "notedeck/internal/notes/app"

// TabPayload - вкладка в запросе на сохранение.
type TabPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ReplaceTabsRequest - тело POST /tabs: полный желаемый набор вкладок заметки.
type ReplaceTabsRequest struct {
	NoteID string       `json:"noteId"`
	Tabs   []TabPayload `json:"tabs"`
}

// ReplaceTabsResponse - ответ POST /tabs.
type ReplaceTabsResponse struct {
	Count int `json:"count"`
}

// ToInputs преобразует вкладки запроса во входные данные бизнес-логики.
func (r *ReplaceTabsRequest) ToInputs() []app.TabInput {
	inputs := make([]app.TabInput, 0, len(r.Tabs))
	for _, tab := range r.Tabs {
		inputs = append(inputs, app.TabInput{
			ID:      tab.ID,
			Name:    tab.Name,
			Content: tab.Content,
		})
	}
	return inputs
}

package entities

import "encoding/json"

// TagType - тег заметки из закрытого словаря.
type TagType string

// Канонический словарь тегов.
// В исходном UI встречался второй, несовместимый набор (work/personal/important/
// idea/todo); каноническим считается словарь селектора тегов.
const (
	TagLink          TagType = "link"
	TagPassword      TagType = "password"
	TagConfiguration TagType = "configuration"
	TagPersonalInfo  TagType = "personalinfo"
	TagProject       TagType = "project"
)

// AllTags перечисляет допустимые теги.
var AllTags = []TagType{TagLink, TagPassword, TagConfiguration, TagPersonalInfo, TagProject}

// Valid проверяет, что тег входит в словарь.
func (t TagType) Valid() bool {
	for _, known := range AllTags {
		if t == known {
			return true
		}
	}
	return false
}

// TagsToJSON сериализует набор тегов в строку для хранения.
func TagsToJSON(tags []TagType) string {
	if tags == nil {
		tags = []TagType{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// JSONToTags разбирает сохраненную строку тегов.
// Пустая или некорректная строка дает пустой набор.
func JSONToTags(raw string) []TagType {
	if raw == "" {
		return []TagType{}
	}
	var tags []TagType
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []TagType{}
	}
	if tags == nil {
		return []TagType{}
	}
	return tags
}

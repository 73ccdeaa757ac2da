package config

// StorageConfig содержит настройки файлового хранилища вложений.
type StorageConfig struct {
	Root string `yaml:"root" env:"NOTES_STORAGE_ROOT" env-default:"./data"`
}

package scoring

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации весов
	ErrInvalidConfig = errors.New("scoring: invalid config")
)

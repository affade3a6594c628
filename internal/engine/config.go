package engine

import "time"

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - мастер-зерно. От него зависят все случайные решения ядра:
	// броски боя, лут, блуждания. Один seed - одна и та же симуляция.
	Seed int64

	// CellSize - размер ячейки пространственного индекса (в тайлах).
	// 0 означает значение по умолчанию.
	CellSize float64
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:     time.Now().UnixNano(),
		CellSize: 0,
	}
}

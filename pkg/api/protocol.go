// Package api описывает структуры сообщений, уходящих наблюдателям
// по WebSocket. Сериализация - стандартный encoding/json.
package api

// Типы исходящих сообщений
const (
	TypeSnapshot = "snapshot"
)

// EntityView - проекция сущности для наблюдателя
type EntityView struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind"` // "player" или "hostile"
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	HP     int     `json:"hp"`
	MaxHP  int     `json:"maxHp"`
	Level  int     `json:"level,omitempty"` // боевой уровень игрока
	State  string  `json:"state,omitempty"` // состояние AI враждебной сущности
	Facing string  `json:"facing"`
	Alive  bool    `json:"alive"`
}

// EventLine - человекочитаемая строка события симуляции
type EventLine struct {
	Tick uint64 `json:"tick"`
	Text string `json:"text"`
}

// Snapshot - полное состояние симуляции на конец тика
type Snapshot struct {
	Type     string       `json:"type"`
	Tick     uint64       `json:"tick"`
	ClockMs  float64      `json:"clockMs"`
	Entities []EntityView `json:"entities"`
	Events   []EventLine  `json:"events,omitempty"`
}

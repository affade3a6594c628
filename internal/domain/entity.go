package domain

// Entity - общая база вариантов Player и Hostile.
//
// Жизненным циклом сущностей владеет внешний мир (спавн-логика):
// ядро симуляции только переключает Alive и двигает позицию,
// оно никогда не создает и не освобождает сущности само.
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Pos - непрерывная позиция (в тайлах, с дробной частью)
	Pos Vec2 `json:"pos"`

	// SpawnPos - точка появления. Центр блужданий и цель отступления.
	SpawnPos Vec2 `json:"spawnPos"`

	Facing Direction `json:"facing"`
	Alive  bool      `json:"alive"`
}

// EntityID возвращает идентификатор (часть контракта Combatant)
func (e *Entity) EntityID() string { return e.ID }

// Position возвращает текущую позицию
func (e *Entity) Position() Vec2 { return e.Pos }

// IsAlive проверяет флаг жизни
func (e *Entity) IsAlive() bool { return e.Alive }

// Face разворачивает сущность по вектору движения
func (e *Entity) Face(dx, dy float64) {
	if dx != 0 || dy != 0 {
		e.Facing = DirectionFrom(dx, dy)
	}
}

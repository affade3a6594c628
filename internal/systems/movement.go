package systems

import (
	"math"

	"runefall-server/internal/domain"
)

// SeekResult - результат одного шага прямого преследования
type SeekResult struct {
	Moved   bool
	Arrived bool
}

// SeekToward двигает сущность по прямой к точке dest со скоростью speed
// (тайлов в секунду). Никакого кеширования пути: каждый тик движение
// пересчитывается заново, что терпимо к движущейся цели.
//
// Если прямой шаг упирается в непроходимый тайл, пробуем скользить вдоль
// препятствия по приоритетной оси (где расстояние больше), затем по второй.
//
// ent и self указывают на одну и ту же сущность: ent дает доступ к базовым
// полям, self нужен индексу, который хранит боевой интерфейс.
func SeekToward(ent *domain.Entity, self domain.Combatant, dest domain.Vec2, speed, dtMs float64, world domain.WalkableMap, index *SpatialIndex) SeekResult {
	if speed <= 0 || dtMs <= 0 {
		return SeekResult{Arrived: ent.Pos.DistanceTo(dest) < domain.SpawnArriveRadius}
	}

	pos := ent.Pos
	dx := dest.X - pos.X
	dy := dest.Y - pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < domain.SpawnArriveRadius {
		return SeekResult{Arrived: true}
	}

	step := speed * dtMs / 1000
	if step > dist {
		step = dist
	}
	stepX := dx / dist * step
	stepY := dy / dist * step

	// Попытка 1: идеальный шаг
	candidates := [3]domain.Vec2{
		pos.Shift(stepX, stepY),
		{},
		{},
	}

	// Попытки 2-3: скольжение по одной оси, приоритет - где дальше
	if math.Abs(dx) > math.Abs(dy) {
		candidates[1] = pos.Shift(stepX, 0)
		candidates[2] = pos.Shift(0, stepY)
	} else {
		candidates[1] = pos.Shift(0, stepY)
		candidates[2] = pos.Shift(stepX, 0)
	}

	for i, next := range candidates {
		// Скольжение по нулевой оси - пустой шаг, пропускаем
		if i > 0 && next.DistanceSquaredTo(pos) < 1e-12 {
			continue
		}
		if world != nil && !world.IsWalkable(next.TileX(), next.TileY()) {
			continue
		}

		ent.Pos = next
		ent.Face(next.X-pos.X, next.Y-pos.Y)
		if index != nil {
			index.Update(self, pos.X, pos.Y)
		}
		return SeekResult{
			Moved:   true,
			Arrived: ent.Pos.DistanceTo(dest) < domain.SpawnArriveRadius,
		}
	}

	// Тупик
	return SeekResult{}
}

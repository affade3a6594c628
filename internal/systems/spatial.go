package systems

import (
	"math"

	"runefall-server/internal/domain"
)

// DefaultCellSize - размер ячейки пространственного индекса в тайлах
const DefaultCellSize = 8.0

// CellKey - координата ячейки равномерной сетки
type CellKey struct {
	X, Y int
}

// SpatialIndex - равномерная сетка по позициям сущностей.
// Отвечает на вопрос "кто рядом с точкой P в радиусе R" почти за константу
// вместо O(n) по всем сущностям.
//
// Инвариант: сущность числится ровно в той ячейке, куда ее положил
// Insert/Update. Изменение позиции мимо Update - ошибка вызывающего,
// индекс такие случаи не чинит.
type SpatialIndex struct {
	cellSize float64
	cells    map[CellKey][]domain.Combatant
}

// NewSpatialIndex создает индекс с заданным размером ячейки
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[CellKey][]domain.Combatant),
	}
}

func (s *SpatialIndex) keyFor(x, y float64) CellKey {
	return CellKey{
		X: int(math.Floor(x / s.cellSize)),
		Y: int(math.Floor(y / s.cellSize)),
	}
}

// Insert добавляет сущность в ячейку по ее текущей позиции
func (s *SpatialIndex) Insert(e domain.Combatant) {
	pos := e.Position()
	key := s.keyFor(pos.X, pos.Y)
	s.cells[key] = append(s.cells[key], e)
}

// Remove удаляет сущность из ячейки по ее текущей позиции
func (s *SpatialIndex) Remove(e domain.Combatant) {
	pos := e.Position()
	s.removeFromCell(e, s.keyFor(pos.X, pos.Y))
}

func (s *SpatialIndex) removeFromCell(e domain.Combatant, key CellKey) {
	entities := s.cells[key]
	for i, other := range entities {
		if other.EntityID() == e.EntityID() {
			// Swap with last: порядок внутри ячейки не важен
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			entities[lastIdx] = nil
			if lastIdx == 0 {
				delete(s.cells, key)
			} else {
				s.cells[key] = entities[:lastIdx]
			}
			return
		}
	}
}

// Update переносит сущность между ячейками после смены позиции.
// Пересчет происходит только если сущность пересекла границу ячейки.
func (s *SpatialIndex) Update(e domain.Combatant, oldX, oldY float64) {
	oldKey := s.keyFor(oldX, oldY)
	pos := e.Position()
	newKey := s.keyFor(pos.X, pos.Y)
	if oldKey == newKey {
		return
	}
	s.removeFromCell(e, oldKey)
	s.cells[newKey] = append(s.cells[newKey], e)
}

// EntitiesInRadius возвращает сущности в круге радиуса r вокруг (x, y).
// Обходятся все ячейки, пересекающие описанный квадрат, затем точная
// фильтрация по евклидову расстоянию.
func (s *SpatialIndex) EntitiesInRadius(x, y, r float64) []domain.Combatant {
	if r < 0 {
		return nil
	}

	minKey := s.keyFor(x-r, y-r)
	maxKey := s.keyFor(x+r, y+r)
	center := domain.Vec2{X: x, Y: y}
	rSq := r * r

	var result []domain.Combatant
	for cy := minKey.Y; cy <= maxKey.Y; cy++ {
		for cx := minKey.X; cx <= maxKey.X; cx++ {
			for _, e := range s.cells[CellKey{X: cx, Y: cy}] {
				if e.Position().DistanceSquaredTo(center) <= rSq {
					result = append(result, e)
				}
			}
		}
	}
	return result
}

// EntitiesInArea возвращает сущности внутри прямоугольника (включительно)
func (s *SpatialIndex) EntitiesInArea(minX, minY, maxX, maxY float64) []domain.Combatant {
	if minX > maxX || minY > maxY {
		return nil
	}

	minKey := s.keyFor(minX, minY)
	maxKey := s.keyFor(maxX, maxY)

	var result []domain.Combatant
	for cy := minKey.Y; cy <= maxKey.Y; cy++ {
		for cx := minKey.X; cx <= maxKey.X; cx++ {
			for _, e := range s.cells[CellKey{X: cx, Y: cy}] {
				pos := e.Position()
				if pos.X >= minX && pos.X <= maxX && pos.Y >= minY && pos.Y <= maxY {
					result = append(result, e)
				}
			}
		}
	}
	return result
}

package domain

import "math"

// Vec2 — непрерывная позиция в мире. Единица измерения — тайл,
// дробная часть означает положение внутри тайла.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquaredTo возвращает квадрат расстояния для сравнения без корней
func (v Vec2) DistanceSquaredTo(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// Shift возвращает новую позицию со смещением (не меняя текущую)
func (v Vec2) Shift(dx, dy float64) Vec2 {
	return Vec2{X: v.X + dx, Y: v.Y + dy}
}

// TileX возвращает X-индекс тайла, в котором находится точка
func (v Vec2) TileX() int { return int(math.Floor(v.X)) }

// TileY возвращает Y-индекс тайла, в котором находится точка
func (v Vec2) TileY() int { return int(math.Floor(v.Y)) }

// Direction — направление взгляда (8 сторон света)
type Direction uint8

const (
	DirSouth Direction = iota
	DirSouthWest
	DirWest
	DirNorthWest
	DirNorth
	DirNorthEast
	DirEast
	DirSouthEast
)

var directionNames = map[Direction]string{
	DirSouth:     "S",
	DirSouthWest: "SW",
	DirWest:      "W",
	DirNorthWest: "NW",
	DirNorth:     "N",
	DirNorthEast: "NE",
	DirEast:      "E",
	DirSouthEast: "SE",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "?"
}

// DirectionFrom возвращает сторону света для вектора движения.
// Ось Y направлена вниз (экранные координаты), поэтому dy > 0 — юг.
func DirectionFrom(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirSouth
	}
	// Угол в восьмых долях окружности
	angle := math.Atan2(dy, dx)
	octant := int(math.Round(4 * angle / math.Pi))
	switch octant {
	case 0:
		return DirEast
	case 1:
		return DirSouthEast
	case 2:
		return DirSouth
	case 3:
		return DirSouthWest
	case -1:
		return DirNorthEast
	case -2:
		return DirNorth
	case -3:
		return DirNorthWest
	default: // 4 или -4
		return DirWest
	}
}

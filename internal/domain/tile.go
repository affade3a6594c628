package domain

// WalkableMap — интерфейс проходимости тайлов.
// Данными о тайлах владеет мир (внешний коллаборатор); симуляция
// только спрашивает, можно ли наступить на клетку.
type WalkableMap interface {
	IsWalkable(x, y int) bool
}

type Tile struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsWall bool   `json:"isWall"`
	Env    string `json:"env"` // floor, stone, grass
}

// TileMap — простая реализация WalkableMap на прямоугольной сетке.
// Используется демо-ареной и тестами; генерация мира остается снаружи.
type TileMap struct {
	Map    [][]Tile `json:"map"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
}

// NewTileMap создает открытую карту (весь пол проходим)
func NewTileMap(width, height int) *TileMap {
	m := &TileMap{
		Map:    make([][]Tile, height),
		Width:  width,
		Height: height,
	}
	for y := 0; y < height; y++ {
		m.Map[y] = make([]Tile, width)
		for x := 0; x < width; x++ {
			m.Map[y][x] = Tile{X: x, Y: y, Env: "floor"}
		}
	}
	return m
}

// SetWall помечает тайл стеной
func (m *TileMap) SetWall(x, y int) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Map[y][x].IsWall = true
	m.Map[y][x].Env = "stone"
}

// IsWalkable проверяет границы и стены
func (m *TileMap) IsWalkable(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return !m.Map[y][x].IsWall
}

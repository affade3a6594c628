package systems

import (
	"container/heap"

	"runefall-server/internal/domain"
)

// Стоимости шагов A*: 10 за ортогональный шаг, 14 за диагональ (≈ 10·√2)
const (
	OrthogonalCost = 10
	DiagonalCost   = 14

	// MaxPathIterations - предохранитель от разбегающегося поиска
	MaxPathIterations = 1000
)

// TilePoint - координата тайла
type TilePoint struct {
	X, Y int
}

// pathNode - транзитный узел поиска, живет только внутри одного FindPath
type pathNode struct {
	pos    TilePoint
	g      int // стоимость пути от старта
	h      int // эвристика до цели
	parent *pathNode
	index  int // индекс в куче (нужен для Fix)
	open   bool
	closed bool
}

func (n *pathNode) f() int { return n.g + n.h }

// openQueue реализует heap.Interface: MinHeap по f = g + h
type openQueue []*pathNode

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].f() == q[j].f() {
		// При равных f предпочитаем узел ближе к цели
		return q[i].h < q[j].h
	}
	return q[i].f() < q[j].f()
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openQueue) Push(x interface{}) {
	n := len(*q)
	node := x.(*pathNode)
	node.index = n
	*q = append(*q, node)
}

func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	node.index = -1
	*q = old[0 : n-1]
	return node
}

var orthoSteps = [4]TilePoint{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
var diagSteps = [4]TilePoint{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

// PathPlanner - поиск пути A* по проходимым тайлам.
// Данными о тайлах владеет мир; планировщик только спрашивает проходимость.
type PathPlanner struct {
	world         domain.WalkableMap
	maxIterations int
}

// NewPathPlanner создает планировщик с дефолтным потолком итераций
func NewPathPlanner(world domain.WalkableMap) *PathPlanner {
	return &PathPlanner{
		world:         world,
		maxIterations: MaxPathIterations,
	}
}

// FindPath ищет путь от start до goal. Возвращает последовательность тайлов
// включая обе крайние точки, либо nil, если пути нет или поиск уперся
// в потолок итераций.
//
// Диагональный сосед допускается только если оба ортогональных тайла рядом
// с диагональю сами проходимы (запрет среза углов сквозь стены).
func (p *PathPlanner) FindPath(start, goal TilePoint, allowDiagonal bool) []TilePoint {
	if p.world == nil {
		return nil
	}
	if !p.world.IsWalkable(start.X, start.Y) || !p.world.IsWalkable(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []TilePoint{start}
	}

	nodes := make(map[TilePoint]*pathNode)
	open := make(openQueue, 0, 64)
	heap.Init(&open)

	startNode := &pathNode{pos: start, g: 0, h: manhattan(start, goal) * OrthogonalCost, open: true}
	nodes[start] = startNode
	heap.Push(&open, startNode)

	iterations := 0
	for open.Len() > 0 {
		iterations++
		if iterations > p.maxIterations {
			return nil
		}

		current := heap.Pop(&open).(*pathNode)
		current.open = false
		current.closed = true

		if current.pos == goal {
			return reconstructPath(current)
		}

		p.expandNeighbors(current, goal, orthoSteps[:], OrthogonalCost, false, nodes, &open)
		if allowDiagonal {
			p.expandNeighbors(current, goal, diagSteps[:], DiagonalCost, true, nodes, &open)
		}
	}

	return nil
}

func (p *PathPlanner) expandNeighbors(current *pathNode, goal TilePoint, steps []TilePoint, cost int, diagonal bool, nodes map[TilePoint]*pathNode, open *openQueue) {
	for _, step := range steps {
		next := TilePoint{X: current.pos.X + step.X, Y: current.pos.Y + step.Y}
		if !p.world.IsWalkable(next.X, next.Y) {
			continue
		}
		if diagonal {
			// Оба ортогональных соседа диагонали должны быть проходимы
			if !p.world.IsWalkable(current.pos.X+step.X, current.pos.Y) ||
				!p.world.IsWalkable(current.pos.X, current.pos.Y+step.Y) {
				continue
			}
		}

		tentativeG := current.g + cost
		node, seen := nodes[next]
		if !seen {
			node = &pathNode{
				pos:    next,
				g:      tentativeG,
				h:      manhattan(next, goal) * OrthogonalCost,
				parent: current,
				open:   true,
			}
			nodes[next] = node
			heap.Push(open, node)
			continue
		}

		if tentativeG >= node.g {
			continue
		}

		// Нашли более дешевый заход в уже известный тайл
		node.g = tentativeG
		node.parent = current
		if node.open {
			heap.Fix(open, node.index)
		} else if node.closed {
			// Эвристика с диагоналями неконсервативна, закрытый узел
			// может подешеветь - возвращаем его в очередь
			node.closed = false
			node.open = true
			heap.Push(open, node)
		}
	}
}

func manhattan(a, b TilePoint) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func reconstructPath(goal *pathNode) []TilePoint {
	// Считаем длину, чтобы выделить слайс одним махом
	length := 0
	for n := goal; n != nil; n = n.parent {
		length++
	}
	path := make([]TilePoint, length)
	for n := goal; n != nil; n = n.parent {
		length--
		path[length] = n.pos
	}
	return path
}

// PathCost возвращает суммарную стоимость шагов пути (в единицах 10/14)
func PathCost(path []TilePoint) int {
	total := 0
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx != 0 && dy != 0 {
			total += DiagonalCost
		} else {
			total += OrthogonalCost
		}
	}
	return total
}

// SmoothPath жадно выбрасывает промежуточные точки: от текущего якоря
// берется самая дальняя точка пути, видимая по прямой, и так далее.
// Возвращаемый путь состоит из меньшего числа длинных прямых сегментов.
func (p *PathPlanner) SmoothPath(path []TilePoint) []TilePoint {
	if len(path) <= 2 {
		return path
	}

	smoothed := []TilePoint{path[0]}
	anchor := 0
	for anchor < len(path)-1 {
		// Ищем самую дальнюю видимую точку
		next := anchor + 1
		for i := len(path) - 1; i > next; i-- {
			if p.lineOfSight(path[anchor], path[i]) {
				next = i
				break
			}
		}
		smoothed = append(smoothed, path[next])
		anchor = next
	}
	return smoothed
}

// lineOfSight проверяет прямую проходимость между двумя тайлами.
// Шагаем по линии Брезенхэма (только целочисленная арифметика),
// каждый пройденный тайл должен быть проходим.
func (p *PathPlanner) lineOfSight(a, b TilePoint) bool {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 < x0 {
		sx = -1
	}
	sy := 1
	if y1 < y0 {
		sy = -1
	}

	err := dx - dy
	for {
		if !p.world.IsWalkable(x0, y0) {
			return false
		}
		if x0 == x1 && y0 == y1 {
			return true
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

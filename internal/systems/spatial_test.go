package systems

import (
	"fmt"
	"math/rand"
	"testing"

	"runefall-server/internal/domain"
)

func newMarker(id string, x, y float64) *domain.Hostile {
	return &domain.Hostile{
		Entity: domain.Entity{
			ID:    id,
			Pos:   domain.Vec2{X: x, Y: y},
			Alive: true,
		},
	}
}

func idsOf(entities []domain.Combatant) map[string]bool {
	ids := make(map[string]bool, len(entities))
	for _, e := range entities {
		ids[e.EntityID()] = true
	}
	return ids
}

func TestSpatialIndex_RadiusQuery(t *testing.T) {
	index := NewSpatialIndex(8)

	near := newMarker("near", 10, 10)
	edge := newMarker("edge", 13, 10) // ровно на границе радиуса
	far := newMarker("far", 30, 30)
	index.Insert(near)
	index.Insert(edge)
	index.Insert(far)

	got := idsOf(index.EntitiesInRadius(10, 10, 3))
	if !got["near"] {
		t.Error("expected 'near' in radius")
	}
	if !got["edge"] {
		t.Error("expected 'edge' exactly on the boundary to be included")
	}
	if got["far"] {
		t.Error("'far' must not be in radius")
	}
}

// Сверка с наивным перебором на случайных позициях,
// включая отрицательные координаты.
func TestSpatialIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	index := NewSpatialIndex(8)

	var all []*domain.Hostile
	for i := 0; i < 200; i++ {
		m := newMarker(fmt.Sprintf("e%d", i), (rng.Float64()-0.5)*100, (rng.Float64()-0.5)*100)
		all = append(all, m)
		index.Insert(m)
	}

	for trial := 0; trial < 25; trial++ {
		cx := (rng.Float64() - 0.5) * 100
		cy := (rng.Float64() - 0.5) * 100
		r := rng.Float64() * 25
		center := domain.Vec2{X: cx, Y: cy}

		expected := make(map[string]bool)
		for _, m := range all {
			if m.Pos.DistanceSquaredTo(center) <= r*r {
				expected[m.ID] = true
			}
		}

		got := idsOf(index.EntitiesInRadius(cx, cy, r))
		if len(got) != len(expected) {
			t.Fatalf("trial %d: got %d entities, want %d", trial, len(got), len(expected))
		}
		for id := range expected {
			if !got[id] {
				t.Fatalf("trial %d: missing entity %s", trial, id)
			}
		}
	}
}

func TestSpatialIndex_UpdateAcrossCellBoundary(t *testing.T) {
	index := NewSpatialIndex(8)
	m := newMarker("mover", 7, 7)
	index.Insert(m)

	// Переходим в соседнюю ячейку
	oldX, oldY := m.Pos.X, m.Pos.Y
	m.Pos = domain.Vec2{X: 9, Y: 9}
	index.Update(m, oldX, oldY)

	if got := idsOf(index.EntitiesInRadius(9, 9, 1)); !got["mover"] {
		t.Error("entity not found at new position")
	}
	if got := idsOf(index.EntitiesInRadius(7, 7, 1)); got["mover"] {
		t.Error("entity still reachable from old position")
	}
}

func TestSpatialIndex_UpdateWithinCellKeepsEntity(t *testing.T) {
	index := NewSpatialIndex(8)
	m := newMarker("mover", 1, 1)
	index.Insert(m)

	oldX, oldY := m.Pos.X, m.Pos.Y
	m.Pos = domain.Vec2{X: 2, Y: 2}
	index.Update(m, oldX, oldY)

	if got := idsOf(index.EntitiesInRadius(2, 2, 1)); !got["mover"] {
		t.Error("entity lost after in-cell move")
	}
}

func TestSpatialIndex_Remove(t *testing.T) {
	index := NewSpatialIndex(8)
	a := newMarker("a", 1, 1)
	b := newMarker("b", 2, 2)
	index.Insert(a)
	index.Insert(b)

	index.Remove(a)

	got := idsOf(index.EntitiesInRadius(1.5, 1.5, 5))
	if got["a"] {
		t.Error("removed entity still in index")
	}
	if !got["b"] {
		t.Error("unrelated entity lost during removal")
	}

	// Повторное удаление - no-op
	index.Remove(a)
}

func TestSpatialIndex_AreaQuery(t *testing.T) {
	index := NewSpatialIndex(8)
	inside := newMarker("inside", 5, 5)
	corner := newMarker("corner", 10, 10) // границы включительно
	outside := newMarker("outside", 10.5, 5)
	index.Insert(inside)
	index.Insert(corner)
	index.Insert(outside)

	got := idsOf(index.EntitiesInArea(0, 0, 10, 10))
	if !got["inside"] || !got["corner"] {
		t.Errorf("expected inside and corner entities, got %v", got)
	}
	if got["outside"] {
		t.Error("entity outside the rect included")
	}
}

func TestSpatialIndex_NegativeRadius(t *testing.T) {
	index := NewSpatialIndex(8)
	index.Insert(newMarker("a", 0, 0))

	if got := index.EntitiesInRadius(0, 0, -1); got != nil {
		t.Errorf("expected nil for negative radius, got %v", got)
	}
}

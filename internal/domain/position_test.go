package domain

import "testing"

func TestVec2_TileCoordinates(t *testing.T) {
	tests := []struct {
		pos  Vec2
		x, y int
	}{
		{Vec2{0.5, 0.5}, 0, 0},
		{Vec2{3.999, 2.0}, 3, 2},
		{Vec2{-0.5, -1.5}, -1, -2},
	}

	for _, tt := range tests {
		if got := tt.pos.TileX(); got != tt.x {
			t.Errorf("%v.TileX() = %d, want %d", tt.pos, got, tt.x)
		}
		if got := tt.pos.TileY(); got != tt.y {
			t.Errorf("%v.TileY() = %d, want %d", tt.pos, got, tt.y)
		}
	}
}

func TestDirectionFrom(t *testing.T) {
	tests := []struct {
		dx, dy   float64
		expected Direction
	}{
		{1, 0, DirEast},
		{-1, 0, DirWest},
		{0, 1, DirSouth},
		{0, -1, DirNorth},
		{1, 1, DirSouthEast},
		{-1, -1, DirNorthWest},
		{0, 0, DirSouth},
	}

	for _, tt := range tests {
		if got := DirectionFrom(tt.dx, tt.dy); got != tt.expected {
			t.Errorf("DirectionFrom(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.expected)
		}
	}
}

func TestEntity_FaceIgnoresZeroVector(t *testing.T) {
	e := Entity{Facing: DirEast}
	e.Face(0, 0)
	if e.Facing != DirEast {
		t.Errorf("zero vector changed facing to %v", e.Facing)
	}
}

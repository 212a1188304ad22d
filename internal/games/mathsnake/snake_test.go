package mathsnake

import (
	"slices"
	"testing"

	"github.com/vovakirdan/math-snake/internal/grid"
)

func TestSnakeMove(t *testing.T) {
	g := testGrid(t)
	s := NewSnake(g, grid.C(5, 5))

	if st := s.Move(DirRight, noCell); st != SnakeAlive {
		t.Fatalf("state = %v", st)
	}
	if s.Head() != grid.C(5, 6) || s.Len() != 1 {
		t.Errorf("head = %v len = %d", s.Head(), s.Len())
	}
	if c, ok := s.Vacated(); !ok || c != grid.C(5, 5) {
		t.Errorf("vacated = %v, %v", c, ok)
	}
}

func TestSnakeGrowsOnTarget(t *testing.T) {
	g := testGrid(t)
	s := NewSnake(g, grid.C(5, 5))

	s.Move(DirDown, grid.C(6, 5))
	want := []grid.Cell{grid.C(6, 5), grid.C(5, 5)}
	if !slices.Equal(s.Body(), want) {
		t.Errorf("body = %v, want %v", s.Body(), want)
	}
	if _, ok := s.Vacated(); ok {
		t.Error("growing move should not vacate a cell")
	}

	s.Move(DirDown, grid.C(0, 0))
	want = []grid.Cell{grid.C(7, 5), grid.C(6, 5)}
	if !slices.Equal(s.Body(), want) {
		t.Errorf("body = %v, want %v", s.Body(), want)
	}
}

func TestSnakeWallCollision(t *testing.T) {
	tests := []struct {
		name string
		head grid.Cell
		dir  Direction
	}{
		{"status row", grid.C(1, 10), DirUp},
		{"bottom", grid.C(19, 10), DirDown},
		{"left", grid.C(10, 0), DirLeft},
		{"right", grid.C(10, 29), DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(testGrid(t), tt.head)
			if st := s.Move(tt.dir, noCell); st != SnakeHitWall {
				t.Fatalf("state = %v, want %v", st, SnakeHitWall)
			}
			if s.Head() != tt.head {
				t.Errorf("head moved to %v", s.Head())
			}
			// Terminal: further moves change nothing.
			if st := s.Move(DirDown, noCell); st != SnakeHitWall || s.Head() != tt.head {
				t.Errorf("snake moved after collision")
			}
		})
	}
}

func TestSnakeSelfCollision(t *testing.T) {
	g := testGrid(t)
	s := newSnakeWithBody(g, grid.C(5, 5), grid.C(5, 4), grid.C(5, 3))

	if st := s.Move(DirLeft, noCell); st != SnakeHitSelf {
		t.Fatalf("state = %v, want %v", st, SnakeHitSelf)
	}
	if s.Alive() {
		t.Error("snake should be dead")
	}
}

func TestSnakeCanFollowItsTail(t *testing.T) {
	g := testGrid(t)
	// A 2x2 loop: the head moves into the cell the tail is leaving.
	s := newSnakeWithBody(g, grid.C(5, 5), grid.C(6, 5), grid.C(6, 6), grid.C(5, 6))

	if st := s.Move(DirRight, noCell); st != SnakeAlive {
		t.Fatalf("state = %v, want alive", st)
	}
	if s.Head() != grid.C(5, 6) {
		t.Errorf("head = %v", s.Head())
	}
}

func TestSnakeOccupiedAndBodyCopy(t *testing.T) {
	g := testGrid(t)
	s := newSnakeWithBody(g, grid.C(3, 3), grid.C(3, 2))
	occ := s.Occupied()
	if occ.Size() != 2 || !occ.Has(grid.C(3, 2)) {
		t.Errorf("occupied size = %d", occ.Size())
	}

	body := s.Body()
	body[0] = grid.C(9, 9)
	if s.Head() != grid.C(3, 3) {
		t.Error("Body must return a copy")
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir        Direction
		dRow, dCol int
	}{
		{DirUp, -1, 0},
		{DirDown, 1, 0},
		{DirLeft, 0, -1},
		{DirRight, 0, 1},
	}
	for _, tt := range tests {
		r, c := tt.dir.Delta()
		if r != tt.dRow || c != tt.dCol {
			t.Errorf("%v.Delta() = %d,%d", tt.dir, r, c)
		}
	}
}

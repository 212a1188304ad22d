package mathsnake

import (
	"github.com/vovakirdan/math-snake/internal/grid"
)

// Direction represents a movement direction. The declaration order is the
// priority used when several directions are active in the same tick.
type Direction int

const (
	DirUp Direction = iota
	DirLeft
	DirDown
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the row and column offset of one step in direction d.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// SnakeState is the snake's collision state.
type SnakeState int

const (
	SnakeAlive SnakeState = iota
	SnakeHitWall
	SnakeHitSelf
)

func (s SnakeState) String() string {
	switch s {
	case SnakeAlive:
		return "alive"
	case SnakeHitWall:
		return "collided_with_wall"
	case SnakeHitSelf:
		return "collided_with_self"
	default:
		return "unknown"
	}
}

// noCell never matches a grid cell.
var noCell = grid.Cell{Row: -1, Col: -1}

// Snake is a grid-bound snake. Its body is head-first; index 0 is the head.
type Snake struct {
	g       *grid.Grid
	body    []grid.Cell
	state   SnakeState
	vacated grid.Cell // Tail cell dropped by the last move, or noCell
}

// NewSnake creates a snake of length 1 at head.
func NewSnake(g *grid.Grid, head grid.Cell) *Snake {
	return &Snake{
		g:       g,
		body:    []grid.Cell{head},
		vacated: noCell,
	}
}

// newSnakeWithBody creates a snake from an explicit head-first body.
func newSnakeWithBody(g *grid.Grid, body ...grid.Cell) *Snake {
	return &Snake{
		g:       g,
		body:    append([]grid.Cell(nil), body...),
		vacated: noCell,
	}
}

// Head returns the head cell.
func (s *Snake) Head() grid.Cell {
	return s.body[0]
}

// Body returns a copy of the occupied cells, head first.
func (s *Snake) Body() []grid.Cell {
	return append([]grid.Cell(nil), s.body...)
}

// Len returns the number of occupied cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// State returns the collision state.
func (s *Snake) State() SnakeState {
	return s.state
}

// Alive reports whether the snake has not collided.
func (s *Snake) Alive() bool {
	return s.state == SnakeAlive
}

// Occupied returns the set of cells the snake covers.
func (s *Snake) Occupied() grid.Set {
	return grid.NewSet(s.body...)
}

// Vacated returns the tail cell freed by the last move, if any.
func (s *Snake) Vacated() (grid.Cell, bool) {
	return s.vacated, s.vacated != noCell
}

// Move advances the snake one cell in dir. When the new head lands on
// growAt the tail is kept and the snake grows by one.
// Moving into the status row or off the grid is a wall collision and
// leaves the snake where it was.
func (s *Snake) Move(dir Direction, growAt grid.Cell) SnakeState {
	s.vacated = noCell
	if s.state != SnakeAlive {
		return s.state
	}

	dRow, dCol := dir.Delta()
	next := s.Head().Add(dRow, dCol)
	if !s.g.IsPlayable(next) {
		s.state = SnakeHitWall
		return s.state
	}

	s.body = append(s.body, grid.Cell{})
	copy(s.body[1:], s.body)
	s.body[0] = next

	if next != growAt {
		s.vacated = s.body[len(s.body)-1]
		s.body = s.body[:len(s.body)-1]
	}

	for _, c := range s.body[1:] {
		if c == next {
			s.state = SnakeHitSelf
			break
		}
	}
	return s.state
}

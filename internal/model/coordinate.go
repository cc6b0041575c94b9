package model

import "fmt"

// Coordinate identifies a cell on a board. X is the column, Y the row, both 0-indexed.
type Coordinate struct {
	X int
	Y int
}

// InBounds reports whether the coordinate lies on a board of the given size
func (c Coordinate) InBounds(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// Neighbors returns the four orthogonal neighbours in the order
// up, down, left, right. Callers filter by bounds.
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

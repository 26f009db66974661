package model

import "fmt"

// Grid is the fixed topology of a run. Agents step across its edges with
// wrap-around, the pathfinder does not.
type Grid struct {
	Cols, Rows int
}

func (g Grid) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

func (g Grid) mustContain(c Cell) {
	if !g.Contains(c) {
		panic(fmt.Sprintf("cell %v outside %dx%d grid", c, g.Cols, g.Rows))
	}
}

// Step moves one cell in direction d, re-entering from the opposite edge.
func (g Grid) Step(c Cell, d Direction) Cell {
	g.mustContain(c)
	dx, dy := d.Delta()
	return Cell{
		Col: mod(c.Col+dx, g.Cols),
		Row: mod(c.Row+dy, g.Rows),
	}
}

// Mirror is the point reflection of c across the grid center.
func (g Grid) Mirror(c Cell) Cell {
	return Cell{Col: g.Cols - 1 - c.Col, Row: g.Rows - 1 - c.Row}
}

func (g Grid) OnBorder(c Cell) bool {
	return c.Col == 0 || c.Row == 0 || c.Col == g.Cols-1 || c.Row == g.Rows-1
}

// Cells lists every cell row by row.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Cols*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cells = append(cells, Cell{Col: c, Row: r})
		}
	}
	return cells
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

package model

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// GenerateWalls blocks cells of the top half with probability density and
// mirrors every blocked cell through the grid center, then closes the border.
// Excluded cells, and cells whose mirror is excluded, stay open unless they
// lie on the border.
func GenerateWalls(g Grid, density float64, rng *rand.Rand, exclude ...Cell) mapset.Set[Cell] {
	skip := mapset.New[Cell]()
	for _, c := range exclude {
		skip.Put(c)
	}
	walls := mapset.New[Cell]()

	for r := 0; r < g.Rows/2; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := Cell{Col: c, Row: r}
			if rng.Float64() < density && !skip.Has(cell) && !skip.Has(g.Mirror(cell)) {
				walls.Put(cell)
				walls.Put(g.Mirror(cell))
			}
		}
	}

	for c := 0; c < g.Cols; c++ {
		walls.Put(Cell{Col: c, Row: 0})
		walls.Put(Cell{Col: c, Row: g.Rows - 1})
	}
	for r := 0; r < g.Rows; r++ {
		walls.Put(Cell{Col: 0, Row: r})
		walls.Put(Cell{Col: g.Cols - 1, Row: r})
	}
	return walls
}

// LayoutItems places an item on every open cell.
func LayoutItems(g Grid, walls mapset.Set[Cell]) mapset.Set[Cell] {
	items := mapset.New[Cell]()
	for _, c := range g.Cells() {
		if !walls.Has(c) {
			items.Put(c)
		}
	}
	return items
}

package model

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

type frontierEntry struct {
	f    int
	cell Cell
}

// frontierLess orders the open list by f-score, breaking ties on the cell
// (column, then row) so equal-cost routes resolve the same way every time.
func frontierLess(a, b frontierEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.cell.Less(b.cell)
}

func Manhattan(a, b Cell) int {
	return abs(a.Col-b.Col) + abs(a.Row-b.Row)
}

// FindPath returns the shortest 4-connected route from start to goal, both
// included, or nil when goal cannot be reached. Only walls block; the search
// never crosses the grid edge.
func FindPath(g Grid, walls mapset.Set[Cell], start, goal Cell) []Cell {
	g.mustContain(start)
	g.mustContain(goal)

	open := heap.New[frontierEntry](frontierLess)
	open.Push(frontierEntry{f: 0, cell: start})
	cameFrom := make(map[Cell]Cell)
	gScore := map[Cell]int{start: 0}

	for open.Size() > 0 {
		entry, _ := open.Pop()
		current := entry.cell
		if current == goal {
			return reconstruct(cameFrom, current)
		}
		for _, n := range [4]Cell{
			{current.Col + 1, current.Row},
			{current.Col - 1, current.Row},
			{current.Col, current.Row + 1},
			{current.Col, current.Row - 1},
		} {
			if walls.Has(n) || !g.Contains(n) {
				continue
			}
			tentative := gScore[current] + 1
			if known, seen := gScore[n]; !seen || tentative < known {
				cameFrom[n] = current
				gScore[n] = tentative
				open.Push(frontierEntry{f: tentative + Manhattan(n, goal), cell: n})
			}
		}
	}
	return nil
}

func reconstruct(cameFrom map[Cell]Cell, current Cell) []Cell {
	path := []Cell{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

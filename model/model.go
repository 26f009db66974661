package model

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Cell is a grid coordinate. Col is the x axis, Row the y axis.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Less orders cells by column first, then by row.
func (c Cell) Less(o Cell) bool {
	if c.Col != o.Col {
		return c.Col < o.Col
	}
	return c.Row < o.Row
}

type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
	Stop
)

var deltas = [...][2]int{
	Right: {1, 0},
	Down:  {0, 1},
	Left:  {-1, 0},
	Up:    {0, -1},
	Stop:  {0, 0},
}

func (d Direction) Valid() bool {
	return d >= Right && d <= Stop
}

func (d Direction) Delta() (dx, dy int) {
	if !d.Valid() {
		panic(fmt.Sprintf("invalid direction %d", d))
	}
	return deltas[d][0], deltas[d][1]
}

func (d Direction) Name() string {
	switch d {
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Up:
		return "UP"
	case Stop:
		return "STOP"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}

type Player struct {
	Cell
	Direction Direction
	Throttle  Throttle
	Score     int
}

type Pursuer struct {
	Cell
	Index    int
	Active   bool
	Throttle Throttle
}

// Model is one simulation run: the maze, the items left in it and the agents.
type Model struct {
	Rules    Rules
	Grid     Grid
	Walls    mapset.Set[Cell]
	Items    mapset.Set[Cell]
	Player   *Player
	Pursuers []*Pursuer
	Ticks    int
	Lost     bool

	layout *mapset.Set[Cell]
	seed   int64
	eaten  []Cell
}

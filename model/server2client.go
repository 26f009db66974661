package model

// ServerMessage is one frame sent to a front-end. Setup arrives once per run,
// Frames on every tick.
type ServerMessage struct {
	Setup  []Setup
	Frames []Snapshot
}

type Setup struct {
	Session    string
	Cols, Rows int
	Walls      []Cell
	Items      []Cell
	State      Snapshot
}

// Snapshot is the state of a run after a tick.
type Snapshot struct {
	Tick      int
	Player    Cell
	Direction Direction
	Score     int
	Pursuers  []PursuerState
	ItemsLeft int
	Eaten     []Cell
	Lost      bool
	Won       bool
}

type PursuerState struct {
	Cell
	Index  int
	Active bool
}

type ClientMessage struct {
	Move    Direction
	Restart bool
}

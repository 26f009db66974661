package client

import (
	"github.com/zucenko/pursuit/model"
	"github.com/zyedidia/generic/mapset"
)

// World mirrors the server's run for drawing.
type World struct {
	Session    string
	Cols, Rows int
	Walls      mapset.Set[model.Cell]
	Items      mapset.Set[model.Cell]
	State      model.Snapshot
	Player     *Motion
	Pursuers   []*Motion

	// Step is how long a slide between two cells takes, in seconds.
	Step float32
}

func NewWorld(step float32) *World {
	return &World{
		Walls: mapset.New[model.Cell](),
		Items: mapset.New[model.Cell](),
		Step:  step,
	}
}

func (w *World) Apply(mes model.ServerMessage) {
	for _, setup := range mes.Setup {
		w.setup(setup)
	}
	for _, frame := range mes.Frames {
		w.frame(frame)
	}
}

func (w *World) setup(s model.Setup) {
	w.Session = s.Session
	w.Cols, w.Rows = s.Cols, s.Rows
	w.Walls = mapset.New[model.Cell]()
	for _, c := range s.Walls {
		w.Walls.Put(c)
	}
	w.Items = mapset.New[model.Cell]()
	for _, c := range s.Items {
		w.Items.Put(c)
	}
	w.State = s.State
	w.Player = NewMotion(s.State.Player.Col, s.State.Player.Row)
	w.Pursuers = w.Pursuers[:0]
	for _, p := range s.State.Pursuers {
		w.Pursuers = append(w.Pursuers, NewMotion(p.Col, p.Row))
	}
}

func (w *World) frame(s model.Snapshot) {
	if w.Player == nil {
		// frames before a setup cannot be placed
		return
	}
	for _, c := range s.Eaten {
		w.Items.Remove(c)
	}
	if s.Player != w.State.Player {
		w.Player.MoveTo(s.Player.Col, s.Player.Row, w.Step)
	}
	for _, p := range s.Pursuers {
		if p.Index >= len(w.Pursuers) {
			continue
		}
		if p.Index < len(w.State.Pursuers) && w.State.Pursuers[p.Index].Cell == p.Cell {
			continue
		}
		w.Pursuers[p.Index].MoveTo(p.Col, p.Row, w.Step)
	}
	w.State = s
}

func (w *World) Update(dt float32) {
	if w.Player == nil {
		return
	}
	w.Player.Update(dt)
	for _, m := range w.Pursuers {
		m.Update(dt)
	}
}

func (w *World) Over() bool {
	return w.State.Lost || w.State.Won
}

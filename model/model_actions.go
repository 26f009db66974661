package model

import (
	"math/rand"
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// NewModel starts a run on a freshly generated maze. A zero seed picks one
// from the clock.
func NewModel(rules Rules, seed int64) *Model {
	rules.mustValidate()
	m := &Model{Rules: rules, Grid: rules.Grid()}
	m.Reset(seed)
	return m
}

// NewModelWithLayout starts a run on a fixed wall layout. Spawn cells the
// layout blocks are opened.
func NewModelWithLayout(rules Rules, walls mapset.Set[Cell]) *Model {
	rules.mustValidate()
	g := rules.Grid()
	layout := mapset.New[Cell]()
	walls.Each(func(c Cell) {
		g.mustContain(c)
		layout.Put(c)
	})
	m := &Model{Rules: rules, Grid: g, layout: &layout}
	m.Reset(0)
	return m
}

// Reset throws the current run away and starts over. The seed only matters
// for generated mazes.
func (m *Model) Reset(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.seed = seed

	spawns := []Cell{m.Rules.PlayerStart}
	for i := 0; i < m.Rules.MaxPursuers; i++ {
		spawns = append(spawns, m.Rules.PursuerStart(i))
	}

	if m.layout != nil {
		m.Walls = mapset.New[Cell]()
		m.layout.Each(func(c Cell) {
			m.Walls.Put(c)
		})
		for _, c := range spawns {
			m.Walls.Remove(c)
		}
	} else {
		rng := rand.New(rand.NewSource(seed))
		m.Walls = GenerateWalls(m.Grid, m.Rules.WallDensity, rng, spawns...)
	}
	m.Items = LayoutItems(m.Grid, m.Walls)

	m.Player = &Player{
		Cell:      m.Rules.PlayerStart,
		Direction: Stop,
		Throttle:  NewThrottle(m.Rules.PlayerSpeed),
	}
	m.Pursuers = make([]*Pursuer, 0, m.Rules.MaxPursuers)
	for i := 0; i < m.Rules.MaxPursuers; i++ {
		m.Pursuers = append(m.Pursuers, &Pursuer{
			Cell:     m.Rules.PursuerStart(i),
			Index:    i,
			Throttle: NewThrottle(m.Rules.PursuerSpeed),
		})
	}
	m.Ticks = 0
	m.Lost = false
	m.eaten = nil
}

func (m *Model) Seed() int64 {
	return m.seed
}

// SetDirection changes where the player heads on its next move. Ignored once
// the run is lost.
func (m *Model) SetDirection(d Direction) {
	if !d.Valid() {
		panic("invalid direction")
	}
	if m.Lost {
		return
	}
	m.Player.Direction = d
}

// Advance runs one simulation tick. elapsed is the run age, used only to wake
// pursuers. After a loss the model no longer changes.
func (m *Model) Advance(elapsed time.Duration) Snapshot {
	if m.Lost {
		m.eaten = nil
		return m.Snapshot()
	}
	m.Ticks++
	m.eaten = m.eaten[:0]

	activation := m.Rules.Activation()
	for _, p := range m.Pursuers {
		if !p.Active && activation.Ready(p.Index, elapsed) {
			p.Active = true
		}
	}

	m.movePlayer()
	for _, p := range m.Pursuers {
		m.movePursuer(p)
	}
	m.Lost = m.Caught()
	return m.Snapshot()
}

func (m *Model) movePlayer() {
	p := m.Player
	if !p.Throttle.Tick() {
		return
	}
	next := m.Grid.Step(p.Cell, p.Direction)
	if m.Walls.Has(next) {
		return
	}
	p.Cell = next
	if m.Items.Has(next) {
		m.Items.Remove(next)
		p.Score += m.Rules.Reward
		m.eaten = append(m.eaten, next)
	}
}

func (m *Model) movePursuer(p *Pursuer) {
	if !p.Active || !p.Throttle.Tick() {
		return
	}
	path := FindPath(m.Grid, m.Walls, p.Cell, m.Player.Cell)
	if len(path) < 2 {
		return
	}
	p.Cell = path[1]
}

// Caught reports whether an active pursuer shares the player's cell.
func (m *Model) Caught() bool {
	for _, p := range m.Pursuers {
		if p.Active && p.Cell == m.Player.Cell {
			return true
		}
	}
	return false
}

// Won reports whether every item has been collected. The model keeps running
// after a win; stopping is up to the caller.
func (m *Model) Won() bool {
	return m.Items.Size() == 0
}

func (m *Model) Dimensions() (cols, rows int) {
	return m.Grid.Cols, m.Grid.Rows
}

func (m *Model) WallCells() []Cell {
	return sortedCells(m.Walls)
}

func (m *Model) ItemCells() []Cell {
	return sortedCells(m.Items)
}

func (m *Model) Snapshot() Snapshot {
	pursuers := make([]PursuerState, 0, len(m.Pursuers))
	for _, p := range m.Pursuers {
		pursuers = append(pursuers, PursuerState{Cell: p.Cell, Index: p.Index, Active: p.Active})
	}
	var eaten []Cell
	if len(m.eaten) > 0 {
		eaten = append(eaten, m.eaten...)
	}
	return Snapshot{
		Tick:      m.Ticks,
		Player:    m.Player.Cell,
		Direction: m.Player.Direction,
		Score:     m.Player.Score,
		Pursuers:  pursuers,
		ItemsLeft: m.Items.Size(),
		Eaten:     eaten,
		Lost:      m.Lost,
		Won:       m.Won(),
	}
}

func sortedCells(s mapset.Set[Cell]) []Cell {
	cells := make([]Cell, 0, s.Size())
	s.Each(func(c Cell) {
		cells = append(cells, c)
	})
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}

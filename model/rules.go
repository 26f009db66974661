package model

import (
	"errors"
	"fmt"
	"time"
)

// Rules holds the tunables of a run. Speeds are tick thresholds: the
// smaller the threshold, the more often the agent moves.
type Rules struct {
	Cols, Rows      int
	WallDensity     float64
	PlayerSpeed     int
	PursuerSpeed    int
	InitialDelay    time.Duration
	AdditionalDelay time.Duration
	MaxPursuers     int
	Reward          int
	PlayerStart     Cell
}

func DefaultRules() Rules {
	return Rules{
		Cols:            32,
		Rows:            24,
		WallDensity:     0.15,
		PlayerSpeed:     10,
		PursuerSpeed:    30,
		InitialDelay:    5 * time.Second,
		AdditionalDelay: 7 * time.Second,
		MaxPursuers:     4,
		Reward:          10,
		PlayerStart:     Cell{Col: 1, Row: 1},
	}
}

func (r Rules) Grid() Grid {
	return Grid{Cols: r.Cols, Rows: r.Rows}
}

// PursuerStart is the spawn cell of pursuer i, one column in from the right
// edge, stacked downwards from the first interior row.
func (r Rules) PursuerStart(i int) Cell {
	return Cell{Col: r.Cols - 2, Row: 1 + i}
}

func (r Rules) Activation() Activation {
	return Activation{Initial: r.InitialDelay, Additional: r.AdditionalDelay}
}

func (r Rules) Validate() error {
	if r.Cols < 3 || r.Rows < 3 {
		return fmt.Errorf("grid %dx%d too small, need at least 3x3", r.Cols, r.Rows)
	}
	if r.WallDensity < 0 || r.WallDensity > 1 {
		return fmt.Errorf("wall density %v outside [0,1]", r.WallDensity)
	}
	if r.PlayerSpeed < 1 || r.PursuerSpeed < 1 {
		return errors.New("speeds must be at least one tick")
	}
	if r.InitialDelay < 0 || r.AdditionalDelay < 0 {
		return errors.New("activation delays must not be negative")
	}
	if r.MaxPursuers < 0 || r.MaxPursuers > r.Rows-2 {
		return fmt.Errorf("max pursuers %d does not fit %d interior rows", r.MaxPursuers, r.Rows-2)
	}
	if r.Reward < 0 {
		return errors.New("reward must not be negative")
	}
	g := r.Grid()
	if !g.Contains(r.PlayerStart) || g.OnBorder(r.PlayerStart) {
		return fmt.Errorf("player start %v not an interior cell", r.PlayerStart)
	}
	for i := 0; i < r.MaxPursuers; i++ {
		if r.PursuerStart(i) == r.PlayerStart {
			return fmt.Errorf("pursuer %d spawns on the player start %v", i, r.PlayerStart)
		}
	}
	return nil
}

func (r Rules) mustValidate() {
	if err := r.Validate(); err != nil {
		panic(err)
	}
}

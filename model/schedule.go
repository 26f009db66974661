package model

import "time"

// Throttle turns the fixed simulation tick rate into a slower move rate.
type Throttle struct {
	Every int
	count int
}

func NewThrottle(every int) Throttle {
	if every < 1 {
		panic("throttle threshold must be at least 1")
	}
	return Throttle{Every: every}
}

// Tick counts one simulation tick and reports whether a move is due.
func (t *Throttle) Tick() bool {
	t.count++
	if t.count >= t.Every {
		t.count = 0
		return true
	}
	return false
}

// Activation staggers pursuers: pursuer i wakes once the run is older than
// Initial + i*Additional.
type Activation struct {
	Initial    time.Duration
	Additional time.Duration
}

func (a Activation) Due(index int) time.Duration {
	return a.Initial + time.Duration(index)*a.Additional
}

func (a Activation) Ready(index int, elapsed time.Duration) bool {
	return elapsed > a.Due(index)
}

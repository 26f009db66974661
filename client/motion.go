package client

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Motion eases an agent between cells. Positions are in cell units.
type Motion struct {
	X, Y   float32
	tweens [2]*gween.Tween
}

func NewMotion(c, r int) *Motion {
	return &Motion{X: float32(c), Y: float32(r)}
}

// MoveTo slides to the target over duration seconds. Jumps longer than one
// cell (wrap-around, restarts) snap instead.
func (m *Motion) MoveTo(c, r int, duration float32) {
	x, y := float32(c), float32(r)
	if duration <= 0 || abs(x-m.X) > 1.5 || abs(y-m.Y) > 1.5 {
		m.Snap(c, r)
		return
	}
	if x != m.X {
		m.tweens[0] = gween.New(m.X, x, duration, ease.OutQuad)
	}
	if y != m.Y {
		m.tweens[1] = gween.New(m.Y, y, duration, ease.OutQuad)
	}
}

func (m *Motion) Snap(c, r int) {
	m.X, m.Y = float32(c), float32(r)
	m.tweens = [2]*gween.Tween{}
}

func (m *Motion) Update(dt float32) {
	if t := m.tweens[0]; t != nil {
		v, finished := t.Update(dt)
		m.X = v
		if finished {
			m.tweens[0] = nil
		}
	}
	if t := m.tweens[1]; t != nil {
		v, finished := t.Update(dt)
		m.Y = v
		if finished {
			m.tweens[1] = nil
		}
	}
}

func (m *Motion) Moving() bool {
	return m.tweens[0] != nil || m.tweens[1] != nil
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-slice panel: corners keep their size, edges and the
// center stretch to fill the target rectangle.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4]int
	x, y, width, height int
}

// NewNine builds a square frame image with a border of the given width.
func NewNine(border int, frame, fill color.Color) (*Nine, error) {
	size := border*2 + 1
	src := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if x < border || y < border || x >= size-border || y >= size-border {
				src.Set(x, y, frame)
			} else {
				src.Set(x, y, fill)
			}
		}
	}
	img, err := ebiten.NewImageFromImage(src, ebiten.FilterNearest)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images:    img,
		alpha:     1,
		R:         1,
		G:         1,
		B:         1,
		Scale:     1,
		positions: [4]int{0, border, border + 1, size},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
}

// spans returns where each of the three slices starts along one axis and
// how much it is scaled.
func (n *Nine) spans(origin, length int) (starts [3]float64, scales [3]float64) {
	p := n.positions
	head := n.Scale * float64(p[1]-p[0])
	tail := n.Scale * float64(p[3]-p[2])
	inner := float64(length) - head - tail
	if inner < 0 {
		inner = 0
	}
	starts = [3]float64{float64(origin), float64(origin) + head, float64(origin) + head + inner}
	scales = [3]float64{n.Scale, inner / float64(p[2]-p[1]), n.Scale}
	return
}

func (n *Nine) Draw(screen *ebiten.Image) {
	xs, sx := n.spans(n.x, n.width)
	ys, sy := n.spans(n.y, n.height)
	p := n.positions
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(sx[i], sy[j])
			op.GeoM.Translate(xs[i], ys[j])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			sub := n.images.SubImage(image.Rect(p[i], p[j], p[i+1], p[j+1])).(*ebiten.Image)
			screen.DrawImage(sub, op)
		}
	}
}

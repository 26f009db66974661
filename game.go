package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pursuit/client"
	"github.com/zucenko/pursuit/model"
	"golang.org/x/image/font"
)

const hudHeight = 40

var (
	COLOR_WALL   = color.RGBA{100, 149, 237, 255}
	COLOR_ITEM   = color.RGBA{144, 238, 144, 255}
	COLOR_PLAYER = color.RGBA{255, 221, 0, 255}
	COLOR_TEXT   = color.White
)

var COLORS_PURSUER = []color.RGBA{
	{0xfa, 0x36, 0x36, 0xff},
	{0xff, 0xb8, 0xde, 0xff},
	{0x34, 0xfb, 0xf6, 0xff},
	{0xff, 0xb8, 0x52, 0xff},
}

var keyDirections = map[ebiten.Key]model.Direction{
	ebiten.KeyW:     model.Up,
	ebiten.KeyUp:    model.Up,
	ebiten.KeyS:     model.Down,
	ebiten.KeyDown:  model.Down,
	ebiten.KeyA:     model.Left,
	ebiten.KeyLeft:  model.Left,
	ebiten.KeyD:     model.Right,
	ebiten.KeyRight: model.Right,
}

type Game struct {
	World   *client.World
	Link    *client.Link
	Panel   *Nine
	Font    font.Face
	Size    int
	Offline bool
}

func (g *Game) update(screen *ebiten.Image) error {
	g.receive()
	g.input()
	g.World.Update(1.0 / 60)

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) receive() {
	for {
		select {
		case mes, ok := <-g.Link.Messages:
			if !ok {
				if !g.Offline {
					g.Offline = true
					log.Warnf("server connection lost: %v", g.Link.Err())
				}
				return
			}
			g.World.Apply(mes)
		default:
			return
		}
	}
}

func (g *Game) input() {
	if g.Offline {
		return
	}
	for key, d := range keyDirections {
		if inpututil.IsKeyJustPressed(key) {
			g.send(model.ClientMessage{Move: d})
		}
	}
	if g.World.Over() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.send(model.ClientMessage{Restart: true})
	}
}

func (g *Game) send(cm model.ClientMessage) {
	if err := g.Link.Send(cm); err != nil {
		log.Warnf("send failed: %v", err)
	}
}

func (g *Game) draw(screen *ebiten.Image) {
	if e := screen.Fill(color.Black); e != nil {
		log.Printf("%v", e)
	}
	size := float64(g.Size)
	w := g.World

	w.Walls.Each(func(c model.Cell) {
		ebitenutil.DrawRect(screen, float64(c.Col)*size, float64(c.Row)*size, size, size, COLOR_WALL)
	})
	dot := size / 5
	w.Items.Each(func(c model.Cell) {
		ebitenutil.DrawRect(screen, float64(c.Col)*size+(size-dot)/2, float64(c.Row)*size+(size-dot)/2, dot, dot, COLOR_ITEM)
	})
	for i, m := range w.Pursuers {
		clr := COLORS_PURSUER[i%len(COLORS_PURSUER)]
		if i < len(w.State.Pursuers) && !w.State.Pursuers[i].Active {
			clr.A = 0x60
		}
		ebitenutil.DrawRect(screen, float64(m.X)*size+1, float64(m.Y)*size+1, size-2, size-2, clr)
	}
	if w.Player != nil {
		ebitenutil.DrawRect(screen, float64(w.Player.X)*size+1, float64(w.Player.Y)*size+1, size-2, size-2, COLOR_PLAYER)
	}

	top := w.Rows * g.Size
	g.Panel.SetPosition(0, top)
	g.Panel.SetSize(w.Cols*g.Size, hudHeight)
	g.Panel.Draw(screen)

	status := fmt.Sprintf("Score: %d   Items: %d", w.State.Score, w.State.ItemsLeft)
	switch {
	case g.Offline:
		status = fmt.Sprintf("Disconnected. Final score: %d", w.State.Score)
	case w.State.Lost:
		status = fmt.Sprintf("Game Over! Final score: %d  [R] retry", w.State.Score)
	case w.State.Won:
		status = fmt.Sprintf("Maze cleared! Score: %d  [R] again", w.State.Score)
	}
	text.Draw(screen, status, g.Font, 10, top+hudHeight-14, COLOR_TEXT)
}

func main() {
	settings := loadSettings()
	link, err := client.Dial(settings.ServerURL)
	if err != nil {
		log.Fatal(err)
	}
	defer link.Close()

	world := client.NewWorld(settings.Step)
	select {
	case mes, ok := <-link.Messages:
		if !ok {
			log.Fatalf("server closed before setup: %v", link.Err())
		}
		world.Apply(mes)
	case <-time.After(5 * time.Second):
		log.Fatal("no setup from server")
	}

	face, err := loadFont(18)
	if err != nil {
		log.Fatal(err)
	}
	panel, err := NewNine(2, COLOR_WALL, color.RGBA{0x10, 0x10, 0x30, 0xff})
	if err != nil {
		log.Fatal(err)
	}

	g := &Game{
		World: world,
		Link:  link,
		Panel: panel,
		Font:  face,
		Size:  settings.CellSize,
	}
	width := world.Cols * settings.CellSize
	height := world.Rows*settings.CellSize + hudHeight
	if err := ebiten.Run(g.update, width, height, 1, "Pursuit"); err != nil {
		log.Fatal(err)
	}
}

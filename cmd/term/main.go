package main

import (
	"fmt"
	"os"
	"time"

	"github.com/akamensky/argparse"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pursuit/model"
	"github.com/zucenko/pursuit/server"
)

func main() {
	defaults := model.DefaultRules()
	parser := argparse.NewParser("pursuit-term", "Collect every item before the pursuers catch you")
	width := parser.Int("W", "width", &argparse.Options{Default: defaults.Cols, Help: "grid columns"})
	height := parser.Int("H", "height", &argparse.Options{Default: defaults.Rows, Help: "grid rows"})
	density := parser.Float("d", "density", &argparse.Options{Default: defaults.WallDensity, Help: "wall density"})
	pursuers := parser.Int("p", "pursuers", &argparse.Options{Default: defaults.MaxPursuers, Help: "number of pursuers"})
	seed := parser.Int("s", "seed", &argparse.Options{Default: 0, Help: "maze seed, 0 picks one"})
	tickRate := parser.Int("t", "tick-rate", &argparse.Options{Default: 60, Help: "simulation ticks per second"})
	mazeFile := parser.String("m", "maze", &argparse.Options{Help: "fixed maze layout file"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(2)
	}

	rules := defaults
	rules.Cols, rules.Rows = *width, *height
	rules.WallDensity = *density
	rules.MaxPursuers = *pursuers

	var m *model.Model
	if *mazeFile != "" {
		grid, walls, err := server.LoadMaze(*mazeFile)
		if err != nil {
			log.Fatalf("maze: %v", err)
		}
		rules.Cols, rules.Rows = grid.Cols, grid.Rows
		if err := rules.Validate(); err != nil {
			log.Fatalf("rules: %v", err)
		}
		m = model.NewModelWithLayout(rules, walls)
	} else {
		if err := rules.Validate(); err != nil {
			log.Fatalf("rules: %v", err)
		}
		m = model.NewModel(rules, int64(*seed))
	}
	if *tickRate < 1 {
		log.Fatalf("tick rate must be positive")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	err = run(screen, m, time.Second/time.Duration(*tickRate))
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}

func run(screen tcell.Screen, m *model.Model, tick time.Duration) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	start := time.Now()
	snapshot := m.Snapshot()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' && over(snapshot) {
					m.Reset(m.Seed() + 1)
					start = time.Now()
					snapshot = m.Snapshot()
					continue
				}
				if d, ok := keyDirection(ev.Key(), ev.Rune()); ok {
					m.SetDirection(d)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			if !over(snapshot) {
				snapshot = m.Advance(now.Sub(start))
			}
			draw(screen, m, snapshot)
		}
	}
}

func over(s model.Snapshot) bool {
	return s.Lost || s.Won
}

func keyDirection(key tcell.Key, r rune) (model.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return model.Up, true
	case tcell.KeyDown:
		return model.Down, true
	case tcell.KeyLeft:
		return model.Left, true
	case tcell.KeyRight:
		return model.Right, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'k':
			return model.Up, true
		case 's', 'j':
			return model.Down, true
		case 'a', 'h':
			return model.Left, true
		case 'd', 'l':
			return model.Right, true
		case ' ':
			return model.Stop, true
		}
	}
	return model.Stop, false
}

var pursuerColors = []tcell.Color{tcell.ColorRed, tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorOrange}

func draw(screen tcell.Screen, m *model.Model, s model.Snapshot) {
	screen.Clear()
	wall := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	item := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	m.Walls.Each(func(c model.Cell) {
		screen.SetContent(c.Col, c.Row, '█', nil, wall)
	})
	m.Items.Each(func(c model.Cell) {
		screen.SetContent(c.Col, c.Row, '·', nil, item)
	})
	for _, p := range s.Pursuers {
		style := tcell.StyleDefault.Foreground(pursuerColors[p.Index%len(pursuerColors)])
		if !p.Active {
			style = style.Dim(true)
		}
		screen.SetContent(p.Col, p.Row, 'M', nil, style)
	}
	screen.SetContent(s.Player.Col, s.Player.Row, 'C', nil, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	_, rows := m.Dimensions()
	status := fmt.Sprintf("Score: %d  Items: %d", s.Score, s.ItemsLeft)
	switch {
	case s.Lost:
		status = fmt.Sprintf("Caught! Final score: %d  (r: retry, q: quit)", s.Score)
	case s.Won:
		status = fmt.Sprintf("Maze cleared! Final score: %d  (r: again, q: quit)", s.Score)
	}
	for i, r := range status {
		screen.SetContent(i, rows+1, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}

package main

import (
	"os"
	"strconv"

	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type Settings struct {
	ServerURL string
	CellSize  int
	// Step is the slide time between two cells, in seconds.
	Step float32
}

func loadSettings() Settings {
	s := Settings{
		ServerURL: "ws://localhost:8080/play",
		CellSize:  20,
		Step:      0.15,
	}
	if url := os.Getenv("PURSUIT_SERVER"); url != "" {
		s.ServerURL = url
	}
	if v := os.Getenv("PURSUIT_CELL_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 4 {
			log.Warnf("ignoring PURSUIT_CELL_SIZE=%q", v)
		} else {
			s.CellSize = size
		}
	}
	if v := os.Getenv("PURSUIT_STEP"); v != "" {
		step, err := strconv.ParseFloat(v, 32)
		if err != nil || step < 0 {
			log.Warnf("ignoring PURSUIT_STEP=%q", v)
		} else {
			s.Step = float32(step)
		}
	}
	return s
}

func loadFont(size float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

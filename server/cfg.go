package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zucenko/pursuit/model"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Width           int           `yaml:"width"`
	Height          int           `yaml:"height"`
	WallDensity     float64       `yaml:"wall_density"`
	PlayerSpeed     int           `yaml:"player_speed"`
	PursuerSpeed    int           `yaml:"pursuer_speed"`
	InitialDelay    time.Duration `yaml:"initial_delay"`
	AdditionalDelay time.Duration `yaml:"additional_delay"`
	MaxPursuers     int           `yaml:"max_pursuers"`
	Reward          int           `yaml:"reward"`
	TickRate        int           `yaml:"tick_rate"`
	MaxSessions     int           `yaml:"max_sessions"`
	Seed            int64         `yaml:"seed"`
	MazeFile        string        `yaml:"maze_file"`
	Port            string        `yaml:"port"`
}

func DefaultConfig() Config {
	r := model.DefaultRules()
	return Config{
		Width:           r.Cols,
		Height:          r.Rows,
		WallDensity:     r.WallDensity,
		PlayerSpeed:     r.PlayerSpeed,
		PursuerSpeed:    r.PursuerSpeed,
		InitialDelay:    r.InitialDelay,
		AdditionalDelay: r.AdditionalDelay,
		MaxPursuers:     r.MaxPursuers,
		Reward:          r.Reward,
		TickRate:        60,
		MaxSessions:     64,
		Port:            "8080",
	}
}

// LoadConfig reads a YAML config on top of the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Rules() model.Rules {
	r := model.DefaultRules()
	r.Cols = c.Width
	r.Rows = c.Height
	r.WallDensity = c.WallDensity
	r.PlayerSpeed = c.PlayerSpeed
	r.PursuerSpeed = c.PursuerSpeed
	r.InitialDelay = c.InitialDelay
	r.AdditionalDelay = c.AdditionalDelay
	r.MaxPursuers = c.MaxPursuers
	r.Reward = c.Reward
	return r
}

func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func (c Config) Validate() error {
	if c.TickRate < 1 {
		return errors.New("tick_rate must be positive")
	}
	if c.MaxSessions < 1 {
		return errors.New("max_sessions must be positive")
	}
	if c.Port == "" {
		return errors.New("port must be set")
	}
	if c.MazeFile != "" {
		// dimensions come from the maze file
		return nil
	}
	return c.Rules().Validate()
}

// LoadMaze reads a fixed layout from disk.
func LoadMaze(path string) (model.Grid, mapset.Set[model.Cell], error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Grid{}, mapset.Set[model.Cell]{}, fmt.Errorf("opening maze: %w", err)
	}
	defer file.Close()
	return ReadMaze(file)
}

// ReadMaze parses a text layout, one line per row: '#' is a wall, anything
// else is open floor.
func ReadMaze(reader io.Reader) (model.Grid, mapset.Set[model.Cell], error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	walls := mapset.New[model.Cell]()
	grid := model.Grid{}

	for scanner.Scan() {
		line := []rune(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if grid.Rows == 0 {
			grid.Cols = len(line)
		} else if len(line) != grid.Cols {
			return grid, walls, fmt.Errorf("maze row %d has %d cells, want %d", grid.Rows, len(line), grid.Cols)
		}
		for col, char := range line {
			if char == '#' {
				walls.Put(model.Cell{Col: col, Row: grid.Rows})
			}
		}
		grid.Rows++
	}
	if err := scanner.Err(); err != nil {
		return grid, walls, fmt.Errorf("reading maze: %w", err)
	}
	if grid.Rows == 0 {
		return grid, walls, errors.New("maze is empty")
	}
	return grid, walls, nil
}

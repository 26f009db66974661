package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/pursuit/model"
)

const borderMaze6 = `######
#....#
#....#
#....#
#....#
######
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, model.DefaultRules(), cfg.Rules())
	assert.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestLoadConfig_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "pursuit.yaml", `
width: 20
height: 16
initial_delay: 2s
additional_delay: 1500ms
max_pursuers: 2
seed: 42
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
	assert.Equal(t, 2*time.Second, cfg.InitialDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.AdditionalDelay)
	assert.Equal(t, 2, cfg.MaxPursuers)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 0.15, cfg.WallDensity)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "bad.yaml", "tick_rate: 0\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "wall_density: 3\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "max_sessions: 0\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "width: [\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReadMaze(t *testing.T) {
	grid, walls, err := ReadMaze(strings.NewReader(borderMaze6))
	require.NoError(t, err)
	assert.Equal(t, model.Grid{Cols: 6, Rows: 6}, grid)
	assert.Equal(t, 20, walls.Size())
	assert.True(t, walls.Has(model.Cell{Col: 5, Row: 3}))
	assert.False(t, walls.Has(model.Cell{Col: 1, Row: 1}))
}

func TestReadMaze_Ragged(t *testing.T) {
	_, _, err := ReadMaze(strings.NewReader("###\n##\n###\n"))
	assert.Error(t, err)
}

func TestReadMaze_Empty(t *testing.T) {
	_, _, err := ReadMaze(strings.NewReader("\n\n"))
	assert.Error(t, err)
}

func TestLoadMaze_Missing(t *testing.T) {
	_, _, err := LoadMaze(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

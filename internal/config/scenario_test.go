package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwalker-va/arenasim-prototype-sub000/data"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

const twoVsTwo = `
name: test
arena: nagrand
seed: 9
time_limit: 90s
tie_break: health
team1:
  kill_target: 1
  members:
    - class: rogue
      opener: ambush
    - class: priest
team2:
  cc_target: 0
  members:
    - class: warlock
      pet: none
      curses:
        1: curse_of_tongues
    - class: hunter
      pet: spider
`

func TestDecodeScenario(t *testing.T) {
	mf, err := Decode(strings.NewReader(twoVsTwo))
	require.NoError(t, err)

	cfg, err := mf.Config()
	require.NoError(t, err)

	assert.Equal(t, "nagrand", cfg.Arena)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 90*time.Second, cfg.TimeLimit)
	assert.Equal(t, match.TieBreakHealth, cfg.TieBreak)

	require.Len(t, cfg.Team1.Members, 2)
	assert.Equal(t, "ambush", cfg.Team1.Members[0].Opener)
	require.NotNil(t, cfg.Team1.KillTarget)
	assert.Equal(t, 1, *cfg.Team1.KillTarget)
	assert.Nil(t, cfg.Team1.CCTarget)

	assert.Equal(t, match.NoPet, cfg.Team2.Members[0].Pet)
	assert.Equal(t, "curse_of_tongues", cfg.Team2.Members[0].Curses[1])
	assert.Equal(t, "spider", cfg.Team2.Members[1].Pet)
	require.NotNil(t, cfg.Team2.CCTarget)
	assert.Zero(t, *cfg.Team2.CCTarget)

	require.NoError(t, cfg.Validate())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("team1:\n  memebers: []\n"))
	assert.Error(t, err)
}

func TestBadTimeLimit(t *testing.T) {
	mf, err := Decode(strings.NewReader("time_limit: soon\n"))
	require.NoError(t, err)

	_, err = mf.Config()
	assert.ErrorIs(t, err, match.ErrInvalidTimeLimit)
}

func TestLoadMatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoVsTwo), 0o644))

	cfg, err := LoadMatch(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Team2.Members, 2)

	_, err = LoadMatch(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBundledScenariosAreValid(t *testing.T) {
	for _, name := range data.Scenarios() {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadMatchFS(data.FS(), name)
			require.NoError(t, err)
			assert.NoError(t, cfg.Validate())
		})
	}
}

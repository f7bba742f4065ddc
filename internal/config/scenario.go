package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

// MatchFile is the YAML form of a match scenario.
type MatchFile struct {
	Name      string   `yaml:"name"`
	Arena     string   `yaml:"arena"`
	Seed      int64    `yaml:"seed"`
	TimeLimit string   `yaml:"time_limit"` // Go duration, e.g. "5m"
	TieBreak  string   `yaml:"tie_break"`
	Team1     TeamFile `yaml:"team1"`
	Team2     TeamFile `yaml:"team2"`
}

// TeamFile is one side of a scenario.
type TeamFile struct {
	KillTarget *int         `yaml:"kill_target"`
	CCTarget   *int         `yaml:"cc_target"`
	Members    []MemberFile `yaml:"members"`
}

// MemberFile is one roster entry of a scenario.
type MemberFile struct {
	Class  string         `yaml:"class"`
	Pet    string         `yaml:"pet"`
	Opener string         `yaml:"opener"`
	Curses map[int]string `yaml:"curses"`
}

// Decode reads a scenario. Unknown keys are rejected.
func Decode(r io.Reader) (*MatchFile, error) {
	var f MatchFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &f, nil
}

// LoadMatch reads the scenario at path and converts it to a match.Config.
func LoadMatch(path string) (match.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return match.Config{}, err
	}
	defer f.Close()
	return load(f, path)
}

// LoadMatchFS reads a scenario from fsys.
func LoadMatchFS(fsys fs.FS, name string) (match.Config, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return match.Config{}, err
	}
	defer f.Close()
	return load(f, name)
}

func load(r io.Reader, name string) (match.Config, error) {
	mf, err := Decode(r)
	if err != nil {
		return match.Config{}, fmt.Errorf("%s: %w", name, err)
	}
	cfg, err := mf.Config()
	if err != nil {
		return match.Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Config converts the file into a match configuration. Roster validation is
// left to match.New.
func (f *MatchFile) Config() (match.Config, error) {
	cfg := match.Config{
		Team1:    f.Team1.team(),
		Team2:    f.Team2.team(),
		Arena:    f.Arena,
		Seed:     f.Seed,
		TieBreak: match.TieBreak(f.TieBreak),
	}
	if f.TimeLimit != "" {
		d, err := time.ParseDuration(f.TimeLimit)
		if err != nil {
			return match.Config{}, fmt.Errorf("%w: %v", match.ErrInvalidTimeLimit, err)
		}
		cfg.TimeLimit = d
	}
	return cfg, nil
}

func (t TeamFile) team() match.Team {
	out := match.Team{KillTarget: t.KillTarget, CCTarget: t.CCTarget}
	for _, m := range t.Members {
		out.Members = append(out.Members, match.Member{
			Class:  m.Class,
			Pet:    m.Pet,
			Opener: m.Opener,
			Curses: m.Curses,
		})
	}
	return out
}

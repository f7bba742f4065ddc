package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwalker-va/arenasim-prototype-sub000/data"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/combat"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/config"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/logging"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

const defaultScenario = "duel"

type runOptions struct {
	seed      int64
	runs      int
	timeLimit time.Duration
	tieBreak  string
	abilities string
	save      bool
	events    bool
	stats     bool
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run a match scenario",
		Long: `Runs the scenario in a YAML file, or one of the bundled scenarios by
name (` + strings.Join(bundledNames(), ", ") + `). Defaults to "` + defaultScenario + `".

With --runs N the scenario is played N times with seeds seed, seed+1, ...
and the win rates are reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := defaultScenario
			if len(args) == 1 {
				name = args[0]
			}
			cfg, err := loadScenario(name)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = opts.seed
			}
			if opts.timeLimit > 0 {
				cfg.TimeLimit = opts.timeLimit
			}
			if opts.tieBreak != "" {
				cfg.TieBreak = match.TieBreak(opts.tieBreak)
			}
			if opts.abilities != "" {
				catalog, err := gamedata.LoadAbilityRegistryFile(opts.abilities)
				if err != nil {
					return err
				}
				cfg.Catalog = catalog
			}
			if cfg.Step == 0 {
				cfg.Step = a.step()
			}
			if !cmd.Flags().Changed("events") {
				opts.events = a.v.GetBool("log_events")
			}
			if opts.runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", opts.runs)
			}
			return a.run(cmd, name, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opts.seed, "seed", 0, "random seed; 0 picks one")
	f.IntVarP(&opts.runs, "runs", "n", 1, "number of matches to play")
	f.DurationVar(&opts.timeLimit, "time-limit", 0, "override the scenario time limit")
	f.StringVar(&opts.tieBreak, "tie-break", "", "timeout rule: none or health")
	f.StringVar(&opts.abilities, "abilities", "", "ability catalog JSON replacing the bundled one")
	f.BoolVar(&opts.save, "save", false, "store results in the match database")
	f.BoolVar(&opts.events, "events", false, "print the combat log")
	f.BoolVar(&opts.stats, "stats", false, "print per-combatant statistics")
	return cmd
}

func (a *app) run(cmd *cobra.Command, name string, cfg match.Config, opts runOptions) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	var save func(*match.Match) error
	if opts.save {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		save = func(m *match.Match) error {
			return store.SaveMatch(ctx, name, m.Result(), m.Events())
		}
	}

	totals := &tally{}
	for i := 0; i < opts.runs; i++ {
		c := cfg
		if cfg.Seed != 0 {
			c.Seed = cfg.Seed + int64(i)
		}
		m, err := match.New(ctx, c)
		if err != nil {
			return err
		}
		if opts.events {
			names := combatantNames(m)
			m.Subscribe(func(e combat.Event) {
				fmt.Fprintln(out, formatEvent(e, names))
			})
		}

		res, err := m.Run(ctx)
		if err != nil {
			return fmt.Errorf("match %s (seed %d): %w", m.ID, m.Seed, err)
		}
		totals.add(res)

		if opts.runs == 1 || opts.events || opts.stats {
			fmt.Fprintf(out, "%s seed=%d: %s\n", name, res.Seed, res)
			printRoster(out, res)
		}
		if opts.stats {
			printStats(out, res, match.Summarize(m.Events()))
		}
		if save != nil {
			if err := save(m); err != nil {
				return fmt.Errorf("save match %s: %w", m.ID, err)
			}
			logging.Info("match saved", logging.Fields{"match_id": m.ID.String(), "db": a.v.GetString("db_path")})
		}
	}

	if opts.runs > 1 {
		totals.print(out)
	}
	return nil
}

// loadScenario reads name as a file path, falling back to the bundled
// scenarios.
func loadScenario(name string) (match.Config, error) {
	if _, err := os.Stat(name); err == nil {
		return config.LoadMatch(name)
	}
	file := name
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}
	cfg, err := config.LoadMatchFS(data.FS(), file)
	if errors.Is(err, fs.ErrNotExist) {
		return match.Config{}, fmt.Errorf("scenario %q not found (bundled: %s)", name, strings.Join(bundledNames(), ", "))
	}
	return cfg, err
}

func bundledNames() []string {
	var names []string
	for _, s := range data.Scenarios() {
		names = append(names, strings.TrimSuffix(s, filepath.Ext(s)))
	}
	return names
}

// tally accumulates results over repeated runs.
type tally struct {
	runs    int
	wins    [3]int // indexed by winner; 0 is draws
	timeout int
	elapsed time.Duration
}

func (t *tally) add(r *match.Result) {
	t.runs++
	t.wins[r.Winner]++
	if r.Reason == match.ReasonTimeLimit {
		t.timeout++
	}
	t.elapsed += r.Elapsed
}

func (t *tally) print(w io.Writer) {
	pct := func(n int) float64 { return 100 * float64(n) / float64(t.runs) }
	fmt.Fprintf(w, "%d matches, average length %v\n", t.runs, (t.elapsed / time.Duration(t.runs)).Round(100*time.Millisecond))
	fmt.Fprintf(w, "  team 1: %d wins (%.1f%%)\n", t.wins[1], pct(t.wins[1]))
	fmt.Fprintf(w, "  team 2: %d wins (%.1f%%)\n", t.wins[2], pct(t.wins[2]))
	fmt.Fprintf(w, "  draws:  %d (%.1f%%)\n", t.wins[match.Draw], pct(t.wins[match.Draw]))
	fmt.Fprintf(w, "  timeouts: %d\n", t.timeout)
}

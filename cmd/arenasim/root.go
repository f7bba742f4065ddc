package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/config"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/logging"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/storage"
	"github.com/dwalker-va/arenasim-prototype-sub000/internal/telemetry"
)

// app holds state shared by every subcommand.
type app struct {
	v        *viper.Viper
	cfgFile  string
	shutdown telemetry.Shutdown
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "arenasim",
		Short: "Simulate team arena combat between AI-controlled characters",
		Long: `arenasim runs deterministic, seeded arena matches between two teams of
one to three characters and reports who won, how and why.

Settings come from flags, then ~/.arenasim.yaml, then ARENASIM_* environment
variables.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.arenasim.yaml)")
	pf.String("db", "", "SQLite database for saved matches")
	pf.Int("step-ms", 0, "simulation step in milliseconds")
	pf.Bool("telemetry", false, "export traces over OTLP")
	_ = a.v.BindPFlag("db_path", pf.Lookup("db"))
	_ = a.v.BindPFlag("step_ms", pf.Lookup("step-ms"))
	_ = a.v.BindPFlag("telemetry", pf.Lookup("telemetry"))

	root.AddCommand(
		newRunCmd(a),
		newHistoryCmd(a),
		newCatalogCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup layers the config file over the environment and starts tracing when
// enabled.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	a.v.SetDefault("db_path", settings.DBPath)
	a.v.SetDefault("step_ms", settings.StepMS)
	a.v.SetDefault("telemetry", settings.Telemetry)
	a.v.SetDefault("log_events", settings.LogEvents)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".arenasim")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if a.v.GetInt("step_ms") <= 0 {
		return fmt.Errorf("step must be positive, got %dms", a.v.GetInt("step_ms"))
	}

	if a.v.GetBool("telemetry") {
		shutdown, err := telemetry.Setup(cmd.Context())
		if err != nil {
			logging.Warn("telemetry setup failed, running without traces", err, nil)
		} else {
			a.shutdown = shutdown
		}
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		logging.Warn("telemetry shutdown failed", err, nil)
	}
	a.shutdown = nil
	return nil
}

func (a *app) step() time.Duration {
	return time.Duration(a.v.GetInt("step_ms")) * time.Millisecond
}

func (a *app) openStore() (*storage.Store, error) {
	path := a.v.GetString("db_path")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}

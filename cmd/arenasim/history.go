package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/match"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.ListMatches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved matches")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSCENARIO\tTEAM 1\tTEAM 2\tWINNER\tREASON\tLENGTH\tSEED")
			for _, r := range recs {
				winner := fmt.Sprintf("team %d", r.Winner)
				if r.Winner == match.Draw {
					winner = "draw"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%v\t%d\n",
					r.ID, r.Name, r.Team1, r.Team2, winner, r.Reason,
					time.Duration(r.ElapsedMS)*time.Millisecond, r.Seed)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum matches to list; 0 for all")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <match-id>",
		Short: "Replay the combat log of a saved match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid match id %q: %w", args[0], err)
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.GetMatch(cmd.Context(), id)
			if err != nil {
				return err
			}
			events, err := store.Events(cmd.Context(), id)
			if err != nil {
				return err
			}

			names := make(map[int]string, len(rec.Combatants))
			for _, c := range rec.Combatants {
				names[c.CombatantID] = c.Name
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s on %s, seed %d: %s vs %s\n", rec.Name, rec.Arena, rec.Seed, rec.Team1, rec.Team2)
			for _, e := range events {
				fmt.Fprintln(out, formatEvent(e, lookupNames(names)))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rates",
		Short: "Win rates of every saved team composition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rates, err := store.WinRates(cmd.Context())
			if err != nil {
				return err
			}
			comps := make([]string, 0, len(rates))
			for c := range rates {
				comps = append(comps, c)
			}
			sort.Strings(comps)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COMPOSITION\tPLAYED\tWON\tDRAWN\tWIN %")
			for _, c := range comps {
				r := rates[c]
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\n", c, r.Played, r.Won, r.Drawn, 100*float64(r.Won)/float64(r.Played))
			}
			return tw.Flush()
		},
	})
	return cmd
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dwalker-va/arenasim-prototype-sub000/internal/gamedata"
)

func newCatalogCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the class and ability data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "classes",
		Short: "List playable classes and pets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classes, err := gamedata.LoadClassRegistry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tROLE\tHEALTH\tRESOURCE\tPETS")
			defs := make([]gamedata.ClassDef, 0, classes.Count()+len(classes.Pets()))
			defs = append(defs, classes.All()...)
			for _, c := range append(defs, classes.Pets()...) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					c.ID, c.Name, c.Role, c.Health, c.Resource, strings.Join(c.Pets, ","))
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "abilities [class]",
		Short: "List abilities, optionally for one class",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abilities, err := gamedata.LoadAbilityRegistry()
			if err != nil {
				return err
			}
			var defs []gamedata.AbilityDef
			if len(args) == 1 {
				classes, err := gamedata.LoadClassRegistry()
				if err != nil {
					return err
				}
				def := classes.GetByID(args[0])
				if def == nil {
					def = classes.GetPet(args[0])
				}
				if def == nil {
					return fmt.Errorf("unknown class %q", args[0])
				}
				for _, a := range abilities.GetMultiple(def.Kit()) {
					defs = append(defs, *a)
				}
			} else {
				defs = abilities.All()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSCHOOL\tEFFECT\tCAST\tCOST\tRANGE\tCOOLDOWN")
			for _, a := range defs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%d\t%.0f\t%v\n",
					a.ID, a.School, a.EffectType, a.CastDuration(), a.Cost, a.Range, a.CooldownDuration())
			}
			return tw.Flush()
		},
	})
	return cmd
}

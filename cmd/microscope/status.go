package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the phase, timeline and available actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				st, err := d.Status.Handle(cmd.Context())
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), st)
				return nil
			})
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check CONTENT",
		Short: "Check content against the palette",
		Long:  "Reports whether content mentions a No-list item. Nothing is saved.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			return withDeps(cmd.Context(), func(d *Deps) error {
				ok, warning, err := d.Play.Check(cmd.Context(), content)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(cmd.OutOrStdout(), "OK: no banned palette items")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", warning)
				return nil
			})
		},
	}
}

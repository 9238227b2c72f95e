package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

func newLogCmd() *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the session's audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.Archive.AuditLog(cmd.Context(), action, limit)
				if err != nil {
					return err
				}
				printAuditLog(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Only show entries for this action")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultLogLimit, "Maximum number of entries")

	return cmd
}

func printAuditLog(w io.Writer, entries []entities.AuditEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No audit entries.")
		return
	}
	for _, e := range entries {
		id := e.ElementID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s  %-28s %-8s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, id, formatDetails(e.Details))
	}
}

// formatDetails renders details as sorted key=value pairs.
func formatDetails(details map[string]any) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, " ")
}

func newVersionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List archived versions of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				versions, err := d.Archive.Versions(cmd.Context(), limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(versions) == 0 {
					fmt.Fprintln(out, "No archived versions.")
					return nil
				}
				fmt.Fprintf(out, "%-8s %-20s %-28s %-20s %s\n", "VERSION", "CREATED", "ACTION", "PHASE", "TURN")
				for _, v := range versions {
					fmt.Fprintf(out, "%-8d %-20s %-28s %-20s %d\n",
						v.Version, v.CreatedAt.Local().Format("2006-01-02 15:04:05"), v.Action, v.Phase, v.TurnCounter)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultVersionsLimit, "Maximum number of versions")
	cmd.AddCommand(newVersionsShowCmd())

	return cmd
}

func newVersionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show N",
		Short: "Show the session as it was at version N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid version %q", args[0])
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				v, st, err := d.Archive.Version(cmd.Context(), n)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Version %d (%s, %s)\n\n", v.Version, v.Action, v.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				printStatus(out, st)
				return nil
			})
		},
	}
}

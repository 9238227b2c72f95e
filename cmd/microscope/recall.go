package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "Index and search the history by meaning",
		Long:  "Embeds the session's periods, events, scenes, foci and legacies into Qdrant for similarity search.",
	}

	cmd.AddCommand(newRecallIndexCmd(), newRecallSearchCmd())

	return cmd
}

func newRecallIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the session's recall index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecall(cmd.Context(), func(d *recallDeps) error {
				res, err := d.Recall.Index(cmd.Context())
				if err != nil {
					return err
				}

				kinds := make([]string, 0, len(res.ByKind))
				for k, n := range res.ByKind {
					kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
				}
				sort.Strings(kinds)

				fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d passage(s)", res.Indexed)
				if len(kinds) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), " (%s)", strings.Join(kinds, ", "))
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}
}

func newRecallSearchCmd() *cobra.Command {
	var (
		kind  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find passages similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withRecall(cmd.Context(), func(d *recallDeps) error {
				res, err := d.Recall.Search(cmd.Context(), query, kind, limit)
				if err != nil {
					return err
				}
				printPassages(cmd.OutOrStdout(), res.Passages)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only search one kind (period, event, scene, focus, legacy)")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultRecallLimit, "Maximum number of results")

	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/microscope-solo/internal/application/handlers"
	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

func newBigPictureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "big-picture TEXT",
		Short: "Enter the big picture of the history",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.SetBigPicture(cmd.Context(), text)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "Big picture set", res)
				return nil
			})
		},
	}
}

type periodFlags struct {
	description string
	tone        string
	after       string
}

func (f *periodFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&f.tone, "tone", "t", "", "Tone: light or dark (required)")
	_ = cmd.MarkFlagRequired("tone")
}

func (f *periodFlags) input(title string) (handlers.PeriodInput, error) {
	tone, err := entities.ParseTone(f.tone)
	if err != nil {
		return handlers.PeriodInput{}, err
	}
	return handlers.PeriodInput{
		Title:       title,
		Description: f.description,
		Tone:        tone,
		After:       f.after,
	}, nil
}

func newBookendCmd() *cobra.Command {
	var flags periodFlags

	cmd := &cobra.Command{
		Use:       "bookend start|end TITLE",
		Short:     "Create the start or end bookend period",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"start", "end"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var isStart bool
			switch strings.ToLower(args[0]) {
			case "start":
				isStart = true
			case "end":
			default:
				return fmt.Errorf("first argument must be start or end, got %q", args[0])
			}

			in, err := flags.input(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CreateBookend(cmd.Context(), in, isStart)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), fmt.Sprintf("Created %s bookend %q", args[0], in.Title), res)
				return nil
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Build the Yes/No palette",
	}

	cmd.AddCommand(
		newPaletteAddCmd(),
		newPaletteImportCmd(),
		newPaletteCompleteCmd(),
	)

	return cmd
}

func newPaletteAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add yes|no ITEM",
		Short: "Add an item to the Yes or No list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var isYes bool
			switch strings.ToLower(args[0]) {
			case "yes", "y":
				isYes = true
			case "no", "n":
			default:
				return fmt.Errorf("first argument must be yes or no, got %q", args[0])
			}
			item := strings.Join(args[1:], " ")

			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.AddToPalette(cmd.Context(), item, isYes)
				if err != nil {
					return err
				}
				if res.Added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %q to the %s list\n", item, strings.ToLower(args[0]))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Palette unchanged (blank, duplicate or locked)\n")
				}
				return nil
			})
		},
	}
}

func newPaletteImportCmd() *cobra.Command {
	var opts handlers.ImportOptions

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import palette items from a JSON or CSV file",
		Long: `Imports palette items. JSON files hold either {"yes": [...], "no": [...]}
or [{"list": "yes", "item": "..."}]; CSV files need a "list,item" header.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Import.Handle(cmd.Context(), args[0], opts)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, e := range res.Errors {
					fmt.Fprintf(out, "skipped %s\n", e.Error())
				}
				verb := "Imported"
				if opts.DryRun {
					verb = "Would import"
				}
				fmt.Fprintf(out, "%s %d item(s), %d already present, %d invalid\n", verb, res.Added, res.Skipped, len(res.Errors))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Input format (json, csv, auto)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func newPaletteCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Lock the palette and start the first pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CompletePalette(cmd.Context())
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "Palette locked", res)
				return nil
			})
		},
	}
}

func newFirstPassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "first-pass",
		Short: "Manage the first pass",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Finish the first pass and begin play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CompleteFirstPass(cmd.Context())
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "First pass complete", res)
				return nil
			})
		},
	})

	return cmd
}

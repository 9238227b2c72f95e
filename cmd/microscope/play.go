package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/microscope-solo/internal/application/handlers"
	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Declare or complete the current focus",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "declare TEXT",
			Short: "Declare the focus for this round",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text := strings.Join(args, " ")
				return withDeps(cmd.Context(), func(d *Deps) error {
					res, err := d.Play.DeclareFocus(cmd.Context(), text)
					if err != nil {
						return err
					}
					printResult(cmd.OutOrStdout(), "Focus declared", res)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "complete",
			Short: "Finish making history for the current focus",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					res, err := d.Play.CompleteFocus(cmd.Context())
					if err != nil {
						return err
					}
					printResult(cmd.OutOrStdout(), "Focus complete", res)
					return nil
				})
			},
		},
	)

	return cmd
}

func newPeriodCmd() *cobra.Command {
	var flags periodFlags

	cmd := &cobra.Command{
		Use:   "period TITLE",
		Short: "Insert a period after another period",
		Long:  "Insert a period. --after takes a period id, id prefix or title.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CreatePeriod(cmd.Context(), in)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), fmt.Sprintf("Created period %q", in.Title), res)
				return nil
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.after, "after", "a", "", "Period the new one follows (required)")
	_ = cmd.MarkFlagRequired("after")

	return cmd
}

func newEventCmd() *cobra.Command {
	var (
		flags  periodFlags
		period string
	)

	cmd := &cobra.Command{
		Use:   "event TITLE",
		Short: "Add an event to a period",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tone, err := entities.ParseTone(flags.tone)
			if err != nil {
				return err
			}
			in := handlers.EventInput{
				Title:       strings.Join(args, " "),
				Description: flags.description,
				Tone:        tone,
				Period:      period,
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CreateEvent(cmd.Context(), in)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), fmt.Sprintf("Created event %q", in.Title), res)
				return nil
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&period, "period", "p", "", "Period to add the event to (required)")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

type sceneFlags struct {
	event      string
	dictated   bool
	stage      string
	characters []string
	answer     string
}

func newSceneCmd() *cobra.Command {
	var flags sceneFlags

	cmd := &cobra.Command{
		Use:   "scene QUESTION",
		Short: "Add a scene to an event",
		Long: `Add a scene to an event. Characters are given as NAME, NAME|DESCRIPTION
or NAME|DESCRIPTION|THOUGHT; repeat --character for each one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := handlers.SceneInput{
				Question:         strings.Join(args, " "),
				Event:            flags.event,
				Dictated:         flags.dictated,
				StageDescription: flags.stage,
				Answer:           flags.answer,
			}
			for _, raw := range flags.characters {
				c, err := parseCharacter(raw)
				if err != nil {
					return err
				}
				in.Characters = append(in.Characters, c)
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CreateScene(cmd.Context(), in)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), fmt.Sprintf("Created scene %q", in.Question), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.event, "event", "e", "", "Event to add the scene to (required)")
	cmd.Flags().BoolVar(&flags.dictated, "dictated", false, "The scene was dictated rather than played")
	cmd.Flags().StringVar(&flags.stage, "stage", "", "Stage description")
	cmd.Flags().StringArrayVarP(&flags.characters, "character", "c", nil, "Character (NAME[|DESCRIPTION[|THOUGHT]])")
	cmd.Flags().StringVar(&flags.answer, "answer", "", "Answer to the question; marks the scene complete")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

// parseCharacter reads NAME, NAME|DESCRIPTION or NAME|DESCRIPTION|THOUGHT.
func parseCharacter(raw string) (handlers.CharacterInput, error) {
	parts := strings.SplitN(raw, "|", 3)
	c := handlers.CharacterInput{Name: strings.TrimSpace(parts[0])}
	if c.Name == "" {
		return c, fmt.Errorf("character %q has no name", raw)
	}
	if len(parts) > 1 {
		c.Description = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		c.Thought = strings.TrimSpace(parts[2])
	}
	return c, nil
}

func newLegacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy",
		Short: "Create, skip or finish exploring a legacy",
	}

	var origin string
	create := &cobra.Command{
		Use:   "create TEXT",
		Short: "Create a legacy from the round's focus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Play.CreateLegacy(cmd.Context(), text, origin)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "Legacy created", res)
				return nil
			})
		},
	}
	create.Flags().StringVarP(&origin, "origin", "o", "", "Period, event or scene the legacy grew from")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "skip",
			Short: "Skip legacy creation this round",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					res, err := d.Play.SkipLegacy(cmd.Context())
					if err != nil {
						return err
					}
					printResult(cmd.OutOrStdout(), "Legacy skipped", res)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "done",
			Short: "Finish exploring the pending legacy",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					res, err := d.Play.CompleteLegacyExploration(cmd.Context())
					if err != nil {
						return err
					}
					printResult(cmd.OutOrStdout(), "Legacy explored", res)
					return nil
				})
			},
		},
	)

	return cmd
}

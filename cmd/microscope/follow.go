package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
	"github.com/ersonp/microscope-solo/internal/infrastructure/watcher"
)

func newFollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow",
		Short: "Redraw the session status whenever it changes",
		Long:  "Watches the session file and prints the status after every saved change. Stop with Ctrl-C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				return follow(cmd.Context(), cmd, d)
			})
		},
	}
}

func follow(ctx context.Context, cmd *cobra.Command, d *Deps) error {
	out := cmd.OutOrStdout()

	w, err := watcher.New(config.SessionFilePathFor(d.BasePath, d.Session), d.Config.Watch.Debounce, d.Logger)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	render := func() {
		st, err := d.Status.Handle(ctx)
		if err != nil {
			d.Logger.Warn("could not load session", zap.String("session", d.Session), zap.Error(err))
			return
		}
		fmt.Fprintln(out, "----")
		printStatus(out, st)
	}

	render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if change.Removed {
				fmt.Fprintf(out, "Session file removed at %s\n", change.At.Format("15:04:05"))
				continue
			}
			render()
		}
	}
}

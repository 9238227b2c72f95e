// Package main provides the entry point for the microscope CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalSession string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "microscope",
		Short:         "A solo companion for building Microscope histories",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalSession, "session", "s", "", "Session to operate on (default: the active session)")

	rootCmd.AddCommand(
		newInitCmd(),
		newSessionsCmd(),
		newBigPictureCmd(),
		newBookendCmd(),
		newPaletteCmd(),
		newFirstPassCmd(),
		newFocusCmd(),
		newPeriodCmd(),
		newEventCmd(),
		newSceneCmd(),
		newLegacyCmd(),
		newStatusCmd(),
		newCheckCmd(),
		newExportCmd(),
		newLogCmd(),
		newVersionsCmd(),
		newRecallCmd(),
		newFollowCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

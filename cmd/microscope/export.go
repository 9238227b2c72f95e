package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/infrastructure/exporters"
)

type exportFlags struct {
	format  string
	output  string
	version int
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history to markdown, text or JSON",
		Long:  "Exports the session's current state, or an archived version with --version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
				format := flags.format
				if format == "" {
					format = d.Config.Export.Format
				}
				exp := exporters.ForFormat(format)
				if exp == nil {
					return fmt.Errorf("invalid format %q, valid formats: %s", format, strings.Join(exporters.Formats(), ", "))
				}

				var (
					g   *game.Game
					err error
				)
				if flags.version > 0 {
					g, err = d.Archive.Snapshot(cmd.Context(), flags.version)
				} else {
					g, err = d.sessionService.Load(cmd.Context())
				}
				if err != nil {
					return err
				}

				return writeExport(cmd.OutOrStdout(), flags.output, exp, g)
			})
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (markdown, text, json; default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&flags.version, "version", 0, "Export an archived version instead of the current state")

	return cmd
}

// writeExport renders g to path, or to stdout when path is empty.
func writeExport(stdout io.Writer, path string, exp exporters.Exporter, g *game.Game) (err error) {
	if path == "" {
		return exp.Export(stdout, g)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	if err := exp.Export(f, g); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	fmt.Fprintf(stdout, "Exported to %s\n", path)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ersonp/microscope-solo/internal/domain/services"
	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
	"github.com/ersonp/microscope-solo/internal/infrastructure/sessionfile"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage sessions",
		RunE:  runSessionsList,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all sessions",
			Args:  cobra.NoArgs,
			RunE:  runSessionsList,
		},
		newSessionsCreateCmd(),
		newSessionsUseCmd(),
		newSessionsDeleteCmd(),
	)

	return cmd
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	return withBase(func(b *baseDeps) error {
		listSessions(cmd.OutOrStdout(), b.sessions)
		return nil
	})
}

func listSessions(w io.Writer, sessions *config.SessionsConfig) {
	names := sessions.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No sessions configured.")
		fmt.Fprintln(w, "Use 'microscope sessions create NAME' to start one.")
		return
	}

	fmt.Fprintf(w, "  %-20s %-28s %s\n", "NAME", "COLLECTION", "DESCRIPTION")
	for _, name := range names {
		entry := sessions.Sessions[name]
		marker := " "
		if name == sessions.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-20s %-28s %s\n", marker, name, entry.Collection, entry.Description)
	}
}

func newSessionsCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a session and start its game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBase(func(b *baseDeps) error {
				if err := createSession(cmd.Context(), b, args[0], description); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created session %q (active: %s)\n", args[0], b.sessions.Active)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Session description")

	return cmd
}

// createSession registers name and writes its initial game. Names that
// sanitize to the same directory as an existing session are rejected.
func createSession(ctx context.Context, b *baseDeps, name, description string) error {
	dir := config.SanitizeSessionName(name)
	for _, existing := range b.sessions.Names() {
		if config.SanitizeSessionName(existing) == dir {
			return fmt.Errorf("%w: %q collides with %q", services.ErrSessionExists, name, existing)
		}
	}

	archive, closeArchive, err := openArchive(ctx, b.basePath, name, b.cfg.Archive)
	if err != nil {
		return err
	}
	defer closeArchive()

	svc := services.NewSessionService(name, sessionfile.NewStore(b.basePath), archive, b.cfg.Archive.KeepVersions, b.logger)
	if _, err := svc.Start(ctx); err != nil {
		return err
	}

	b.sessions.Add(name, config.SessionEntry{
		Collection:  config.GenerateCollectionName(name),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
	if err := b.sessions.Save(b.basePath); err != nil {
		return fmt.Errorf("saving sessions: %w", err)
	}

	return nil
}

func newSessionsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Make a session the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBase(func(b *baseDeps) error {
				if err := b.sessions.Use(args[0]); err != nil {
					return err
				}
				if err := b.sessions.Save(b.basePath); err != nil {
					return fmt.Errorf("saving sessions: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Active session: %s\n", args[0])
				return nil
			})
		},
	}
}

func newSessionsDeleteCmd() *cobra.Command {
	var dropIndex bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a session, its archive and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBase(func(b *baseDeps) error {
				if err := deleteSession(cmd.Context(), b, args[0], dropIndex); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %q\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dropIndex, "drop-index", false, "Also delete the session's Qdrant collection")

	return cmd
}

func deleteSession(ctx context.Context, b *baseDeps, name string, dropIndex bool) error {
	if _, err := b.sessions.Get(name); err != nil {
		return err
	}

	if dropIndex {
		repo, err := openCollection(b.cfg, b.sessions, name)
		if err != nil {
			return err
		}
		if err := repo.DeleteCollection(ctx); err != nil {
			b.logger.Warn("could not delete collection",
				zap.String("collection", repo.Collection()),
				zap.Error(err),
			)
		}
		repo.Close()
	}

	if err := sessionfile.NewStore(b.basePath).Delete(ctx, name); err != nil {
		return err
	}

	b.sessions.Remove(name)
	if err := b.sessions.Save(b.basePath); err != nil {
		return fmt.Errorf("saving sessions: %w", err)
	}

	return nil
}
